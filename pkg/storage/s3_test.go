package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string][]byte
	types   map[string]string
	acls    map[string]types.ObjectCannedACL
	putErr  error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{
		objects: map[string][]byte{},
		types:   map[string]string{},
		acls:    map[string]types.ObjectCannedACL{},
	}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, _ := io.ReadAll(in.Body)
	key := aws.ToString(in.Key)
	f.objects[key] = data
	f.types[key] = aws.ToString(in.ContentType)
	f.acls[key] = in.ACL
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func newTestStorage(f *fakeS3) *S3Storage {
	cfg := Config{Bucket: "b", AccessKey: "a", SecretKey: "s"}
	cfg.applyDefaults()
	return &S3Storage{client: f, cfg: cfg}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()

		store, err := New(Config{Bucket: "b", AccessKey: "a", SecretKey: "s"})
		require.NoError(t, err)
		require.NotNil(t, store.client)
		assert.Equal(t, DefaultRegion, store.cfg.Region)
		assert.Equal(t, ACLPrivate, store.cfg.DefaultACL)
	})

	t.Run("custom endpoint", func(t *testing.T) {
		t.Parallel()

		store, err := New(Config{
			Bucket: "b", AccessKey: "a", SecretKey: "s",
			Endpoint: "http://localhost:9000", PathStyle: true,
		})
		require.NoError(t, err)
		require.NotNil(t, store)
	})

	t.Run("invalid config", func(t *testing.T) {
		t.Parallel()

		store, err := New(Config{})
		require.ErrorIs(t, err, ErrInvalidConfig)
		assert.Nil(t, store)
	})
}

func TestS3Storage_PutGetDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFakeS3()
	store := newTestStorage(f)

	data := []byte("<?xml version=\"1.0\"?><document/>")
	info, err := store.Put(ctx, bytes.NewReader(data), int64(len(data)),
		WithKey("map/last.xml"),
		WithContentType("application/xml"),
	)
	require.NoError(t, err)
	assert.Equal(t, "map/last.xml", info.Key)
	assert.Equal(t, "application/xml", f.types["map/last.xml"])
	assert.Equal(t, types.ObjectCannedACLPrivate, f.acls["map/last.xml"])

	rc, err := store.Get(ctx, "map/last.xml")
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, data, got)

	require.NoError(t, store.Delete(ctx, "map/last.xml"))
	_, err = store.Get(ctx, "map/last.xml")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestS3Storage_PutGeneratedKey(t *testing.T) {
	t.Parallel()

	f := newFakeS3()
	store := newTestStorage(f)

	info, err := store.Put(context.Background(), strings.NewReader("plain text"), 10,
		WithPrefix("debug"),
		WithACL(ACLPublicRead),
	)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(info.Key, "debug/"))
	assert.Equal(t, "text/plain; charset=utf-8", info.ContentType)
	assert.Equal(t, types.ObjectCannedACLPublicRead, f.acls[info.Key])
}

func TestS3Storage_PutFailure(t *testing.T) {
	t.Parallel()

	f := newFakeS3()
	f.putErr = &smithy.GenericAPIError{Code: "AccessDenied", Message: "nope"}

	_, err := newTestStorage(f).Put(context.Background(), strings.NewReader("x"), 1, WithKey("k"))
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestWrapS3Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no such key code", &smithy.GenericAPIError{Code: "NoSuchKey"}, ErrNotFound},
		{"forbidden code", &smithy.GenericAPIError{Code: "Forbidden"}, ErrAccessDenied},
		{"typed not found", &types.NoSuchKey{}, ErrNotFound},
		{"other", errors.New("boom"), ErrDeleteFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, wrapS3Error(tt.err, ErrDeleteFailed), tt.want)
		})
	}
}

func TestSanitizePathSegment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "avatars", "avatars"},
		{"with spaces", "my folder", "my_folder"},
		{"with slashes", "/path/to/", "path_to"},
		{"path traversal", "../../../etc/passwd", "___etc_passwd"},
		{"leading dots", "..hidden", "hidden"},
		{"empty", "", ""},
		{"dots allowed", "file.name", "file.name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sanitizePathSegment(tt.input))
		})
	}
}

func TestBuildKey(t *testing.T) {
	t.Parallel()

	key := buildKey("", "application/x-unknown-thing")
	assert.True(t, strings.HasSuffix(key, ".bin"))
	assert.NotContains(t, key, "/")
}
