package session_test

import (
	"context"
	"errors"
	"io/fs"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/map-framework/addon-mode-site/pkg/cache"
	"github.com/map-framework/addon-mode-site/pkg/session"
)

func TestCacheStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	newStore := func(t *testing.T) *session.CacheStore {
		t.Helper()
		c := cache.NewMemory[*session.Session]()
		t.Cleanup(func() { _ = c.Close() })
		return session.NewCacheStore(c)
	}

	t.Run("create get update delete", func(t *testing.T) {
		t.Parallel()

		store := newStore(t)
		sess := session.New("id-1", "tok-1", time.Now().Add(time.Hour))
		sess.SetValue("a", "1")
		require.NoError(t, store.Create(ctx, sess))

		got, err := store.Get(ctx, "tok-1")
		require.NoError(t, err)
		assert.Equal(t, "id-1", got.ID)
		assert.Equal(t, "1", got.Values["a"])

		got.SetValue("a", "2")
		again, err := store.Get(ctx, "tok-1")
		require.NoError(t, err)
		assert.Equal(t, "1", again.Values["a"], "stored session must not alias the returned copy")

		require.NoError(t, store.Update(ctx, got))
		again, err = store.Get(ctx, "tok-1")
		require.NoError(t, err)
		assert.Equal(t, "2", again.Values["a"])

		require.NoError(t, store.Delete(ctx, "id-1"))
		_, err = store.Get(ctx, "tok-1")
		require.ErrorIs(t, err, session.ErrNotFound)

		require.NoError(t, store.Delete(ctx, "id-1"))
	})

	t.Run("expired sessions are not stored", func(t *testing.T) {
		t.Parallel()

		store := newStore(t)
		sess := session.New("id-2", "tok-2", time.Now().Add(-time.Minute))
		require.NoError(t, store.Create(ctx, sess))

		_, err := store.Get(ctx, "tok-2")
		require.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("empty token", func(t *testing.T) {
		t.Parallel()

		_, err := newStore(t).Get(ctx, "")
		require.ErrorIs(t, err, session.ErrInvalidToken)
	})

	t.Run("purge is a no-op", func(t *testing.T) {
		t.Parallel()

		n, err := newStore(t).DeleteExpired(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

type execCall struct {
	sql  string
	args []any
}

type fakeRow struct {
	vals []any
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.vals[i]))
	}
	return nil
}

type fakeDB struct {
	execs []execCall
	tag   string
	err   error
	row   fakeRow
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, execCall{sql: sql, args: args})
	return pgconn.NewCommandTag(f.tag), f.err
}

func (f *fakeDB) QueryRow(context.Context, string, ...any) pgx.Row {
	return f.row
}

func TestPostgresStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("create encodes values", func(t *testing.T) {
		t.Parallel()

		fdb := &fakeDB{tag: "INSERT 0 1"}
		sess := session.New("id", "tok", time.Now().Add(time.Hour))
		sess.SetValue("form", map[string]any{"shop": map[string]any{}})

		require.NoError(t, session.NewPostgresStore(fdb).Create(ctx, sess))
		require.Len(t, fdb.execs, 1)
		assert.True(t, strings.HasPrefix(fdb.execs[0].sql, "INSERT INTO site_sessions"))
		assert.JSONEq(t, `{"form":{"shop":{}}}`, string(fdb.execs[0].args[4].([]byte)))
	})

	t.Run("get decodes row", func(t *testing.T) {
		t.Parallel()

		now := time.Now()
		fdb := &fakeDB{row: fakeRow{vals: []any{
			"id", "tok", "127.0.0.1", "test", []byte(`{"a":"b"}`),
			now, now, now.Add(time.Hour),
		}}}

		sess, err := session.NewPostgresStore(fdb).Get(ctx, "tok")
		require.NoError(t, err)
		assert.Equal(t, "id", sess.ID)
		assert.Equal(t, "b", sess.Values["a"])
		assert.False(t, sess.IsNew())
	})

	t.Run("get expired", func(t *testing.T) {
		t.Parallel()

		past := time.Now().Add(-time.Hour)
		fdb := &fakeDB{row: fakeRow{vals: []any{
			"id", "tok", "", "", []byte(`{}`), past, past, past,
		}}}

		_, err := session.NewPostgresStore(fdb).Get(ctx, "tok")
		require.ErrorIs(t, err, session.ErrExpired)
	})

	t.Run("get missing", func(t *testing.T) {
		t.Parallel()

		fdb := &fakeDB{row: fakeRow{err: pgx.ErrNoRows}}
		_, err := session.NewPostgresStore(fdb).Get(ctx, "tok")
		require.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("update missing row", func(t *testing.T) {
		t.Parallel()

		fdb := &fakeDB{tag: "UPDATE 0"}
		err := session.NewPostgresStore(fdb).Update(ctx, session.New("id", "tok", time.Now().Add(time.Hour)))
		require.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("delete expired reports count", func(t *testing.T) {
		t.Parallel()

		fdb := &fakeDB{tag: "DELETE 3"}
		n, err := session.NewPostgresStore(fdb).DeleteExpired(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
	})

	t.Run("exec failure", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		fdb := &fakeDB{err: boom}
		require.ErrorIs(t, session.NewPostgresStore(fdb).Delete(ctx, "id"), boom)
	})
}

type countingStore struct {
	session.Store
	n   int64
	err error
}

func (s *countingStore) DeleteExpired(context.Context) (int64, error) {
	return s.n, s.err
}

func TestPurgeTask(t *testing.T) {
	t.Parallel()

	task := session.NewPurgeTask(&countingStore{n: 2}, "", nil)
	assert.Equal(t, "purge_expired_sessions", task.Name())
	assert.Equal(t, session.DefaultPurgeSchedule, task.Schedule())
	require.NoError(t, task.Handle(context.Background()))

	boom := errors.New("boom")
	require.ErrorIs(t, session.NewPurgeTask(&countingStore{err: boom}, "@hourly", nil).Handle(context.Background()), boom)
}

func TestMigrations(t *testing.T) {
	t.Parallel()

	data, err := fs.ReadFile(session.Migrations(), "00001_create_site_sessions.sql")
	require.NoError(t, err)
	assert.Contains(t, string(data), "CREATE TABLE IF NOT EXISTS site_sessions")
}
