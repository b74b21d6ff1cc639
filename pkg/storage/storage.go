package storage

import (
	"context"
	"io"
)

// Storage stores opaque objects under string keys.
type Storage interface {
	// Put uploads data from r. size is sent as the content length.
	Put(ctx context.Context, r io.Reader, size int64, opts ...Option) (*FileInfo, error)

	// Get returns the object body. The caller closes it.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes an object.
	Delete(ctx context.Context, key string) error
}

// Config holds S3-compatible storage configuration.
type Config struct {
	// Bucket is the bucket name (required).
	Bucket string `mapstructure:"bucket" yaml:"bucket"`

	// AccessKey is the access key ID (required).
	AccessKey string `mapstructure:"access_key" yaml:"access_key"`

	// SecretKey is the secret access key (required).
	SecretKey string `mapstructure:"secret_key" yaml:"-"`

	// Endpoint is a custom endpoint for MinIO and other S3-compatible services.
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`

	// Region defaults to us-east-1.
	Region string `mapstructure:"region" yaml:"region"`

	// DefaultACL defaults to private.
	DefaultACL ACL `mapstructure:"default_acl" yaml:"default_acl"`

	// PathStyle enables path-style addressing, required for MinIO.
	PathStyle bool `mapstructure:"path_style" yaml:"path_style"`
}

// Enabled reports whether the configuration names a bucket.
func (c Config) Enabled() bool {
	return c.Bucket != ""
}

// FileInfo describes an uploaded object.
type FileInfo struct {
	Key         string
	ContentType string
	ACL         ACL
	Size        int64
}

// ACL is an access control level for stored objects.
type ACL string

const (
	ACLPrivate    ACL = "private"
	ACLPublicRead ACL = "public-read"
)

// DefaultRegion is used when Config.Region is empty.
const DefaultRegion = "us-east-1"

func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.DefaultACL == "" {
		c.DefaultACL = ACLPrivate
	}
}

func (c *Config) validate() error {
	if c.Bucket == "" || c.AccessKey == "" || c.SecretKey == "" {
		return ErrInvalidConfig
	}
	return nil
}
