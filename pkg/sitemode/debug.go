package sitemode

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/map-framework/addon-mode-site/pkg/storage"
)

// DebugFileName is the name of the last assembled response.
const DebugFileName = "lastSiteResponse.xml"

// DebugSink receives the serialized response document.
type DebugSink interface {
	WriteResponse(ctx context.Context, data []byte) error
}

// FileSink writes the last response into a local directory.
type FileSink struct {
	dir string
}

// NewFileSink returns a sink writing into dir.
// An empty dir means "map" under the system temp dir.
func NewFileSink(dir string) *FileSink {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "map")
	}
	return &FileSink{dir: dir}
}

// Path returns the file the sink writes.
func (s *FileSink) Path() string {
	return filepath.Join(s.dir, DebugFileName)
}

// WriteResponse replaces the file content with data.
func (s *FileSink) WriteResponse(_ context.Context, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("sitemode: create debug dir: %w", err)
	}
	if err := os.WriteFile(s.Path(), data, 0o644); err != nil {
		return fmt.Errorf("sitemode: write debug file: %w", err)
	}
	return nil
}

// StorageSink uploads the last response to object storage under a fixed key.
type StorageSink struct {
	store storage.Storage
	key   string
}

// NewStorageSink returns a sink writing to key in st.
// An empty key means "map/lastSiteResponse.xml".
func NewStorageSink(st storage.Storage, key string) *StorageSink {
	if key == "" {
		key = "map/" + DebugFileName
	}
	return &StorageSink{store: st, key: key}
}

// WriteResponse uploads data, replacing the previous object.
func (s *StorageSink) WriteResponse(ctx context.Context, data []byte) error {
	_, err := s.store.Put(ctx, bytes.NewReader(data), int64(len(data)),
		storage.WithKey(s.key),
		storage.WithContentType("application/xml"),
	)
	if err != nil {
		return fmt.Errorf("sitemode: upload debug response: %w", err)
	}
	return nil
}
