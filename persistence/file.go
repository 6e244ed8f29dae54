package persistence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wandadars/spitfire/blobstore"
	"github.com/wandadars/spitfire/internal/fs"
	"github.com/wandadars/spitfire/library"
)

// SaveToFile writes lib to path atomically: the blob goes to a temporary
// file in the same directory which is then renamed over path.
func SaveToFile(path string, lib *library.Library, opts ...Option) error {
	o := newOptions(opts)
	data, err := Save(lib, opts...)
	if err != nil {
		return err
	}
	return atomicWrite(o.fs, path, data)
}

// LoadFromFile reads a blob of any supported version from path.
func LoadFromFile(path string, opts ...Option) (*library.Library, error) {
	o := newOptions(opts)
	data, err := o.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("persistence: read %s: %w", path, err)
	}
	return Load(data, opts...)
}

// SaveToStore writes lib to store under name.
func SaveToStore(ctx context.Context, store blobstore.BlobStore, name string, lib *library.Library, opts ...Option) error {
	data, err := Save(lib, opts...)
	if err != nil {
		return err
	}
	if err := store.Put(ctx, name, data); err != nil {
		return fmt.Errorf("persistence: put %s: %w", name, err)
	}
	return nil
}

// LoadFromStore reads the blob stored under name.
func LoadFromStore(ctx context.Context, store blobstore.BlobStore, name string, opts ...Option) (*library.Library, error) {
	data, err := blobstore.Get(ctx, store, name)
	if err != nil {
		return nil, fmt.Errorf("persistence: get %s: %w", name, err)
	}
	return Load(data, opts...)
}

func atomicWrite(fsys fs.FileSystem, path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("persistence: failed to create directory %s: %w", dir, err)
	}

	tmp := fmt.Sprintf("%s.tmp-%d-%d", path, os.Getpid(), time.Now().UnixNano())
	f, err := fsys.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("persistence: failed to create temp file for %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = fsys.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("persistence: failed to write %s: %w", path, err)
	}
	if err = f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("persistence: failed to sync %s: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("persistence: failed to close %s: %w", path, err)
	}
	if err = fsys.Rename(tmp, path); err != nil {
		return fmt.Errorf("persistence: failed to rename %s: %w", path, err)
	}
	return nil
}
