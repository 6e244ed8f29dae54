package blobstore

import (
	"context"
	"errors"

	"golang.org/x/sync/singleflight"
)

// CachingStore fronts a remote BlobStore with a local one.
//
// Reads are served from the local store when present; on a miss the blob is
// fetched from the remote store once, even under concurrent requests for the
// same name, and written to the local store. Writes and deletes go to both.
type CachingStore struct {
	remote BlobStore
	local  BlobStore
	group  singleflight.Group
}

// NewCachingStore creates a new CachingStore.
func NewCachingStore(remote, local BlobStore) *CachingStore {
	return &CachingStore{remote: remote, local: local}
}

// Open returns the locally cached blob, fetching it from the remote first if needed.
func (s *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	b, err := s.local.Open(ctx, name)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	v, err, _ := s.group.Do(name, func() (any, error) {
		data, err := Get(ctx, s.remote, name)
		if err != nil {
			return nil, err
		}
		if err := s.local.Put(ctx, name, data); err != nil {
			return nil, err
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	data := v.([]byte)
	copied := make([]byte, len(data))
	copy(copied, data)
	return &memoryBlob{data: copied}, nil
}

// Put writes the blob remotely, then refreshes the local copy.
func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	if err := s.remote.Put(ctx, name, data); err != nil {
		return err
	}
	return s.local.Put(ctx, name, data)
}

// Delete removes the blob from both stores.
func (s *CachingStore) Delete(ctx context.Context, name string) error {
	return errors.Join(s.remote.Delete(ctx, name), s.local.Delete(ctx, name))
}

// List returns names from the remote store, which is authoritative.
func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.remote.List(ctx, prefix)
}
