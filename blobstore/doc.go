// Package blobstore provides the storage abstraction for persisted
// library blobs.
//
// A library is serialized to a single self-describing blob (see package
// persistence) and stored under a name. Implementations must be safe for
// concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: a directory on the local filesystem
//   - MemoryStore: in-memory, for tests
//   - s3.Store: Amazon S3
//   - minio.Store: MinIO and other S3-compatible storage
//   - CachingStore: a remote store fronted by a local one
//
// # Custom Implementations
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	    Put(ctx, name, data) error
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
package blobstore
