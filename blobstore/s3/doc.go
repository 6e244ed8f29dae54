// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("flamelets/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	repo := spitfire.NewRepository(store)
//
// # Features
//
//   - Range reads for partial fetches
//   - Multipart uploads for large libraries
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
