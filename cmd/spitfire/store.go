package main

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/wandadars/spitfire"
	"github.com/wandadars/spitfire/blobstore"
	"github.com/wandadars/spitfire/blobstore/minio"
	"github.com/wandadars/spitfire/blobstore/s3"
)

// openStore resolves a store location:
//
//	<dir> or file://<dir>
//	s3://<bucket>[/<prefix>]
//	minio://<host:port>/<bucket>[/<prefix>]
//
// When a cache directory is configured, remote stores are wrapped in a
// read-through cache.
func (a *app) openStore(ctx context.Context, location string) (blobstore.BlobStore, error) {
	if !strings.Contains(location, "://") {
		return blobstore.NewLocalStore(location), nil
	}
	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("store %q: %w", location, err)
	}

	var remote blobstore.BlobStore
	switch u.Scheme {
	case "file":
		return blobstore.NewLocalStore(u.Host + u.Path), nil
	case "s3":
		opts := []s3.Option{s3.WithPrefix(strings.Trim(u.Path, "/"))}
		if a.cfg.S3.Region != "" {
			opts = append(opts, s3.WithRegion(a.cfg.S3.Region))
		}
		if remote, err = s3.New(ctx, u.Host, opts...); err != nil {
			return nil, err
		}
	case "minio":
		bucket, prefix, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
		if bucket == "" {
			return nil, fmt.Errorf("store %q: missing bucket", location)
		}
		remote, err = minio.Dial(minio.Endpoint{
			Address:   u.Host,
			AccessKey: a.cfg.MinIO.AccessKey,
			SecretKey: a.cfg.MinIO.SecretKey,
			Secure:    a.cfg.MinIO.Secure,
			Region:    a.cfg.MinIO.Region,
		}, bucket, prefix)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("store %q: unknown scheme %q", location, u.Scheme)
	}

	if a.cfg.CacheDir != "" {
		return blobstore.NewCachingStore(remote, blobstore.NewLocalStore(a.cfg.CacheDir)), nil
	}
	return remote, nil
}

func (a *app) repository(ctx context.Context, location string) (*spitfire.Repository, error) {
	store, err := a.openStore(ctx, location)
	if err != nil {
		return nil, err
	}
	return spitfire.NewRepository(store,
		spitfire.WithCompression(a.cfg.Compression),
		spitfire.WithConcurrency(a.cfg.Concurrency),
		spitfire.WithLogger(a.logger),
	), nil
}
