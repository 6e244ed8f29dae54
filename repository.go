package spitfire

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wandadars/spitfire/blobstore"
	"github.com/wandadars/spitfire/library"
	"github.com/wandadars/spitfire/persistence"
	"github.com/wandadars/spitfire/textdump"
)

// Extension is appended to library names to form blob names.
const Extension = ".spl"

// Repository persists libraries in a blob store, one blob per library.
//
// A Repository is safe for concurrent use. Every Load returns an
// independent Library; libraries are never shared between callers.
type Repository struct {
	store blobstore.BlobStore
	opts  options
}

// NewRepository creates a Repository over store.
func NewRepository(store blobstore.BlobStore, optFns ...Option) *Repository {
	return &Repository{
		store: store,
		opts:  applyOptions(optFns),
	}
}

// Store returns the underlying blob store.
func (r *Repository) Store() blobstore.BlobStore { return r.store }

func validateName(name string) error {
	if name == "" || strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
	}
	return nil
}

func blobName(name string) string { return name + Extension }

// Save encodes lib and stores it under name, replacing any previous version.
func (r *Repository) Save(ctx context.Context, name string, lib *library.Library) (err error) {
	start := time.Now()
	var size int
	defer func() {
		r.opts.metricsCollector.RecordSave(size, time.Since(start), err)
		r.opts.logger.LogSave(ctx, name, size, err)
	}()

	if err := validateName(name); err != nil {
		return err
	}
	data, err := persistence.Save(lib, r.opts.persistenceOptions()...)
	if err != nil {
		return translateError("save", name, err)
	}
	if err := r.store.Put(ctx, blobName(name), data); err != nil {
		return translateError("save", name, err)
	}
	size = len(data)
	return nil
}

// Load reads the library stored under name.
func (r *Repository) Load(ctx context.Context, name string) (lib *library.Library, err error) {
	start := time.Now()
	var size int
	defer func() {
		r.opts.metricsCollector.RecordLoad(size, time.Since(start), err)
		r.opts.logger.LogLoad(ctx, name, size, err)
	}()

	if err := validateName(name); err != nil {
		return nil, err
	}
	data, err := blobstore.Get(ctx, r.store, blobName(name))
	if err != nil {
		return nil, translateError("load", name, err)
	}
	lib, err = persistence.Load(data, r.opts.persistenceOptions()...)
	if err != nil {
		return nil, translateError("load", name, err)
	}
	size = len(data)
	return lib, nil
}

// LoadAll loads the named libraries in parallel. It fails with the first
// error encountered and cancels the remaining loads.
func (r *Repository) LoadAll(ctx context.Context, names ...string) (_ map[string]*library.Library, err error) {
	defer func() { r.opts.logger.LogLoadAll(ctx, len(names), err) }()

	libs := make([]*library.Library, len(names))
	g, gctx := errgroup.WithContext(ctx)
	if r.opts.concurrency > 0 {
		g.SetLimit(r.opts.concurrency)
	}
	for i, name := range names {
		g.Go(func() error {
			lib, err := r.Load(gctx, name)
			if err != nil {
				return err
			}
			libs[i] = lib
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]*library.Library, len(names))
	for i, name := range names {
		out[name] = libs[i]
	}
	return out, nil
}

// List returns the names of all stored libraries, sorted.
func (r *Repository) List(ctx context.Context) ([]string, error) {
	blobs, err := r.store.List(ctx, "")
	if err != nil {
		return nil, translateError("list", "", err)
	}
	names := make([]string, 0, len(blobs))
	for _, b := range blobs {
		if path.Ext(b) == Extension {
			names = append(names, strings.TrimSuffix(b, Extension))
		}
	}
	return names, nil
}

// Delete removes the library stored under name. Deleting a missing library
// is not an error.
func (r *Repository) Delete(ctx context.Context, name string) (err error) {
	start := time.Now()
	defer func() {
		r.opts.metricsCollector.RecordDelete(time.Since(start), err)
		r.opts.logger.LogDelete(ctx, name, err)
	}()

	if err := validateName(name); err != nil {
		return err
	}
	if err := r.store.Delete(ctx, blobName(name)); err != nil {
		return translateError("delete", name, err)
	}
	return nil
}

// Export loads the library stored under name and writes it to dir as a
// text dump.
func (r *Repository) Export(ctx context.Context, name, dir string, opts ...textdump.Option) (err error) {
	lib, err := r.Load(ctx, name)
	if err != nil {
		return err
	}

	start := time.Now()
	defer func() {
		r.opts.metricsCollector.RecordExport(time.Since(start), err)
		r.opts.logger.LogExport(ctx, name, dir, err)
	}()

	if err := textdump.WriteDir(dir, lib, opts...); err != nil {
		return translateError("export", name, err)
	}
	return nil
}
