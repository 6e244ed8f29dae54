package persistence

import (
	"github.com/wandadars/spitfire/codec"
	"github.com/wandadars/spitfire/internal/fs"
)

type options struct {
	compression Compression
	codec       codec.Codec
	fs          fs.FileSystem
}

// Option configures encoding and file access.
type Option func(*options)

func newOptions(opts []Option) options {
	o := options{
		compression: CompressionNone,
		codec:       codec.Default,
		fs:          fs.Default,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithCompression sets the payload compression used when writing.
func WithCompression(c Compression) Option {
	return func(o *options) { o.compression = c }
}

// WithCodec sets the codec for extra attributes when writing, and for
// legacy blobs when reading. Versioned blobs record their own codec.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithFileSystem replaces the file system used by SaveToFile and LoadFromFile.
func WithFileSystem(fsys fs.FileSystem) Option {
	return func(o *options) {
		if fsys != nil {
			o.fs = fsys
		}
	}
}
