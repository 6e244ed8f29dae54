package textdump

import (
	"github.com/wandadars/spitfire/internal/fs"
	"github.com/wandadars/spitfire/ndarray"
)

// ConfirmFunc decides whether an existing directory may be removed.
type ConfirmFunc func(dir string) bool

type options struct {
	confirm ConfirmFunc
	order   ndarray.Order
	fs      fs.FileSystem
}

// Option configures WriteDir.
type Option func(*options)

func newOptions(opts []Option) options {
	o := options{
		confirm: func(string) bool { return false },
		order:   ndarray.ColumnMajor,
		fs:      fs.Default,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithConfirm sets the callback consulted when the output directory exists.
// Without it an existing directory is never replaced.
func WithConfirm(f ConfirmFunc) Option {
	return func(o *options) {
		if f != nil {
			o.confirm = f
		}
	}
}

// WithOverwrite approves (or declines) replacing an existing directory
// without asking.
func WithOverwrite(overwrite bool) Option {
	return WithConfirm(func(string) bool { return overwrite })
}

// WithOrder sets the flattening order of property arrays.
func WithOrder(order ndarray.Order) Option {
	return func(o *options) { o.order = order }
}

// WithFileSystem replaces the file system the dump is written to.
func WithFileSystem(fsys fs.FileSystem) Option {
	return func(o *options) {
		if fsys != nil {
			o.fs = fsys
		}
	}
}
