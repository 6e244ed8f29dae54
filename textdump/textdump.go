package textdump

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wandadars/spitfire/internal/fs"
	"github.com/wandadars/spitfire/library"
)

// File names of the dump layout.
const (
	IndependentVariablesFile = "metadata_independent_variables.txt"
	DependentVariablesFile   = "metadata_dependent_variables.txt"
	AttributesFile           = "metadata_user_defined_attributes.txt"
	BulkDataPrefix           = "bulkdata_"
)

var (
	// ErrOverwriteDeclined is returned when the output directory exists and
	// replacing it was not approved. Nothing is touched in that case.
	ErrOverwriteDeclined = errors.New("textdump: overwrite of existing directory declined")
	// ErrNameCollision is returned when two entries map to the same bulk data file.
	ErrNameCollision = errors.New("textdump: bulk data file name collision")
)

// FileName returns the file-system safe form of a property name.
func FileName(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}

// BulkDataFile returns the bulk data file name for a dimension or property.
func BulkDataFile(name string) string {
	return BulkDataPrefix + FileName(name) + ".txt"
}

// WriteDir dumps lib into dir.
func WriteDir(dir string, lib *library.Library, opts ...Option) error {
	o := newOptions(opts)

	dims := lib.DimNames()
	props := lib.Properties()
	if err := checkCollisions(dims, props); err != nil {
		return err
	}

	if _, err := o.fs.Stat(dir); err == nil {
		if !o.confirm(dir) {
			return fmt.Errorf("%w: %s", ErrOverwriteDeclined, dir)
		}
		if err := o.fs.RemoveAll(dir); err != nil {
			return fmt.Errorf("textdump: remove %s: %w", dir, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("textdump: stat %s: %w", dir, err)
	}
	if err := o.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("textdump: create %s: %w", dir, err)
	}

	w := &dirWriter{fs: o.fs, dir: dir}

	w.lines(IndependentVariablesFile, dims)
	underscored := make([]string, len(props))
	for i, p := range props {
		underscored[i] = FileName(p)
	}
	w.lines(DependentVariablesFile, underscored)
	w.attributes(lib.ExtraAttributes())

	for _, d := range lib.Dims() {
		w.values(BulkDataFile(d.Name()), d.Values())
	}
	for _, name := range props {
		p, err := lib.Property(name)
		if err != nil {
			return err
		}
		w.values(BulkDataFile(name), p.Ravel(o.order))
	}
	return w.err
}

func checkCollisions(dims, props []string) error {
	seen := make(map[string]string, len(dims)+len(props))
	for _, name := range append(append([]string(nil), dims...), props...) {
		f := BulkDataFile(name)
		if prev, ok := seen[f]; ok {
			return fmt.Errorf("%w: %q and %q both map to %s", ErrNameCollision, prev, name, f)
		}
		seen[f] = name
	}
	return nil
}

// dirWriter writes files into dir and stops at the first error.
type dirWriter struct {
	fs  fs.FileSystem
	dir string
	err error
}

func (w *dirWriter) write(name string, fill func(*bufio.Writer) error) {
	if w.err != nil {
		return
	}
	path := filepath.Join(w.dir, name)
	f, err := w.fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		w.err = fmt.Errorf("textdump: create %s: %w", path, err)
		return
	}
	bw := bufio.NewWriter(f)
	err = fill(bw)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		w.err = fmt.Errorf("textdump: write %s: %w", path, err)
	}
}

func (w *dirWriter) lines(name string, lines []string) {
	w.write(name, func(bw *bufio.Writer) error {
		for _, l := range lines {
			if _, err := io.WriteString(bw, l+"\n"); err != nil {
				return err
			}
		}
		return nil
	})
}

func (w *dirWriter) attributes(attrs map[string]any) {
	w.write(AttributesFile, func(bw *bufio.Writer) error {
		if len(attrs) == 0 {
			_, err := io.WriteString(bw, "{}\n")
			return err
		}
		enc := yaml.NewEncoder(bw)
		enc.SetIndent(2)
		if err := enc.Encode(attrs); err != nil {
			return err
		}
		return enc.Close()
	})
}

func (w *dirWriter) values(name string, values []float64) {
	w.write(name, func(bw *bufio.Writer) error {
		buf := make([]byte, 0, 32)
		for _, v := range values {
			buf = AppendValue(buf[:0], v)
			buf = append(buf, '\n')
			if _, err := bw.Write(buf); err != nil {
				return err
			}
		}
		return nil
	})
}

// AppendValue appends v formatted as %.18e, spelling non-finite values
// nan, inf and -inf.
func AppendValue(dst []byte, v float64) []byte {
	switch {
	case math.IsNaN(v):
		return append(dst, "nan"...)
	case math.IsInf(v, 1):
		return append(dst, "inf"...)
	case math.IsInf(v, -1):
		return append(dst, "-inf"...)
	default:
		return strconv.AppendFloat(dst, v, 'e', 18, 64)
	}
}
