package benchmark_test

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wandadars/spitfire"
	"github.com/wandadars/spitfire/blobstore"
	"github.com/wandadars/spitfire/library"
	"github.com/wandadars/spitfire/ndarray"
	"github.com/wandadars/spitfire/persistence"
	"github.com/wandadars/spitfire/testutil"
	"github.com/wandadars/spitfire/textdump"
)

var benchShapes = [][]int{
	{64, 32},
	{128, 64, 8},
}

func shapeName(shape []int) string {
	parts := make([]string, len(shape))
	for i, n := range shape {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, "x")
}

func benchLibrary(b *testing.B, shape []int) *library.Library {
	b.Helper()
	return testutil.NewRNG(4711).Library(testutil.LibraryShape{
		Dims:       shape,
		Properties: []string{"temperature", "density", "viscosity", "mass fraction OH"},
		Attributes: map[string]any{"fuel": "CH4", "pressure": 101325.0},
	})
}

var compressions = []persistence.Compression{
	persistence.CompressionNone,
	persistence.CompressionLZ4,
	persistence.CompressionZSTD,
}

// BenchmarkSave benchmarks binary encoding per compression mode.
func BenchmarkSave(b *testing.B) {
	for _, shape := range benchShapes {
		lib := benchLibrary(b, shape)
		for _, c := range compressions {
			b.Run(shapeName(shape)+"/"+c.String(), func(b *testing.B) {
				b.ReportAllocs()
				for b.Loop() {
					data, err := persistence.Save(lib, persistence.WithCompression(c))
					if err != nil {
						b.Fatal(err)
					}
					b.SetBytes(int64(len(data)))
				}
			})
		}
	}
}

// BenchmarkLoad benchmarks decoding and library reconstruction.
func BenchmarkLoad(b *testing.B) {
	for _, shape := range benchShapes {
		lib := benchLibrary(b, shape)
		for _, c := range compressions {
			data, err := persistence.Save(lib, persistence.WithCompression(c))
			if err != nil {
				b.Fatal(err)
			}
			b.Run(shapeName(shape)+"/"+c.String(), func(b *testing.B) {
				b.ReportAllocs()
				b.SetBytes(int64(len(data)))
				for b.Loop() {
					if _, err := persistence.Load(data); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

// BenchmarkRepositoryLoadAll benchmarks parallel loads from a memory store.
func BenchmarkRepositoryLoadAll(b *testing.B) {
	ctx := context.Background()
	repo := spitfire.NewRepository(blobstore.NewMemoryStore(), spitfire.WithConcurrency(4))
	lib := benchLibrary(b, benchShapes[0])

	names := make([]string, 16)
	for i := range names {
		names[i] = fmt.Sprintf("lib-%02d", i)
		if err := repo.Save(ctx, names[i], lib); err != nil {
			b.Fatal(err)
		}
	}

	for b.Loop() {
		if _, err := repo.LoadAll(ctx, names...); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSlice benchmarks sub-grid extraction.
func BenchmarkSlice(b *testing.B) {
	lib := benchLibrary(b, benchShapes[1])
	ranges := []ndarray.Range{ndarray.Span(10, 100), ndarray.All().By(2), ndarray.Index(3)}

	b.ReportAllocs()
	for b.Loop() {
		if _, err := lib.Slice(ranges...); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkTextDump benchmarks writing the text directory layout.
func BenchmarkTextDump(b *testing.B) {
	lib := benchLibrary(b, benchShapes[0])
	dir := filepath.Join(b.TempDir(), "dump")

	for b.Loop() {
		if err := textdump.WriteDir(dir, lib, textdump.WithOverwrite(true)); err != nil {
			b.Fatal(err)
		}
	}
}
