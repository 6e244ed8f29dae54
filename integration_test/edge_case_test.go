package integration_test

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandadars/spitfire"
	"github.com/wandadars/spitfire/blobstore"
	"github.com/wandadars/spitfire/library"
	"github.com/wandadars/spitfire/persistence"
	"github.com/wandadars/spitfire/textdump"
)

func TestEdgeCases_NonFiniteValues(t *testing.T) {
	x, err := library.NewDimension("x", []float64{0, 1, 2, 3})
	require.NoError(t, err)
	lib, err := library.New(x)
	require.NoError(t, err)
	require.NoError(t, lib.SetPropertyData("p", []float64{math.NaN(), math.Inf(1), math.Inf(-1), math.Copysign(0, -1)}))

	for _, c := range []persistence.Compression{persistence.CompressionNone, persistence.CompressionLZ4, persistence.CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			data, err := persistence.Save(lib, persistence.WithCompression(c))
			require.NoError(t, err)
			got, err := persistence.Load(data)
			require.NoError(t, err)

			p, err := got.Property("p")
			require.NoError(t, err)
			assert.True(t, math.IsNaN(p.Data()[0]))
			assert.True(t, math.IsInf(p.Data()[1], 1))
			assert.True(t, math.IsInf(p.Data()[2], -1))
			assert.True(t, math.Signbit(p.Data()[3]))
		})
	}

	dir := filepath.Join(t.TempDir(), "dump")
	require.NoError(t, textdump.WriteDir(dir, lib))
	bulk, err := os.ReadFile(filepath.Join(dir, textdump.BulkDataFile("p")))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(bulk)), "\n")
	assert.Equal(t, []string{"nan", "inf", "-inf"}, lines[:3])
}

func TestEdgeCases_Names(t *testing.T) {
	ctx := context.Background()
	repo := spitfire.NewRepository(blobstore.NewMemoryStore())

	x, err := library.NewDimension("température", []float64{300, 400})
	require.NoError(t, err)
	lib, err := library.New(x)
	require.NoError(t, err)
	require.NoError(t, lib.SetPropertyData("mass fraction OH", []float64{1e-9, 2e-3}))
	require.NoError(t, lib.SetPropertyData("", []float64{1, 2}))

	require.NoError(t, repo.Save(ctx, "unicode", lib))
	got, err := repo.Load(ctx, "unicode")
	require.NoError(t, err)
	assert.Equal(t, []string{"température"}, got.DimNames())
	assert.Equal(t, []string{"mass fraction OH", ""}, got.Properties())
}

func TestEdgeCases_EmptyLibrary(t *testing.T) {
	ctx := context.Background()
	repo := spitfire.NewRepository(blobstore.NewMemoryStore())

	lib, err := library.New()
	require.NoError(t, err)
	lib.SetExtraAttribute("note", "placeholder")

	require.NoError(t, repo.Save(ctx, "empty", lib))
	got, err := repo.Load(ctx, "empty")
	require.NoError(t, err)
	assert.Empty(t, got.Dims())
	assert.Equal(t, "placeholder", got.ExtraAttributes()["note"])
}

func TestEdgeCases_CorruptBlob(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	repo := spitfire.NewRepository(store)

	x, err := library.NewDimension("x", []float64{0, 1})
	require.NoError(t, err)
	lib, err := library.New(x)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, "lib", lib))

	data, err := blobstore.Get(ctx, store, "lib"+spitfire.Extension)
	require.NoError(t, err)
	data[len(data)-1] ^= 0xFF
	require.NoError(t, store.Put(ctx, "lib"+spitfire.Extension, data))

	_, err = repo.Load(ctx, "lib")
	require.ErrorIs(t, err, persistence.ErrCorrupt)
	assert.True(t, persistence.IsChecksumMismatch(err))
}
