package integration_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandadars/spitfire"
	"github.com/wandadars/spitfire/blobstore"
	"github.com/wandadars/spitfire/library"
	"github.com/wandadars/spitfire/ndarray"
	"github.com/wandadars/spitfire/persistence"
	"github.com/wandadars/spitfire/testutil"
	"github.com/wandadars/spitfire/textdump"
)

func TestE2E_Restart(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	lib := testutil.NewRNG(7).Library(testutil.LibraryShape{
		Dims:       []int{12, 6, 3},
		Properties: []string{"temperature", "density"},
		Attributes: map[string]any{"fuel": "CH4"},
	})

	// 1. Save through one repository
	repo := spitfire.NewRepository(blobstore.NewLocalStore(dir),
		spitfire.WithCompression(persistence.CompressionZSTD))
	require.NoError(t, repo.Save(ctx, "ch4/air", lib))

	// 2. Reopen and verify
	repo = spitfire.NewRepository(blobstore.NewLocalStore(dir))
	names, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ch4/air"}, names)

	got, err := repo.Load(ctx, "ch4/air")
	require.NoError(t, err)
	assert.True(t, lib.Equal(got))
	assert.Equal(t, "CH4", got.ExtraAttributes()["fuel"])

	// The file on disk is a direct persistence blob.
	direct, err := persistence.LoadFromFile(filepath.Join(dir, "ch4", "air"+spitfire.Extension))
	require.NoError(t, err)
	assert.True(t, lib.Equal(direct))
}

func TestE2E_SliceSqueezeExport(t *testing.T) {
	ctx := context.Background()
	repo := spitfire.NewRepository(blobstore.NewMemoryStore())

	z, err := library.NewDimension("mixture_fraction", []float64{0, 0.25, 0.5, 0.75, 1})
	require.NoError(t, err)
	chi, err := library.NewDimension("dissipation_rate", []float64{1, 10, 100})
	require.NoError(t, err)
	lib, err := library.New(z, chi)
	require.NoError(t, err)

	temp, err := lib.EmptyDataset()
	require.NoError(t, err)
	for i := range temp.Data() {
		temp.Data()[i] = 300 + float64(i)
	}
	require.NoError(t, lib.SetProperty("temperature", temp))
	require.NoError(t, repo.Save(ctx, "flamelet", lib))

	loaded, err := repo.Load(ctx, "flamelet")
	require.NoError(t, err)

	sub, err := loaded.Slice(ndarray.All(), ndarray.Index(-1))
	require.NoError(t, err)
	res, err := library.Squeeze(sub)
	require.NoError(t, err)
	require.NotNil(t, res.Library)

	profile, err := res.Library.Property("temperature")
	require.NoError(t, err)
	assert.Equal(t, []float64{302, 305, 308, 311, 314}, profile.Data())

	require.NoError(t, repo.Save(ctx, "flamelet-chi100", res.Library))

	out := filepath.Join(t.TempDir(), "chi100")
	require.NoError(t, repo.Export(ctx, "flamelet-chi100", out))

	names, err := os.ReadFile(filepath.Join(out, textdump.IndependentVariablesFile))
	require.NoError(t, err)
	assert.Equal(t, "mixture_fraction\n", string(names))

	bulk, err := os.ReadFile(filepath.Join(out, textdump.BulkDataFile("temperature")))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(bulk)), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "3.02"))
}

func TestE2E_LegacyUpgrade(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	legacy := `{
		"dimensions": {"x": {"name": "x", "values": [0.5, 1.5]}},
		"dim_ordering": {"0": "x"},
		"properties": {"rho": [1.2, 0.3]},
		"extra_attributes": {"source": "old writer"}
	}`
	require.NoError(t, store.Put(ctx, "old"+spitfire.Extension, []byte(legacy)))

	repo := spitfire.NewRepository(store)
	lib, err := repo.Load(ctx, "old")
	require.NoError(t, err)
	assert.Equal(t, "old writer", lib.ExtraAttributes()["source"])

	// Saving again writes the current format.
	require.NoError(t, repo.Save(ctx, "old", lib))
	data, err := blobstore.Get(ctx, store, "old"+spitfire.Extension)
	require.NoError(t, err)
	assert.False(t, persistence.IsLegacy(data))
	assert.Equal(t, persistence.Magic[:], data[:4])
}
