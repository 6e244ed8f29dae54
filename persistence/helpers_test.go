package persistence

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wandadars/spitfire/library"
)

func flameletLibrary(t *testing.T) *library.Library {
	t.Helper()
	z, err := library.NewDimension("mixture_fraction", []float64{0, 0.25, 0.5, 1})
	require.NoError(t, err)
	chi, err := library.NewDimension("dissipation_rate", []float64{1e-3, 1, 1e3})
	require.NoError(t, err)

	lib, err := library.New(z, chi)
	require.NoError(t, err)

	temp := make([]float64, lib.Size())
	mass := make([]float64, lib.Size())
	for i := range temp {
		temp[i] = 300 + 17.5*float64(i)
		mass[i] = float64(i) / 12
	}
	require.NoError(t, lib.SetPropertyData("temperature", temp))
	require.NoError(t, lib.SetPropertyData("mass fraction OH", mass))
	lib.SetExtraAttribute("author", "me")
	lib.SetExtraAttribute("pressure", 101325.0)
	lib.SetExtraAttribute("tags", []any{"hydrogen", "air"})
	return lib
}

// frame wraps a raw payload in an uncompressed header.
func frame(t *testing.T, raw []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, writeHeader(&buf, Header{
		Magic:        Magic,
		Version:      Version,
		RawLength:    uint64(len(raw)),
		StoredLength: uint64(len(raw)),
		Checksum:     CalculateChecksum(raw),
	}))
	buf.Write(raw)
	return buf.Bytes()
}
