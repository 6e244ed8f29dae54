package persistence

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandadars/spitfire/codec"
	"github.com/wandadars/spitfire/library"
	"github.com/wandadars/spitfire/ndarray"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			lib := flameletLibrary(t)

			data, err := Save(lib, WithCompression(c))
			require.NoError(t, err)
			assert.Equal(t, Magic[:], data[:4])

			got, err := Load(data)
			require.NoError(t, err)
			assert.True(t, lib.Equal(got))
			assert.Equal(t, lib.DimNames(), got.DimNames())
			assert.Equal(t, lib.Properties(), got.Properties())
		})
	}
}

func TestSaveLoad_Unstructured(t *testing.T) {
	x, err := library.NewUnstructuredDimension("x", []float64{0, 1, 1, 2})
	require.NoError(t, err)
	y, err := library.NewUnstructuredDimension("y", []float64{5, 5, 6, 6})
	require.NoError(t, err)
	lib, err := library.New(x, y)
	require.NoError(t, err)
	require.NoError(t, lib.SetPropertyData("p", []float64{1, 2, 3, 4}))

	data, err := Save(lib)
	require.NoError(t, err)
	got, err := Load(data)
	require.NoError(t, err)
	assert.False(t, got.Structured())
	assert.True(t, lib.Equal(got))
}

func TestSaveLoad_EmptyLibrary(t *testing.T) {
	lib, err := library.New()
	require.NoError(t, err)

	data, err := Save(lib)
	require.NoError(t, err)
	got, err := Load(data)
	require.NoError(t, err)
	assert.Equal(t, 0, got.NDim())
	assert.True(t, lib.Equal(got))
}

func TestEncode_CompressionHeader(t *testing.T) {
	z, err := library.NewDimension("z", make100())
	require.NoError(t, err)
	lib, err := library.New(z)
	require.NoError(t, err)
	require.NoError(t, lib.SetProperty("zeros", ndarray.New(100)))

	for _, c := range []Compression{CompressionLZ4, CompressionZSTD} {
		data, err := Save(lib, WithCompression(c))
		require.NoError(t, err)

		h, err := ReadHeader(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, c, h.Compression)
		assert.Less(t, h.StoredLength, h.RawLength)
		assert.Equal(t, uint64(len(data)-HeaderSize), h.StoredLength)
	}
}

func make100() []float64 {
	v := make([]float64, 100)
	for i := range v {
		v[i] = float64(i)
	}
	return v
}

func TestDecode_ChecksumMismatch(t *testing.T) {
	data, err := Save(flameletLibrary(t))
	require.NoError(t, err)
	data[len(data)-20] ^= 0xFF

	_, err = Load(data)
	require.Error(t, err)
	assert.True(t, IsChecksumMismatch(err))
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestDecode_Truncated(t *testing.T) {
	data, err := Save(flameletLibrary(t))
	require.NoError(t, err)

	_, err = Load(data[:10])
	require.ErrorIs(t, err, ErrCorrupt)

	_, err = Load(data[:HeaderSize+3])
	require.ErrorIs(t, err, ErrCorrupt)
	assert.Contains(t, err.Error(), "truncated")
}

func TestDecode_InvalidMagic(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("x"), []byte("garbage data")} {
		_, err := Load(data)
		require.ErrorIs(t, err, ErrInvalidMagic)
	}
}

func TestDecode_UnsupportedVersion(t *testing.T) {
	data, err := Save(flameletLibrary(t))
	require.NoError(t, err)
	binary.LittleEndian.PutUint16(data[4:6], 3)

	_, err = Load(data)
	require.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestDecode_SkipsUnknownSections(t *testing.T) {
	lib := flameletLibrary(t)
	raw, err := encodePayload(Capture(lib), codec.Default)
	require.NoError(t, err)

	// Drop the end section, add a section from a newer writer, re-terminate.
	e := encoder{buf: raw[:len(raw)-9]}
	e.section(0x42, []byte("from the future"))
	e.section(tagEnd, nil)

	got, err := Load(frame(t, e.buf))
	require.NoError(t, err)
	assert.True(t, lib.Equal(got))
}

func TestDecode_MalformedSections(t *testing.T) {
	var dims encoder
	dims.u32(0)
	var props encoder
	props.u32(0)

	t.Run("missing properties", func(t *testing.T) {
		var e encoder
		e.section(tagDimensions, dims.buf)
		e.section(tagEnd, nil)
		_, err := Unmarshal(frame(t, e.buf))
		require.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("duplicate section", func(t *testing.T) {
		var e encoder
		e.section(tagDimensions, dims.buf)
		e.section(tagDimensions, dims.buf)
		e.section(tagProperties, props.buf)
		e.section(tagEnd, nil)
		_, err := Unmarshal(frame(t, e.buf))
		require.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("no end section", func(t *testing.T) {
		var e encoder
		e.section(tagDimensions, dims.buf)
		e.section(tagProperties, props.buf)
		_, err := Unmarshal(frame(t, e.buf))
		require.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("oversized value count", func(t *testing.T) {
		var bad encoder
		bad.u32(1)
		bad.str("x")
		bad.bool(true)
		bad.u64(1 << 40)
		var e encoder
		e.section(tagDimensions, bad.buf)
		e.section(tagProperties, props.buf)
		e.section(tagEnd, nil)
		_, err := Unmarshal(frame(t, e.buf))
		require.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("unknown codec", func(t *testing.T) {
		var attrs encoder
		attrs.str("msgpack")
		attrs.bytes([]byte{0x80})
		var e encoder
		e.section(tagDimensions, dims.buf)
		e.section(tagProperties, props.buf)
		e.section(tagAttributes, attrs.buf)
		e.section(tagEnd, nil)
		_, err := Unmarshal(frame(t, e.buf))
		require.ErrorIs(t, err, ErrCorrupt)
		assert.Contains(t, err.Error(), "msgpack")
	})
}

func TestEncodeDecode_Stream(t *testing.T) {
	a := flameletLibrary(t)
	b := flameletLibrary(t)
	b.SetExtraAttribute("author", "you")

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, Capture(a), WithCompression(CompressionZSTD)))
	require.NoError(t, Encode(&buf, Capture(b)))

	first, err := Decode(&buf)
	require.NoError(t, err)
	second, err := Decode(&buf)
	require.NoError(t, err)

	assert.Equal(t, "me", first.Attributes["author"])
	assert.Equal(t, "you", second.Attributes["author"])
	assert.Zero(t, buf.Len())
}

func TestWithCodec(t *testing.T) {
	lib := flameletLibrary(t)
	data, err := Save(lib, WithCodec(codec.JSON{}))
	require.NoError(t, err)
	assert.True(t, bytes.Contains(data, []byte("\x04\x00\x00\x00json")), "attributes section records the codec name")

	got, err := Load(data)
	require.NoError(t, err)
	assert.True(t, lib.Equal(got))
}

func TestCapture_Independent(t *testing.T) {
	lib := flameletLibrary(t)
	snap := Capture(lib)
	snap.Dimensions[0].Values[0] = 42
	snap.Properties[0].Data[0] = 42
	snap.Attributes["author"] = "someone else"

	z, err := lib.Dim("mixture_fraction")
	require.NoError(t, err)
	assert.Equal(t, 0.0, z.Values()[0])
	temp, err := lib.Property("temperature")
	require.NoError(t, err)
	assert.Equal(t, 300.0, temp.Data()[0])
	assert.Equal(t, "me", lib.ExtraAttributes()["author"])
}

func TestRestore_ValidatesThroughConstruction(t *testing.T) {
	snap := Snapshot{
		Dimensions: []DimensionRecord{{Name: "x", Values: []float64{0, 1}, Structured: true}},
		Properties: []PropertyRecord{{Name: "p", Shape: []int{3}, Data: []float64{1, 2, 3}}},
	}
	_, err := Restore(snap)
	require.ErrorIs(t, err, library.ErrShapeMismatch)

	snap.Dimensions[0].Values = []float64{1, 1}
	_, err = Restore(snap)
	require.ErrorIs(t, err, library.ErrConstruction)
}

func TestParseCompression(t *testing.T) {
	tests := []struct {
		in   string
		want Compression
	}{
		{"", CompressionNone},
		{"none", CompressionNone},
		{"LZ4", CompressionLZ4},
		{" zstd ", CompressionZSTD},
	}
	for _, tt := range tests {
		got, err := ParseCompression(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
	_, err := ParseCompression("gzip")
	require.Error(t, err)

	var c Compression
	require.NoError(t, c.UnmarshalText([]byte("zstd")))
	assert.Equal(t, CompressionZSTD, c)
}
