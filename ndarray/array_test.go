package ndarray

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(shape ...int) *Array {
	a := New(shape...)
	for i := range a.data {
		a.data[i] = float64(i)
	}
	return a
}

func TestEmpty_InvalidShape(t *testing.T) {
	_, err := Empty()
	require.ErrorIs(t, err, ErrBadShape)

	_, err = Empty(3, 0)
	require.ErrorIs(t, err, ErrBadShape)

	_, err = Full(1, -1)
	require.ErrorIs(t, err, ErrBadShape)
}

func TestFromSlice_CopiesInput(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}
	a, err := FromSlice([]int{2, 3}, data)
	require.NoError(t, err)

	data[0] = 100
	v, err := a.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	_, err = FromSlice([]int{4}, data)
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestAtSet(t *testing.T) {
	a := seq(3, 2)

	v, err := a.At(2, 1)
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)

	v, err = a.At(-1, -2)
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)

	require.NoError(t, a.Set(42, 1, 0))
	assert.Equal(t, 42.0, a.Data()[2])

	_, err = a.At(3, 0)
	require.ErrorIs(t, err, ErrOutOfRange)

	_, err = a.At(0)
	require.ErrorIs(t, err, ErrRank)
}

func TestReshape(t *testing.T) {
	a := seq(2, 3)
	b, err := a.Reshape(3, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, b.Shape())
	assert.Equal(t, a.Data(), b.Data())

	_, err = a.Reshape(4, 2)
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestSqueeze(t *testing.T) {
	a := seq(1, 3, 1)

	b, err := a.Squeeze()
	require.NoError(t, err)
	assert.Equal(t, []int{3}, b.Shape())

	c, err := a.Squeeze(2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, c.Shape())

	_, err = a.Squeeze(1)
	require.ErrorIs(t, err, ErrShapeMismatch)

	_, err = New(1, 1).Squeeze()
	require.ErrorIs(t, err, ErrBadShape)
}

func TestScalar(t *testing.T) {
	a, err := Full(7, 1, 1)
	require.NoError(t, err)
	v, err := a.Scalar()
	require.NoError(t, err)
	assert.Equal(t, 7.0, v)

	_, err = New(2).Scalar()
	require.ErrorIs(t, err, ErrNotScalar)
}

func TestRavel(t *testing.T) {
	a := seq(2, 3) // [[0 1 2] [3 4 5]]

	assert.Equal(t, []float64{0, 1, 2, 3, 4, 5}, a.Ravel(RowMajor))
	assert.Equal(t, []float64{0, 3, 1, 4, 2, 5}, a.Ravel(ColumnMajor))

	b := seq(2, 2, 2)
	assert.Equal(t, []float64{0, 4, 2, 6, 1, 5, 3, 7}, b.Ravel(ColumnMajor))
}

func TestParseOrder(t *testing.T) {
	o, err := ParseOrder("F")
	require.NoError(t, err)
	assert.Equal(t, ColumnMajor, o)
	assert.Equal(t, "C", RowMajor.String())

	_, err = ParseOrder("K")
	require.Error(t, err)
}

func TestClone_Independent(t *testing.T) {
	a := seq(2, 2)
	b := a.Clone()
	b.Data()[0] = -1
	assert.Equal(t, 0.0, a.Data()[0])
	assert.False(t, Equal(a, b))
}

func TestAllClose(t *testing.T) {
	a := seq(3)
	b := a.Clone()
	b.Data()[1] += 1e-12
	assert.True(t, AllClose(a, b, 0, 1e-9))
	assert.False(t, Equal(a, b))
	assert.False(t, AllClose(a, seq(1, 3), 0, 1))
}
