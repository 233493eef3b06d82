// SPDX-License-Identifier: MIT
// Package matrix_test - text and binary codecs.

package matrix_test

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/eigenface/matrix"
)

func TestWriteText_Layout(t *testing.T) {
	t.Parallel()

	m := NewFilledDense(t, 2, 3, []float64{
		1, 2.5, -3,
		0.1, 1e-20, 4,
	})
	var buf bytes.Buffer
	require.NoError(t, matrix.WriteText(&buf, m))
	require.Equal(t, "2 3\n1 2.5 -3 \n0.1 1e-20 4 \n", buf.String())
}

func TestText_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, shape := range [][2]int{{0, 0}, {3, 0}, {1, 1}, {4, 7}, {10, 3}} {
		m := RandFilledDense(t, shape[0], shape[1], 5)
		var buf bytes.Buffer
		require.NoError(t, matrix.WriteText(&buf, m))
		got, err := matrix.ReadText(&buf)
		require.NoError(t, err)
		require.Equal(t, m.Rows(), got.Rows())
		require.Equal(t, m.Cols(), got.Cols())
		// shortest round-trip form makes text exact for float64
		CompareClose(t, got, m, 0, 0)
	}
}

func TestReadText_Malformed(t *testing.T) {
	t.Parallel()

	for name, in := range map[string]string{
		"empty":     "",
		"no cols":   "3",
		"bad rows":  "x 2\n1 2\n",
		"bad value": "1 2\n1 abc\n",
		"short":     "2 2\n1 2 3",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := matrix.ReadText(strings.NewReader(in))
			require.ErrorIs(t, err, matrix.ErrUnsupportedFormat)
		})
	}

	_, err := matrix.ReadText(strings.NewReader("-1 2\n"))
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestBinary_RoundTripExact(t *testing.T) {
	t.Parallel()

	m := NewFilledDense(t, 2, 3, []float64{
		math.Pi, -0.0, math.SmallestNonzeroFloat64,
		math.MaxFloat64, math.Inf(-1), 1e-300,
	})
	var buf bytes.Buffer
	require.NoError(t, matrix.WriteBinary(&buf, m))
	require.Equal(t, 16+8*6, buf.Len())
	require.Equal(t, uint64(2), binary.NativeEndian.Uint64(buf.Bytes()[0:8]))
	require.Equal(t, uint64(3), binary.NativeEndian.Uint64(buf.Bytes()[8:16]))

	got, err := matrix.ReadBinary(&buf)
	require.NoError(t, err)
	for k, v := range m.RawData() {
		require.Equal(t, math.Float64bits(v), math.Float64bits(got.RawData()[k]), "element %d", k)
	}
}

// TestBinary_BackToBack: ReadBinary stops at the last element of each matrix.
func TestBinary_BackToBack(t *testing.T) {
	t.Parallel()

	a := RandFilledDense(t, 3, 2, 1)
	b := MustDense(t, 0, 4)
	c := RandFilledDense(t, 1, 5, 2)
	var buf bytes.Buffer
	for _, m := range []*matrix.Dense{a, b, c} {
		require.NoError(t, matrix.WriteBinary(&buf, m))
	}
	for _, want := range []*matrix.Dense{a, b, c} {
		got, err := matrix.ReadBinary(&buf)
		require.NoError(t, err)
		require.Equal(t, want.Rows(), got.Rows())
		require.Equal(t, want.Cols(), got.Cols())
		CompareClose(t, got, want, 0, 0)
	}
	_, err := matrix.ReadBinary(&buf)
	require.ErrorIs(t, err, io.EOF)
}

func TestReadBinary_Truncated(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, matrix.WriteBinary(&buf, RandFilledDense(t, 4, 4, 9)))
	raw := buf.Bytes()

	_, err := matrix.ReadBinary(bytes.NewReader(raw[:len(raw)-3]))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = matrix.ReadBinary(bytes.NewReader(raw[:10]))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	// header only: rows*cols promised, nothing delivered
	_, err = matrix.ReadBinary(bytes.NewReader(raw[:16]))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReadBinary_HugeHeader(t *testing.T) {
	t.Parallel()

	var hdr [16]byte
	binary.NativeEndian.PutUint64(hdr[0:8], math.MaxUint64)
	binary.NativeEndian.PutUint64(hdr[8:16], 2)
	_, err := matrix.ReadBinary(bytes.NewReader(hdr[:]))
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	binary.NativeEndian.PutUint64(hdr[0:8], 1<<40)
	binary.NativeEndian.PutUint64(hdr[8:16], 1<<40)
	_, err = matrix.ReadBinary(bytes.NewReader(hdr[:]))
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestReadText_HugeHeader(t *testing.T) {
	t.Parallel()

	_, err := matrix.ReadText(strings.NewReader("1000000000 1000000000\n1 2 3\n"))
	require.ErrorIs(t, err, matrix.ErrUnsupportedFormat)

	_, err = matrix.ReadText(strings.NewReader("4000000 4000000\n1\n"))
	require.ErrorIs(t, err, matrix.ErrUnsupportedFormat)

	_, err = matrix.ReadText(strings.NewReader("9223372036854775807 2\n"))
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestCodecs_NilMatrix(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, matrix.WriteText(io.Discard, nil), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.WriteBinary(io.Discard, nil), matrix.ErrNilMatrix)
}
