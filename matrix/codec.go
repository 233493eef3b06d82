// SPDX-License-Identifier: MIT

// Package matrix - text and binary interchange formats.
//
//   - Text: "<rows> <cols>\n" then every value followed by a space, with a
//     newline after each row. Values use the shortest form that parses back
//     to the same float64.
//   - Binary: rows and cols as uint64, then rows*cols float64 values, all in
//     the host byte order. No magic, no version: the format is known out of band.
package matrix

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

const (
	opWriteText   = "WriteText"
	opReadText    = "ReadText"
	opWriteBinary = "WriteBinary"
	opReadBinary  = "ReadBinary"
)

// binaryChunk bounds how many elements ReadBinary and ReadText allocate ahead
// of the values actually received, so a corrupt header cannot force a huge allocation.
const binaryChunk = 1 << 16

// WriteText writes m in the text format.
//
// Errors:
//   - ErrNilMatrix; any error of w.
//
// Complexity:
//   - Time O(r*c).
func WriteText(w io.Writer, m *Dense) error {
	if err := ValidateNotNil(m); err != nil {
		return matrixErrorf(opWriteText, err)
	}
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 32)
	buf = strconv.AppendInt(buf, int64(m.r), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(m.c), 10)
	buf = append(buf, '\n')
	if _, err := bw.Write(buf); err != nil {
		return matrixErrorf(opWriteText, err)
	}
	var i, j int
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			buf = strconv.AppendFloat(buf[:0], m.data[i*m.c+j], 'g', -1, 64)
			buf = append(buf, ' ')
			if j == m.c-1 {
				buf = append(buf, '\n')
			}
			if _, err := bw.Write(buf); err != nil {
				return matrixErrorf(opWriteText, err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return matrixErrorf(opWriteText, err)
	}

	return nil
}

// ReadText parses the text format. Tokens may be separated by any
// whitespace; tokens after the last value are ignored.
//
// Errors:
//   - ErrUnsupportedFormat for malformed or short input.
//   - ErrInvalidDimensions for negative or overflowing dimensions.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func ReadText(r io.Reader) (*Dense, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	sc.Split(bufio.ScanWords)

	next := func(what string) (string, error) {
		if sc.Scan() {
			return sc.Text(), nil
		}
		if err := sc.Err(); err != nil {
			return "", err
		}

		return "", fmt.Errorf("missing %s: %w", what, ErrUnsupportedFormat)
	}

	var dims [2]int
	for k, what := range []string{"rows", "cols"} {
		tok, err := next(what)
		if err != nil {
			return nil, matrixErrorf(opReadText, err)
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, matrixErrorf(opReadText, fmt.Errorf("%s %q: %w", what, tok, ErrUnsupportedFormat))
		}
		dims[k] = v
	}
	n, err := elementCount(dims[0], dims[1])
	if err != nil {
		return nil, matrixErrorf(opReadText, err)
	}

	data := make([]float64, 0, min(n, binaryChunk))
	var (
		tok string
		v   float64
	)
	for len(data) < n {
		if tok, err = next("value"); err != nil {
			return nil, matrixErrorf(opReadText, fmt.Errorf("element %d of %d: %w", len(data), n, err))
		}
		if v, err = strconv.ParseFloat(tok, 64); err != nil {
			return nil, matrixErrorf(opReadText, fmt.Errorf("element %d %q: %w", len(data), tok, ErrUnsupportedFormat))
		}
		data = append(data, v)
	}

	return &Dense{r: dims[0], c: dims[1], data: data}, nil
}

// WriteBinary writes m in the binary format.
//
// Errors:
//   - ErrNilMatrix; any error of w.
func WriteBinary(w io.Writer, m *Dense) error {
	if err := ValidateNotNil(m); err != nil {
		return matrixErrorf(opWriteBinary, err)
	}
	bw := bufio.NewWriter(w)
	var word [8]byte
	binary.NativeEndian.PutUint64(word[:], uint64(m.r))
	if _, err := bw.Write(word[:]); err != nil {
		return matrixErrorf(opWriteBinary, err)
	}
	binary.NativeEndian.PutUint64(word[:], uint64(m.c))
	if _, err := bw.Write(word[:]); err != nil {
		return matrixErrorf(opWriteBinary, err)
	}
	for _, v := range m.data {
		binary.NativeEndian.PutUint64(word[:], math.Float64bits(v))
		if _, err := bw.Write(word[:]); err != nil {
			return matrixErrorf(opWriteBinary, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return matrixErrorf(opWriteBinary, err)
	}

	return nil
}

// ReadBinary is the exact inverse of WriteBinary. It reads no byte past the
// last element, so several matrices can be read back to back from one stream.
//
// Errors:
//   - io.EOF when the stream is empty.
//   - io.ErrUnexpectedEOF (wrapped) when the stream ends mid-matrix.
//   - ErrInvalidDimensions when the dimensions do not fit in int.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func ReadBinary(r io.Reader) (*Dense, error) {
	var hdr [16]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, matrixErrorf(opReadBinary, err)
	}
	ur := binary.NativeEndian.Uint64(hdr[0:8])
	uc := binary.NativeEndian.Uint64(hdr[8:16])
	if ur > math.MaxInt || uc > math.MaxInt {
		return nil, matrixErrorf(opReadBinary, fmt.Errorf("%dx%d: %w", ur, uc, ErrInvalidDimensions))
	}
	rows, cols := int(ur), int(uc)
	n, err := elementCount(rows, cols)
	if err != nil || n > math.MaxInt/8 {
		return nil, matrixErrorf(opReadBinary, fmt.Errorf("%dx%d: %w", rows, cols, ErrInvalidDimensions))
	}

	data := make([]float64, 0, min(n, binaryChunk))
	raw := make([]byte, 8*min(n, binaryChunk))
	var k, take int
	for len(data) < n {
		take = min(n-len(data), binaryChunk)
		if _, err = io.ReadFull(r, raw[:8*take]); err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}

			return nil, matrixErrorf(opReadBinary, fmt.Errorf("element %d of %d: %w", len(data), n, err))
		}
		for k = 0; k < take; k++ {
			data = append(data, math.Float64frombits(binary.NativeEndian.Uint64(raw[8*k:])))
		}
	}

	return &Dense{r: rows, c: cols, data: data}, nil
}
