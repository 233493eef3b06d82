// SPDX-License-Identifier: MIT

package ppm

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/katalvlaran/eigenface/matrix"
)

// EncodeColumn writes column col of m as a width×height grayscale P6 image.
//
// Behavior highlights:
//   - scale=true maps [min, max] of the column linearly onto 0..255 (a flat
//     column becomes black); scale=false clamps to 0..255.
//   - Values are rounded to the nearest integer and written as R=G=B.
//
// Errors:
//   - matrix.ErrDimensionMismatch when width*height != m.Rows().
//   - matrix.ErrOutOfRange for a bad column; any error of w.
func EncodeColumn(w io.Writer, m *matrix.Dense, col, width, height int, scale bool) error {
	if err := matrix.ValidateNotNil(m); err != nil {
		return fmt.Errorf("ppm: encode: %w", err)
	}
	if width <= 0 || height <= 0 || width > m.Rows()/height || width*height != m.Rows() {
		return fmt.Errorf("ppm: encode %dx%d for %d pixels: %w", width, height, m.Rows(), matrix.ErrDimensionMismatch)
	}
	values, err := m.Column(col)
	if err != nil {
		return fmt.Errorf("ppm: encode: %w", err)
	}

	lo, span := 0.0, 255.0
	if scale {
		lo, span = minMax(values)
	}
	bw := bufio.NewWriter(w)
	if _, err = fmt.Fprintf(bw, "P6\n%d %d\n255\n", width, height); err != nil {
		return err
	}
	var px [3]byte
	for _, v := range values {
		if scale {
			if span == 0 {
				v = 0
			} else {
				v = (v - lo) / span * 255
			}
		}
		px[0] = clampByte(v)
		px[1], px[2] = px[0], px[0]
		if _, err = bw.Write(px[:]); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteColumnFile writes column col of m to path (see EncodeColumn).
func WriteColumnFile(path string, m *matrix.Dense, col, width, height int, scale bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ppm: %w", err)
	}
	if err = EncodeColumn(f, m, col, width, height, scale); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// minMax returns the smallest value and max-min.
func minMax(values []float64) (lo, span float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	return lo, hi - lo
}

func clampByte(v float64) byte {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return byte(math.Round(v))
	}
}
