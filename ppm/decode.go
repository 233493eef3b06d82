// SPDX-License-Identifier: MIT

// Package ppm reads Netpbm images as luminance vectors and writes matrix
// columns back out as grayscale P6 rasters.
//
// Decoding is delegated to github.com/spakin/netpbm, so plain and raw PBM,
// PGM and PPM files at any maxval are accepted. Decoded intensities are on
// the 0..255 scale whatever the file's maxval, so images of different bit
// depths can share one training matrix. Colour pixels are reduced with the
// Rec. 601 weights 0.299 R + 0.587 G + 0.114 B.
package ppm

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/spakin/netpbm"

	"github.com/katalvlaran/eigenface/matrix"
)

const (
	// maxPixels bounds width*height so a forged header cannot force a huge
	// allocation.
	maxPixels = 1 << 28

	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114

	// channelScale maps a 16-bit color.Color channel onto 0..255.
	channelScale = 255.0 / 0xffff
)

// Image is a decoded raster: Gray holds Width*Height intensities, row-major.
type Image struct {
	Width  int
	Height int
	Gray   []float64
}

// Len returns the number of pixels.
func (img *Image) Len() int { return len(img.Gray) }

// Decode reads one Netpbm image from r.
//
// Behavior highlights:
//   - The header is checked before the raster is decoded; images above
//     maxPixels are rejected without allocating them.
//   - Samples are rescaled by 255/maxval; for maxval 255 and 65535 they are
//     exact.
//   - Pixels with R=G=B keep that value; others are reduced to luminance.
//
// Errors:
//   - matrix.ErrUnsupportedFormat for an unknown magic, a malformed header or
//     a truncated raster; any read error of r.
func Decode(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("ppm: read: %w", err)
	}
	cfg, err := netpbm.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("ppm: header: %w: %w", matrix.ErrUnsupportedFormat, err)
	}
	width, height := cfg.Width, cfg.Height
	if width <= 0 || height <= 0 || width > maxPixels/height {
		return nil, fmt.Errorf("ppm: size %dx%d: %w", width, height, matrix.ErrUnsupportedFormat)
	}

	src, err := netpbm.Decode(bytes.NewReader(data), &netpbm.DecodeOptions{Target: netpbm.PNM, Exact: true})
	if err != nil {
		return nil, fmt.Errorf("ppm: raster: %w: %w", matrix.ErrUnsupportedFormat, err)
	}

	return toGray(src), nil
}

// toGray flattens src row-major into 0..255 intensities.
func toGray(src image.Image) *Image {
	b := src.Bounds()
	img := &Image{Width: b.Dx(), Height: b.Dy(), Gray: make([]float64, b.Dx()*b.Dy())}
	var (
		x, y, i  int
		r, g, bl uint32
	)
	for y = b.Min.Y; y < b.Max.Y; y++ {
		for x = b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ = src.At(x, y).RGBA()
			if r == g && g == bl {
				img.Gray[i] = float64(r) * channelScale
			} else {
				img.Gray[i] = lumaR*float64(r)*channelScale +
					lumaG*float64(g)*channelScale +
					lumaB*float64(bl)*channelScale
			}
			i++
		}
	}

	return img
}
