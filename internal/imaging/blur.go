package imaging

import (
	"errors"
	"fmt"
)

// ErrNegativeRadius is returned when a blur is requested with radius < 0.
var ErrNegativeRadius = errors.New("blur radius must not be negative")

// WindowArea returns the number of samples in a (2r+1)x(2r+1) window.
func WindowArea(radius int) int {
	side := 2*radius + 1
	return side * side
}

// Blur returns a new grid where every pixel is the box average of its
// (2r+1)x(2r+1) neighbourhood in src. The source grid is not modified.
//
// Parameters:
//   - src: The grid to read from.
//   - radius: Window radius. 0 returns an identical copy.
//
// Returns:
//   - *Grid: The blurred grid, same dimensions as src.
//   - error: ErrNegativeRadius if radius < 0.
//
// # Border Handling
//
// Positions of the window that fall outside the grid contribute nothing to the
// sum, but the divisor is always the full window area. Pixels closer than
// radius to an edge therefore come out darker than their neighbourhood:
//
//	out = floor(sum(in-bounds samples) / (2r+1)^2)
//
// The division truncates, so a uniform grid keeps its value only in the
// interior.
func Blur(src *Grid, radius int) (*Grid, error) {
	if radius < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeRadius, radius)
	}
	dst := &Grid{Width: src.Width, Height: src.Height, Pix: make([]Pixel, len(src.Pix))}
	BlurRows(src, dst, radius, 0, src.Height)
	return dst, nil
}

// BlurRows computes the box average for rows [y0, y1) of dst, reading only
// from src. Rows outside the range are left untouched, which lets disjoint
// row bands run concurrently against the same source.
//
// src and dst must have equal dimensions and must not share storage.
func BlurRows(src, dst *Grid, radius, y0, y1 int) {
	if y0 < 0 {
		y0 = 0
	}
	if y1 > src.Height {
		y1 = src.Height
	}
	area := uint64(WindowArea(radius))

	for y := y0; y < y1; y++ {
		top := clamp(y-radius, 0, src.Height-1)
		bottom := clamp(y+radius, 0, src.Height-1)
		out := dst.Row(y)

		for x := 0; x < src.Width; x++ {
			left := clamp(x-radius, 0, src.Width-1)
			right := clamp(x+radius, 0, src.Width-1)

			var sumR, sumG, sumB uint64
			for ny := top; ny <= bottom; ny++ {
				row := src.Pix[ny*src.Width : (ny+1)*src.Width]
				for nx := left; nx <= right; nx++ {
					p := row[nx]
					sumR += uint64(p.R)
					sumG += uint64(p.G)
					sumB += uint64(p.B)
				}
			}

			out[x] = Pixel{
				R: uint8(sumR / area),
				G: uint8(sumG / area),
				B: uint8(sumB / area),
			}
		}
	}
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
