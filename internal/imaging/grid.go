package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ErrInvalidDimensions is returned when a grid is created with a width or
// height smaller than 1.
var ErrInvalidDimensions = errors.New("grid dimensions must be at least 1x1")

// Pixel is a single RGB sample with 8-bit channels and no alpha.
type Pixel struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Grid is a rectangular array of pixels stored row-major.
//
// The pixel at column x, row y lives at Pix[y*Width+x]. Row 0 is the top row,
// which is also the first row written to and read from a PPM payload. The
// dimensions never change after the grid is created.
type Grid struct {
	Width  int
	Height int
	Pix    []Pixel
}

// NewGrid allocates a black grid of the given dimensions.
func NewGrid(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Grid{
		Width:  width,
		Height: height,
		Pix:    make([]Pixel, width*height),
	}, nil
}

// At returns the pixel at column x, row y. It panics if the position is out of bounds.
func (g *Grid) At(x, y int) Pixel {
	return g.Pix[g.offset(x, y)]
}

// Set stores p at column x, row y. It panics if the position is out of bounds.
func (g *Grid) Set(x, y int, p Pixel) {
	g.Pix[g.offset(x, y)] = p
}

// Row returns the pixels of row y as a slice sharing the grid's storage.
func (g *Grid) Row(y int) []Pixel {
	start := y * g.Width
	return g.Pix[start : start+g.Width : start+g.Width]
}

// InBounds reports whether (x, y) addresses a pixel of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	pix := make([]Pixel, len(g.Pix))
	copy(pix, g.Pix)
	return &Grid{Width: g.Width, Height: g.Height, Pix: pix}
}

// Equal reports whether both grids have the same dimensions and pixels.
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.Width != other.Width || g.Height != other.Height || len(g.Pix) != len(other.Pix) {
		return false
	}
	for i := range g.Pix {
		if g.Pix[i] != other.Pix[i] {
			return false
		}
	}
	return true
}

// ToImage converts the grid to an opaque *image.NRGBA anchored at (0,0).
func (g *Grid) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		row := g.Row(y)
		o := y * img.Stride
		for x, p := range row {
			img.Pix[o+x*4+0] = p.R
			img.Pix[o+x*4+1] = p.G
			img.Pix[o+x*4+2] = p.B
			img.Pix[o+x*4+3] = 0xff
		}
	}
	return img
}

// FromImage copies any image into a new grid, discarding alpha.
//
// Colors are converted to 8-bit NRGBA first so that translucent pixels keep
// their straight (non-premultiplied) channel values. An empty image yields an
// error wrapping ErrInvalidDimensions.
func FromImage(img image.Image) (*Grid, error) {
	bounds := img.Bounds()
	g, err := NewGrid(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.NRGBA)
			g.Pix[y*g.Width+x] = Pixel{R: c.R, G: c.G, B: c.B}
		}
	}
	return g, nil
}

func (g *Grid) offset(x, y int) int {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("imaging: position (%d,%d) outside %dx%d grid", x, y, g.Width, g.Height))
	}
	return y*g.Width + x
}
