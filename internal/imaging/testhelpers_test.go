package imaging

import "testing"

// createUniformGrid creates a grid where every pixel is p
func createUniformGrid(t *testing.T, width, height int, p Pixel) *Grid {
	t.Helper()
	g, err := NewGrid(width, height)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	for i := range g.Pix {
		g.Pix[i] = p
	}
	return g
}

// createPatternGrid creates a grid whose channels vary with position so that
// any orientation or offset mistake changes the result.
func createPatternGrid(t *testing.T, width, height int) *Grid {
	t.Helper()
	g, err := NewGrid(width, height)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.Set(x, y, Pixel{
				R: uint8((x*37 + y*11) % 256),
				G: uint8((x*5 + y*53) % 256),
				B: uint8((x*x + y*7 + 100) % 256),
			})
		}
	}
	return g
}
