package ppm

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/ppm-editor/internal/imaging"
)

// createPatternGrid creates a grid whose channels vary with position
func createPatternGrid(t *testing.T, width, height int) *imaging.Grid {
	t.Helper()
	g, err := imaging.NewGrid(width, height)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.Set(x, y, imaging.Pixel{
				R: uint8(x*31 + y),
				G: uint8(y*17 + 3),
				B: uint8((x + y) * 9),
			})
		}
	}
	return g
}

// writeTestFile writes raw bytes to a file in a per-test directory and
// returns its path.
func writeTestFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.ppm")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

// ppmBytes builds a file from a header string and a payload of n bytes
// following a simple counting pattern.
func ppmBytes(header string, n int) []byte {
	var buf bytes.Buffer
	buf.WriteString(header)
	for i := 0; i < n; i++ {
		buf.WriteByte(byte(i))
	}
	return buf.Bytes()
}
