package ppm

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/ironsheep/ppm-editor/internal/imaging"
)

// CreatedBy is written into the comment line of every encoded file.
const CreatedBy = "PPM IMAGE EDITOR"

// Encode writes g to path as a binary PPM, replacing any existing file.
//
// Returns an *IOError if the file cannot be created, or if any part of the
// header or payload cannot be written.
func Encode(path string, g *imaging.Grid) error {
	if err := validateGrid(g); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}

	if err := EncodeWriter(f, g); err != nil {
		f.Close()
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &IOError{Op: "close", Path: path, Err: err}
	}
	return nil
}

// EncodeWriter writes g to w as a binary PPM.
//
// The header is "P6", one comment line, "width height" and "255", each on its
// own line, followed by the raw row-major R,G,B payload.
func EncodeWriter(w io.Writer, g *imaging.Grid) error {
	if err := validateGrid(g); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n# Created by %s\n%d %d\n%d\n", Magic, CreatedBy, g.Width, g.Height, MaxValue); err != nil {
		return err
	}

	rowBytes := make([]byte, g.Width*3)
	for y := 0; y < g.Height; y++ {
		for x, p := range g.Row(y) {
			rowBytes[x*3] = p.R
			rowBytes[x*3+1] = p.G
			rowBytes[x*3+2] = p.B
		}
		if _, err := bw.Write(rowBytes); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func validateGrid(g *imaging.Grid) error {
	if g == nil {
		return fmt.Errorf("ppm: cannot encode nil grid")
	}
	if g.Width < 1 || g.Height < 1 || len(g.Pix) != g.Width*g.Height {
		return fmt.Errorf("ppm: cannot encode grid: %w (%dx%d with %d pixels)",
			imaging.ErrInvalidDimensions, g.Width, g.Height, len(g.Pix))
	}
	return nil
}
