package ppm

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/ironsheep/ppm-editor/internal/imaging"
)

const (
	// Magic is the only accepted format tag.
	Magic = "P6"

	// MaxValue is the only accepted maximum channel value.
	MaxValue = 255

	// MaxPixels bounds width*height so a corrupt header cannot trigger a
	// huge allocation.
	MaxPixels = 1 << 28

	// asciiMagic is the plain-text pixmap tag. It is recognised only to give a
	// clearer error.
	asciiMagic = "P3"
)

// Header holds the parsed fields of a PPM header.
type Header struct {
	Width    int
	Height   int
	MaxValue int
}

// PayloadSize returns the number of raster bytes that follow the header.
func (h Header) PayloadSize() int64 {
	return int64(h.Width) * int64(h.Height) * 3
}

// Decode reads the binary PPM file at path into a new grid.
//
// Returns an *IOError if the file cannot be opened or read, or a *FormatError
// if its contents are not a valid 8-bit P6 image. No partial grid is returned
// on failure.
func Decode(path string) (*imaging.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	return decode(bufio.NewReader(f), path)
}

// DecodeReader reads a binary PPM image from r.
func DecodeReader(r io.Reader) (*imaging.Grid, error) {
	return decode(bufio.NewReader(r), "")
}

func decode(br *bufio.Reader, path string) (*imaging.Grid, error) {
	h, err := readHeader(br, path)
	if err != nil {
		return nil, err
	}

	g, err := imaging.NewGrid(h.Width, h.Height)
	if err != nil {
		return nil, formatErrorf(ErrInvalidDimensions, "%v", err)
	}

	rowBytes := make([]byte, h.Width*3)
	for y := 0; y < h.Height; y++ {
		n, err := io.ReadFull(br, rowBytes)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				got := int64(y)*int64(len(rowBytes)) + int64(n)
				return nil, formatErrorf(ErrTruncatedData, "payload has %d of %d bytes", got, h.PayloadSize())
			}
			return nil, &IOError{Op: "read", Path: path, Err: err}
		}

		row := g.Row(y)
		for x := range row {
			row[x] = imaging.Pixel{R: rowBytes[x*3], G: rowBytes[x*3+1], B: rowBytes[x*3+2]}
		}
	}

	return g, nil
}

// readHeader parses the magic tag, dimensions and maxval, leaving br
// positioned at the first payload byte.
func readHeader(br *bufio.Reader, path string) (Header, error) {
	var h Header

	magic := make([]byte, 2)
	if _, err := io.ReadFull(br, magic); err != nil {
		return h, headerReadError(err, path)
	}
	if string(magic) == asciiMagic {
		return h, formatErrorf(ErrUnsupportedMagic, "ASCII pixmap %q is not supported", magic)
	}
	if string(magic) != Magic {
		return h, formatErrorf(ErrUnsupportedMagic, "got %q", magic)
	}
	next, err := br.Peek(1)
	if err != nil {
		return h, headerReadError(err, path)
	}
	if !isSpace(next[0]) && next[0] != '#' {
		return h, formatErrorf(ErrUnsupportedMagic, "got %q", string(magic)+string(next))
	}

	if h.Width, err = readInt(br, path, ErrInvalidDimensions, "width"); err != nil {
		return h, err
	}
	if h.Height, err = readInt(br, path, ErrInvalidDimensions, "height"); err != nil {
		return h, err
	}
	if h.Width <= 0 || h.Height <= 0 {
		return h, formatErrorf(ErrInvalidDimensions, "got %dx%d", h.Width, h.Height)
	}
	if int64(h.Width)*int64(h.Height) > MaxPixels {
		return h, formatErrorf(ErrInvalidDimensions, "%dx%d exceeds %d pixels", h.Width, h.Height, MaxPixels)
	}

	if h.MaxValue, err = readInt(br, path, ErrUnsupportedColorDepth, "maxval"); err != nil {
		return h, err
	}
	if h.MaxValue != MaxValue {
		return h, formatErrorf(ErrUnsupportedColorDepth, "got maxval %d", h.MaxValue)
	}

	// Exactly one whitespace byte separates the header from the payload.
	b, err := br.ReadByte()
	if err != nil {
		return h, headerReadError(err, path)
	}
	if !isSpace(b) {
		return h, formatErrorf(ErrUnsupportedColorDepth, "maxval followed by %q instead of whitespace", b)
	}

	return h, nil
}

// readInt skips whitespace and comment lines, then parses one unsigned
// decimal token. Malformed tokens are reported with the given error kind.
func readInt(br *bufio.Reader, path string, kind error, field string) (int, error) {
	if err := skipSpaceAndComments(br); err != nil {
		return 0, headerReadError(err, path)
	}

	n, digits := 0, 0
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, headerReadError(err, path)
		}
		if b < '0' || b > '9' {
			if digits == 0 {
				return 0, formatErrorf(kind, "%s: unexpected %q", field, b)
			}
			if !isSpace(b) && b != '#' {
				return 0, formatErrorf(kind, "%s: unexpected %q after digits", field, b)
			}
			if err := br.UnreadByte(); err != nil {
				return 0, &IOError{Op: "read", Path: path, Err: err}
			}
			return n, nil
		}
		if n > MaxPixels {
			return 0, formatErrorf(kind, "%s is too large", field)
		}
		n = n*10 + int(b-'0')
		digits++
	}
}

func skipSpaceAndComments(br *bufio.Reader) error {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return err
		}
		switch {
		case isSpace(b):
			continue
		case b == '#':
			if _, err := br.ReadBytes('\n'); err != nil {
				return err
			}
		default:
			return br.UnreadByte()
		}
	}
}

// headerReadError maps a read failure inside the header to the error the
// caller should see. Running out of input means the header is truncated.
func headerReadError(err error, path string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return formatErrorf(ErrTruncatedData, "header ended early")
	}
	return &IOError{Op: "read", Path: path, Err: err}
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
