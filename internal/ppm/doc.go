// Package ppm reads and writes binary (P6) portable pixmap files.
//
// Only the binary encoding with 8-bit channels (maxval 255) is supported. The
// ASCII variant P3 is recognised and rejected with ErrUnsupportedMagic.
//
// # File Layout
//
//	P6
//	# optional comment lines
//	<width> <height>
//	255
//	<width*height*3 bytes of R,G,B, row-major, top row first>
//
// Header fields are separated by whitespace, and comment lines may appear
// before any of them. Exactly one whitespace byte separates the maxval from
// the payload.
//
// # Error Handling
//
// Malformed input produces a *FormatError whose Kind is one of the sentinel
// errors below, so callers can test with errors.Is:
//
//	_, err := ppm.Decode(path)
//	if errors.Is(err, ppm.ErrTruncatedData) { ... }
//
// File system failures produce an *IOError wrapping the underlying error.
package ppm
