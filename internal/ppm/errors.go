package ppm

import (
	"errors"
	"fmt"
)

// Format error kinds.
var (
	ErrUnsupportedMagic      = errors.New("unsupported magic tag (must be P6)")
	ErrInvalidDimensions     = errors.New("invalid image dimensions")
	ErrUnsupportedColorDepth = errors.New("unsupported color depth (maxval must be 255)")
	ErrTruncatedData         = errors.New("truncated data")
)

// FormatError reports malformed PPM input.
type FormatError struct {
	// Kind is one of the Err* sentinels of this package.
	Kind error
	// Detail describes what was found, e.g. `got "P3"`.
	Detail string
}

func (e *FormatError) Error() string {
	if e.Detail == "" {
		return "ppm: " + e.Kind.Error()
	}
	return fmt.Sprintf("ppm: %s: %s", e.Kind, e.Detail)
}

func (e *FormatError) Unwrap() error { return e.Kind }

func formatErrorf(kind error, format string, args ...interface{}) *FormatError {
	return &FormatError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// IOError reports a failure to open, read, or write a PPM file.
type IOError struct {
	Op   string // e.g. "open", "read", "create", "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("ppm: failed to %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("ppm: failed to %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
