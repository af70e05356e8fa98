package ppm

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestReadInfo(t *testing.T) {
	header := "P6\n# comment\n4 3\n255\n"
	path := writeTestFile(t, ppmBytes(header, 36))

	info, err := ReadInfo(path)
	if err != nil {
		t.Fatalf("ReadInfo failed: %v", err)
	}

	if info.Width != 4 || info.Height != 3 {
		t.Errorf("dimensions: got %dx%d, want 4x3", info.Width, info.Height)
	}
	if info.MaxValue != 255 {
		t.Errorf("MaxValue: got %d, want 255", info.MaxValue)
	}
	if info.HeaderBytes != int64(len(header)) {
		t.Errorf("HeaderBytes: got %d, want %d", info.HeaderBytes, len(header))
	}
	if info.PayloadBytes != 36 {
		t.Errorf("PayloadBytes: got %d, want 36", info.PayloadBytes)
	}
	if info.FileSizeBytes != int64(len(header)+36) {
		t.Errorf("FileSizeBytes: got %d, want %d", info.FileSizeBytes, len(header)+36)
	}
	if !info.Complete {
		t.Error("Complete should be true")
	}
}

func TestReadInfo_Truncated(t *testing.T) {
	path := writeTestFile(t, ppmBytes("P6\n10 10\n255\n", 299))

	info, err := ReadInfo(path)
	if err != nil {
		t.Fatalf("ReadInfo failed: %v", err)
	}
	if info.Complete {
		t.Error("Complete should be false for a short payload")
	}
}

func TestReadInfo_HeaderErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"P3", []byte("P3\n1 1\n255\n1 2 3\n"), ErrUnsupportedMagic},
		{"bad dimensions", []byte("P6\n0 0\n255\n"), ErrInvalidDimensions},
		{"16-bit", []byte("P6\n1 1\n65535\n"), ErrUnsupportedColorDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadInfo(writeTestFile(t, tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReadInfo_NonExistent(t *testing.T) {
	_, err := ReadInfo(filepath.Join(t.TempDir(), "missing.ppm"))

	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Errorf("got %v (%T), want *IOError", err, err)
	}
}
