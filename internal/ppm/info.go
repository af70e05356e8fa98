package ppm

import (
	"bufio"
	"io"
	"os"
)

// Info contains metadata about a PPM file, read without decoding the payload.
type Info struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// MaxValue is the declared maximum channel value (always 255 for files
	// that pass validation).
	MaxValue int `json:"max_value"`

	// HeaderBytes is the size of the header including the separator byte.
	HeaderBytes int64 `json:"header_bytes"`

	// PayloadBytes is width*height*3.
	PayloadBytes int64 `json:"payload_bytes"`

	// FileSizeBytes is the size of the file on disk.
	FileSizeBytes int64 `json:"file_size_bytes"`

	// Complete is false when the file is too short to hold the full payload.
	Complete bool `json:"complete"`
}

// ReadInfo parses the header of the PPM file at path and reports its layout.
//
// Header errors are returned exactly as Decode would return them. A payload
// that is too short is not an error here; it is reported through Complete.
func ReadInfo(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, &IOError{Op: "stat", Path: path, Err: err}
	}

	cr := &countingReader{r: f}
	br := bufio.NewReader(cr)
	h, err := readHeader(br, path)
	if err != nil {
		return nil, err
	}
	headerBytes := cr.n - int64(br.Buffered())

	return &Info{
		Width:         h.Width,
		Height:        h.Height,
		MaxValue:      h.MaxValue,
		HeaderBytes:   headerBytes,
		PayloadBytes:  h.PayloadSize(),
		FileSizeBytes: stat.Size(),
		Complete:      stat.Size()-headerBytes >= h.PayloadSize(),
	}, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
