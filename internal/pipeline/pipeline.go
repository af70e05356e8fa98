// Package pipeline runs one complete edit of a PPM file: decode, filter,
// encode. It is the single entry point the command-line and MCP shells call.
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/ppm-editor/internal/imaging"
	"github.com/ironsheep/ppm-editor/internal/ppm"
	"github.com/ironsheep/ppm-editor/internal/scheduler"
)

// Operation names a filter the editor can apply.
type Operation string

const (
	OpBlur   Operation = "blur"
	OpInvert Operation = "invert"
)

// ParseOperation validates an operation name.
func ParseOperation(s string) (Operation, error) {
	switch op := Operation(s); op {
	case OpBlur, OpInvert:
		return op, nil
	default:
		return "", fmt.Errorf("unknown operation: %s", s)
	}
}

// Request describes one edit.
type Request struct {
	// Input is the PPM file to read.
	Input string
	// Output is where the result is written. Empty means overwrite Input.
	Output string

	Operation Operation

	// Radius and Workers apply to OpBlur only.
	Radius    int
	Workers   int
	Remainder scheduler.RemainderPolicy

	// PreviewPath, if set, receives a PNG rendering of the result.
	PreviewPath  string
	PreviewWidth int
}

// Result reports a finished edit.
type Result struct {
	// ID tags the edit in log output.
	ID        string          `json:"id"`
	Operation Operation       `json:"operation"`
	Input     string          `json:"input"`
	Output    string          `json:"output"`
	Preview   string          `json:"preview,omitempty"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	Bands     int             `json:"bands,omitempty"`
	Before    imaging.Summary `json:"before"`
	After     imaging.Summary `json:"after"`
	Elapsed   time.Duration   `json:"elapsed_ns"`
}

// Editor executes edit requests. It holds no image state between calls.
type Editor struct {
	log logrus.FieldLogger
}

// New creates an Editor that logs progress to log. A nil logger discards output.
func New(log logrus.FieldLogger) *Editor {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Editor{log: log}
}

// Edit decodes req.Input, applies the requested filter and encodes the result.
//
// Any stage failure aborts the edit and is returned wrapped with the stage
// name; the output file is not written if decoding or filtering fails.
func (e *Editor) Edit(req Request) (*Result, error) {
	start := time.Now()
	if req.Output == "" {
		req.Output = req.Input
	}
	id := uuid.NewString()
	log := e.log.WithFields(logrus.Fields{
		"edit_id":   id,
		"input":     req.Input,
		"output":    req.Output,
		"operation": req.Operation,
	})

	src, err := ppm.Decode(req.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	log.WithFields(logrus.Fields{"width": src.Width, "height": src.Height}).Debug("Decoded image")

	res := &Result{
		ID:        id,
		Operation: req.Operation,
		Input:     req.Input,
		Output:    req.Output,
		Width:     src.Width,
		Height:    src.Height,
		Before:    imaging.Summarize(src),
	}

	var out *imaging.Grid
	switch req.Operation {
	case OpBlur:
		bands, err := scheduler.Partition(src.Height, req.Workers, req.Remainder)
		if err != nil {
			return nil, fmt.Errorf("failed to blur image: %w", err)
		}
		res.Bands = len(bands)
		out, err = scheduler.Run(src, req.Radius, req.Workers, scheduler.WithRemainderPolicy(req.Remainder))
		if err != nil {
			return nil, fmt.Errorf("failed to blur image: %w", err)
		}
		log.WithFields(logrus.Fields{
			"radius":    req.Radius,
			"bands":     res.Bands,
			"remainder": req.Remainder,
		}).Debug("Blurred image")
	case OpInvert:
		out = imaging.Invert(src)
		log.Debug("Inverted image")
	default:
		return nil, fmt.Errorf("unknown operation: %s", req.Operation)
	}

	if err := ppm.Encode(req.Output, out); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	res.After = imaging.Summarize(out)

	if req.PreviewPath != "" {
		if err := imaging.SavePreview(out, req.PreviewPath, req.PreviewWidth); err != nil {
			return nil, err
		}
		res.Preview = req.PreviewPath
		log.WithField("preview", req.PreviewPath).Debug("Saved preview")
	}

	res.Elapsed = time.Since(start)
	return res, nil
}
