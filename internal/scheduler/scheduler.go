package scheduler

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ironsheep/ppm-editor/internal/imaging"
)

// DefaultWorkers is the worker count used when none is configured.
const DefaultWorkers = 4

var (
	// ErrInvalidWorkers is returned for a worker count below 1.
	ErrInvalidWorkers = errors.New("worker count must be at least 1")

	// ErrWorkerFailure is wrapped by every *WorkerError.
	ErrWorkerFailure = errors.New("worker failed")
)

// RemainderPolicy decides what happens to rows left over after splitting the
// image into equal bands.
type RemainderPolicy int

const (
	// RemainderToLastBand extends the last band to the final row.
	RemainderToLastBand RemainderPolicy = iota
	// RemainderDrop leaves the leftover rows unfiltered.
	RemainderDrop
)

func (p RemainderPolicy) String() string {
	switch p {
	case RemainderToLastBand:
		return "last-band"
	case RemainderDrop:
		return "drop"
	default:
		return fmt.Sprintf("RemainderPolicy(%d)", int(p))
	}
}

// ParseRemainderPolicy converts "last-band" or "drop" to a RemainderPolicy.
// The empty string selects RemainderToLastBand.
func ParseRemainderPolicy(s string) (RemainderPolicy, error) {
	switch s {
	case "", "last-band":
		return RemainderToLastBand, nil
	case "drop":
		return RemainderDrop, nil
	default:
		return 0, fmt.Errorf("unknown remainder policy %q (want last-band or drop)", s)
	}
}

// Band is a half-open range of rows [Start, End) assigned to one worker.
type Band struct {
	Index int `json:"index"`
	Start int `json:"start"`
	End   int `json:"end"`
}

// Rows returns the number of rows in the band.
func (b Band) Rows() int { return b.End - b.Start }

// WorkerError records a worker that did not complete its band.
type WorkerError struct {
	Band  Band
	Cause interface{}
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("worker %d (rows %d-%d) failed: %v", e.Band.Index, e.Band.Start, e.Band.End, e.Cause)
}

func (e *WorkerError) Unwrap() error { return ErrWorkerFailure }

// BandFunc filters the rows of one band, reading src and writing dst.
// It must not write outside rows [b.Start, b.End) of dst and must not write to src.
type BandFunc func(src, dst *imaging.Grid, b Band)

type options struct {
	remainder RemainderPolicy
}

// Option configures Apply and Run.
type Option func(*options)

// WithRemainderPolicy selects how leftover rows are handled.
func WithRemainderPolicy(p RemainderPolicy) Option {
	return func(o *options) { o.remainder = p }
}

// Partition splits rows into contiguous bands, one per worker.
//
// Each band has rows/workers rows. A worker count larger than rows is reduced
// to rows so that no band is empty. With RemainderToLastBand the last band
// also takes the rows%workers leftover rows. With RemainderDrop they are not
// covered by any band.
func Partition(rows, workers int, policy RemainderPolicy) ([]Band, error) {
	if workers < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWorkers, workers)
	}
	if rows < 1 {
		return nil, fmt.Errorf("cannot partition %d rows", rows)
	}
	if workers > rows {
		workers = rows
	}

	size := rows / workers
	bands := make([]Band, workers)
	for i := range bands {
		bands[i] = Band{Index: i, Start: i * size, End: (i + 1) * size}
	}
	if policy == RemainderToLastBand {
		bands[workers-1].End = rows
	}
	return bands, nil
}

// Apply runs fn over src on one goroutine per band and returns the assembled
// output grid.
//
// The output starts as a copy of src, so rows not covered by any band keep
// their source values. Apply blocks until every worker has finished. If any
// worker panics, the error (joining every *WorkerError) is returned and the
// output is discarded.
func Apply(src *imaging.Grid, workers int, fn BandFunc, opts ...Option) (*imaging.Grid, error) {
	o := options{remainder: RemainderToLastBand}
	for _, opt := range opts {
		opt(&o)
	}

	bands, err := Partition(src.Height, workers, o.remainder)
	if err != nil {
		return nil, err
	}

	dst := src.Clone()

	// Each worker reports into its own slot, indexed by band.
	failures := make([]error, len(bands))
	var wg sync.WaitGroup
	for _, b := range bands {
		wg.Add(1)
		go func(b Band) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					failures[b.Index] = &WorkerError{Band: b, Cause: r}
				}
			}()
			fn(src, dst, b)
		}(b)
	}
	wg.Wait()

	if err := errors.Join(failures...); err != nil {
		return nil, err
	}
	return dst, nil
}

// Run blurs src with the given radius across workers goroutines.
//
// The result equals imaging.Blur(src, radius) whenever every row is covered
// by a band, independent of the worker count.
func Run(src *imaging.Grid, radius, workers int, opts ...Option) (*imaging.Grid, error) {
	if radius < 0 {
		return nil, fmt.Errorf("%w: %d", imaging.ErrNegativeRadius, radius)
	}
	return Apply(src, workers, func(src, dst *imaging.Grid, b Band) {
		imaging.BlurRows(src, dst, radius, b.Start, b.End)
	}, opts...)
}
