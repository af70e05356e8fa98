// Package scheduler runs a row-band filter over a grid on a fixed number of
// goroutines.
//
// The image is split into contiguous bands of rows, one per worker. Every
// worker reads from the same immutable source grid and writes only its own
// rows of a separate output grid, so no locking is needed. Workers are started
// fresh for each call and joined before the call returns.
//
// # Remainder Rows
//
// When the row count is not a multiple of the worker count, the leftover rows
// are handled according to a RemainderPolicy:
//   - RemainderToLastBand (default): the last band also covers the leftover
//     rows, so every row is filtered.
//   - RemainderDrop: the leftover rows are not filtered and keep their source
//     values in the output.
//
// # Failures
//
// A panic inside a worker is recovered and reported as a *WorkerError. Any
// worker failure fails the whole call; no partial grid is returned.
package scheduler
