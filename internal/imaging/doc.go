// Package imaging holds the in-memory pixel grid and the filters applied to it.
//
// A Grid is a fixed-size rectangle of 8-bit RGB pixels. Filters never modify
// their input; they return a new Grid, so the same source can be read safely
// by many goroutines at once.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: column (0 = leftmost pixel)
//   - Y: row (0 = topmost pixel)
//
// Pixels are stored row-major, top row first, which is also the order of the
// PPM payload. Decoding, filtering and encoding all share this layout.
//
// # Filters
//
//   - Blur: box average over a (2r+1)x(2r+1) window. The divisor is always
//     the full window area, so borders darken.
//   - BlurRows: the same kernel restricted to a band of rows, used by the
//     parallel scheduler.
//   - Invert: color negative.
//
// # Reporting
//
// Summarize returns the mean color, channel ranges and spread of a grid. SavePreview
// and EncodePreviewBase64 render a downscaled PNG for display.
package imaging
