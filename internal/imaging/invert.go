package imaging

import (
	"github.com/anthonynsimon/bild/effect"
)

// Invert returns the color negative of src: every channel value v becomes 255-v.
// The source grid is not modified. Applying Invert twice yields the original grid.
func Invert(src *Grid) *Grid {
	out, err := FromImage(effect.Invert(src.ToImage()))
	if err != nil {
		// effect.Invert preserves bounds, and src is at least 1x1.
		panic(err)
	}
	return out
}
