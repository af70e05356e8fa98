package imaging

import (
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/stat"
)

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ChannelRange holds the smallest and largest value seen in one channel.
type ChannelRange struct {
	Min uint8 `json:"min"`
	Max uint8 `json:"max"`
}

// ChannelSpread holds the population standard deviation of each channel.
type ChannelSpread struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Summary describes the overall color content of a grid.
//
// It is cheap to compute (one pass over the pixels) and is reported before and
// after an edit so callers can see the effect of a filter without rendering
// the image.
type Summary struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// MeanHex is the average color as "#RRGGBB".
	MeanHex string `json:"mean_hex"`

	// MeanRGB is the per-channel average, rounded to the nearest integer.
	MeanRGB Pixel `json:"mean_rgb"`

	// MeanHSL is MeanRGB expressed in HSL.
	MeanHSL HSLColor `json:"mean_hsl"`

	Red   ChannelRange `json:"red"`
	Green ChannelRange `json:"green"`
	Blue  ChannelRange `json:"blue"`

	// StdDev measures contrast.
	StdDev ChannelSpread `json:"std_dev"`
}

// Summarize computes the mean color and per-channel ranges of g.
func Summarize(g *Grid) Summary {
	red := ChannelRange{Min: 255}
	green := ChannelRange{Min: 255}
	blue := ChannelRange{Min: 255}

	rs := make([]float64, len(g.Pix))
	gs := make([]float64, len(g.Pix))
	bs := make([]float64, len(g.Pix))

	var sumR, sumG, sumB uint64
	for i, p := range g.Pix {
		rs[i], gs[i], bs[i] = float64(p.R), float64(p.G), float64(p.B)
		sumR += uint64(p.R)
		sumG += uint64(p.G)
		sumB += uint64(p.B)
		red.observe(p.R)
		green.observe(p.G)
		blue.observe(p.B)
	}

	n := float64(len(g.Pix))
	mean := colorful.Color{
		R: float64(sumR) / n / 255.0,
		G: float64(sumG) / n / 255.0,
		B: float64(sumB) / n / 255.0,
	}
	r, gr, b := mean.RGB255()
	h, s, l := mean.Hsl()

	return Summary{
		Width:   g.Width,
		Height:  g.Height,
		MeanHex: strings.ToUpper(mean.Hex()),
		MeanRGB: Pixel{R: r, G: gr, B: b},
		MeanHSL: HSLColor{
			H: int(math.Round(h)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
		Red:   red,
		Green: green,
		Blue:  blue,
		StdDev: ChannelSpread{
			R: stat.PopStdDev(rs, nil),
			G: stat.PopStdDev(gs, nil),
			B: stat.PopStdDev(bs, nil),
		},
	}
}

func (c *ChannelRange) observe(v uint8) {
	if v < c.Min {
		c.Min = v
	}
	if v > c.Max {
		c.Max = v
	}
}
