package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// PreviewResult contains a downscaled PNG rendering of a grid.
type PreviewResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// preview scales g down so it is at most maxWidth pixels wide, keeping the
// aspect ratio. Grids already narrow enough, and maxWidth <= 0, are returned
// at full size.
func preview(g *Grid, maxWidth int) image.Image {
	img := g.ToImage()
	if maxWidth <= 0 || g.Width <= maxWidth {
		return img
	}
	return imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
}

// SavePreview writes a PNG preview of g to path. The output format is chosen
// from the file extension, so path should end in ".png".
func SavePreview(g *Grid, path string, maxWidth int) error {
	if err := imaging.Save(preview(g, maxWidth), path); err != nil {
		return fmt.Errorf("failed to save preview: %w", err)
	}
	return nil
}

// EncodePreviewBase64 renders a PNG preview of g and returns it base64-encoded.
func EncodePreviewBase64(g *Grid, maxWidth int) (*PreviewResult, error) {
	img := preview(g, maxWidth)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	return &PreviewResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
