package services

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// DefaultMaxDimension bounds the longer side of stored images
const DefaultMaxDimension = 1600

// MaxPixels caps the declared size of an upload before it is decoded.
// Compressed images can declare far more pixels than their byte size suggests.
const MaxPixels = 40_000_000

// ImageProcessor turns uploaded photos into data URLs small enough to
// keep inside a record
type ImageProcessor struct {
	MaxDimension int
	Quality      int
}

// NewImageProcessor creates a processor. A non-positive maxDimension uses the default.
func NewImageProcessor(maxDimension int) *ImageProcessor {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	return &ImageProcessor{MaxDimension: maxDimension, Quality: 85}
}

// ToDataURL decodes the image, downscales it if either side exceeds
// MaxDimension and returns it as a base64 data URL. Images within bounds
// keep their original bytes. Resized webp images are re-encoded as jpeg.
func (p *ImageProcessor) ToDataURL(data []byte) (string, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return "", invalid("Ungültiges Bildformat")
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", invalid("Ungültiges Bildformat")
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= p.MaxDimension && height <= p.MaxDimension {
		return encodeDataURL(format, data), nil
	}

	var newWidth, newHeight int
	if width > height {
		newWidth = p.MaxDimension
		newHeight = int(float64(height) * float64(p.MaxDimension) / float64(width))
	} else {
		newHeight = p.MaxDimension
		newWidth = int(float64(width) * float64(p.MaxDimension) / float64(height))
	}
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	switch format {
	case "png":
		err = png.Encode(&buf, dst)
	default:
		format = "jpeg"
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: p.Quality})
	}
	if err != nil {
		return "", fmt.Errorf("failed to encode resized image: %w", err)
	}

	return encodeDataURL(format, buf.Bytes()), nil
}

func encodeDataURL(format string, data []byte) string {
	return "data:image/" + format + ";base64," + base64.StdEncoding.EncodeToString(data)
}
