package services

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeDataURL(t *testing.T, dataURL string) (image.Image, string) {
	t.Helper()
	header, payload, ok := strings.Cut(dataURL, ";base64,")
	require.True(t, ok)
	data, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)
	img, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "data:image/"+format, header)
	return img, format
}

func TestImageProcessorDownscales(t *testing.T) {
	dataURL, err := NewImageProcessor(100).ToDataURL(encodePNG(t, 300, 150))
	require.NoError(t, err)

	img, format := decodeDataURL(t, dataURL)
	assert.Equal(t, "png", format)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestImageProcessorKeepsSmallImages(t *testing.T) {
	original := encodePNG(t, 40, 80)

	dataURL, err := NewImageProcessor(100).ToDataURL(original)
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(original), dataURL)
}

func TestImageProcessorRejectsGarbage(t *testing.T) {
	_, err := NewImageProcessor(0).ToDataURL([]byte("not an image"))
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

// pngHeader returns a PNG signature and IHDR chunk declaring width x height
// grayscale pixels. It carries no image data.
func pngHeader(width, height uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], width)
	binary.BigEndian.PutUint32(ihdr[4:8], height)
	ihdr[8] = 8 // bit depth

	chunk := append([]byte("IHDR"), ihdr...)
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestImageProcessorRejectsHugeDimensions(t *testing.T) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(pngHeader(12000, 12000)))
	require.NoError(t, err)
	require.Equal(t, "png", format)
	require.Equal(t, 12000, cfg.Width)

	_, err = NewImageProcessor(0).ToDataURL(pngHeader(12000, 12000))
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Equal(t, "Ungültiges Bildformat", err.Error())
}
