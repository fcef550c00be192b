package render

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/chai2010/webp"
)

// Output formats.
const (
	FormatPNG  = "png"
	FormatWebP = "webp"
	FormatSVG  = "svg"
)

// DefaultWebPQuality matches the lossy quality used for map exports.
const DefaultWebPQuality = 85

// ContentType returns the MIME type of a format.
func ContentType(format string) string {
	switch format {
	case FormatPNG:
		return "image/png"
	case FormatWebP:
		return "image/webp"
	case FormatSVG:
		return "image/svg+xml"
	}
	return "application/octet-stream"
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// EncodeWebP writes img as lossy WebP.
func EncodeWebP(w io.Writer, img image.Image, quality float32) error {
	return webp.Encode(w, img, &webp.Options{Lossless: false, Quality: quality})
}

// Encode writes img in a raster format.
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case FormatPNG:
		return EncodePNG(w, img)
	case FormatWebP:
		return EncodeWebP(w, img, DefaultWebPQuality)
	}
	return fmt.Errorf("unsupported raster format %q", format)
}
