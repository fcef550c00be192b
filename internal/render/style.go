// Package render draws a layout under a view as a raster image or an SVG document.
package render

import "image/color"

// Node radii in unzoomed pixels.
const (
	nodeRadius     = 6.0
	majorRadius    = 9.0
	selectedRadius = 11.0
	linkWidth      = 2.0
)

var (
	colorBackground = color.RGBA{R: 0xf8, G: 0xf9, B: 0xfa, A: 0xff}
	colorLink       = color.RGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0xb0}
	colorNode       = color.RGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff}
	colorMajor      = color.RGBA{R: 0xc0, G: 0x39, B: 0x2b, A: 0xff}
	colorSelected   = color.RGBA{R: 0xf1, G: 0xc4, B: 0x0f, A: 0xff}
	colorLabel      = color.RGBA{R: 0x2c, G: 0x3e, B: 0x50, A: 0xff}
	colorDistance   = color.RGBA{R: 0x7f, G: 0x8c, B: 0x8d, A: 0xff}
)

func hex(c color.RGBA) string {
	const digits = "0123456789abcdef"
	return string([]byte{'#',
		digits[c.R>>4], digits[c.R&0xf],
		digits[c.G>>4], digits[c.G&0xf],
		digits[c.B>>4], digits[c.B&0xf],
	})
}
