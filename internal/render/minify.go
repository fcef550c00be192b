package render

import (
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/svg"
)

// Media types handled by Minify.
const (
	MediaSVG  = "image/svg+xml"
	MediaHTML = "text/html"
	MediaCSS  = "text/css"
)

var minifier = newMinifier()

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc(MediaCSS, css.Minify)
	m.AddFunc(MediaHTML, html.Minify)
	m.AddFunc(MediaSVG, svg.Minify)
	return m
}

// Minify compacts an SVG, HTML or CSS document.
func Minify(mediatype string, data []byte) ([]byte, error) {
	return minifier.Bytes(mediatype, data)
}
