// Package assets embeds the static files of the web page.
package assets

import _ "embed"

// IndexTemplate is the html/template source of the map page.
//
//go:embed index.html.tpl
var IndexTemplate string

// Style is the page stylesheet.
//
//go:embed style.css
var Style string

// Favicon is the site icon.
//
//go:embed favicon.svg
var Favicon []byte
