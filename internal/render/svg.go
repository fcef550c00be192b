package render

import (
	"bytes"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/woozymasta/citymap/internal/layout"
)

// SVGOptions tune SVG output.
type SVGOptions struct {
	// NodeHref, when set, wraps each node in a link to the returned URL.
	NodeHref func(id string) string
}

// SVG renders l under v as a minified SVG document.
func SVG(l *layout.Layout, v layout.View, opts SVGOptions) ([]byte, error) {
	vp := l.Settings.Viewport
	cx, cy := vp.Width/2, vp.Height/2

	var b bytes.Buffer
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		num(vp.Width), num(vp.Height), num(vp.Width), num(vp.Height))
	fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="%s"/>`, hex(colorBackground))

	// same mapping as View.Transform
	fmt.Fprintf(&b, `<g transform="translate(%s %s) scale(%s) translate(%s %s)">`,
		num(cx), num(cy), num(v.Zoom), num(v.PanX-cx), num(v.PanY-cy))

	links := l.VisibleLinks(v)
	b.WriteString(`<g class="connections">`)
	for _, link := range links {
		fmt.Fprintf(&b, `<line class="city-connection" data-from="%s" data-to="%s" x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-opacity="0.7" stroke-width="%s"/>`,
			attr(link.FromID), attr(link.ToID),
			num(link.From.X), num(link.From.Y), num(link.To.X), num(link.To.Y),
			hex(colorLink), num(linkWidth))
	}
	b.WriteString(`</g>`)

	if v.ShowDistances {
		b.WriteString(`<g class="distances">`)
		for _, link := range links {
			fmt.Fprintf(&b, `<text class="distance-label" x="%s" y="%s" text-anchor="middle" font-size="11" fill="%s">%s</text>`,
				num((link.From.X+link.To.X)/2), num((link.From.Y+link.To.Y)/2-6),
				hex(colorDistance), html.EscapeString(link.Label))
		}
		b.WriteString(`</g>`)
	}

	b.WriteString(`<g class="nodes">`)
	for _, n := range l.Nodes {
		classes := []string{"city-node"}
		r, c := nodeRadius, colorNode
		if n.Major {
			classes = append(classes, "major")
			r, c = majorRadius, colorMajor
		}

		href := ""
		if opts.NodeHref != nil {
			href = opts.NodeHref(n.ID)
		}
		if href != "" {
			fmt.Fprintf(&b, `<a href="%s">`, attr(href))
		}
		if n.ID == v.Selected {
			classes = append(classes, "selected")
			fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="%s" fill="%s"/>`,
				num(n.Pos.X), num(n.Pos.Y), num(selectedRadius), hex(colorSelected))
		}
		fmt.Fprintf(&b, `<circle id="node-%s" class="%s" cx="%s" cy="%s" r="%s" fill="%s"><title>%s</title></circle>`,
			attr(n.ID), strings.Join(classes, " "),
			num(n.Pos.X), num(n.Pos.Y), num(r), hex(c), html.EscapeString(n.Name))
		if href != "" {
			b.WriteString(`</a>`)
		}
	}
	b.WriteString(`</g>`)

	b.WriteString(`<g class="labels">`)
	for _, n := range l.Nodes {
		if !v.ShowNames && n.ID != v.Selected {
			continue
		}
		fmt.Fprintf(&b, `<text class="city-label" x="%s" y="%s" font-size="12" fill="%s">%s</text>`,
			num(n.LabelPos.X), num(n.LabelPos.Y), hex(colorLabel), html.EscapeString(n.Label))
	}
	b.WriteString(`</g>`)

	b.WriteString(`</g></svg>`)

	return Minify(MediaSVG, b.Bytes())
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func attr(s string) string {
	return html.EscapeString(s)
}
