package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/woozymasta/citymap/internal/geo"
	"github.com/woozymasta/citymap/internal/layout"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// circleSegments is the polygon resolution of node markers.
const circleSegments = 24

// Raster draws l under v onto a new image the size of the layout viewport.
func Raster(l *layout.Layout, v layout.View) *image.RGBA {
	vp := l.Settings.Viewport
	w, h := int(math.Ceil(vp.Width)), int(math.Ceil(vp.Height))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)

	z := vector.NewRasterizer(0, 0)
	z.DrawOp = draw.Over

	links := l.VisibleLinks(v)
	for _, link := range links {
		from := v.Transform(link.From, vp)
		to := v.Transform(link.To, vp)
		fillLine(z, img, from, to, linkWidth*v.Zoom, colorLink)
	}

	for _, n := range l.Nodes {
		pos := v.Transform(n.Pos, vp)
		r, c := nodeRadius, colorNode
		if n.Major {
			r, c = majorRadius, colorMajor
		}
		if n.ID == v.Selected {
			fillCircle(z, img, pos, selectedRadius*v.Zoom, colorSelected)
		}
		fillCircle(z, img, pos, r*v.Zoom, c)
	}

	if v.ShowDistances {
		for _, link := range links {
			mid := geo.ScreenCoordinate{
				X: (link.From.X + link.To.X) / 2,
				Y: (link.From.Y+link.To.Y)/2 - 6,
			}
			drawText(img, v.Transform(mid, vp), link.Label, colorDistance)
		}
	}

	for _, n := range l.Nodes {
		if v.ShowNames || n.ID == v.Selected {
			drawText(img, v.Transform(n.LabelPos, vp), n.Label, colorLabel)
		}
	}

	return img
}

// Thumbnail scales img down to width pixels, keeping the aspect ratio.
// Images already narrower than width are returned as is.
func Thumbnail(img image.Image, width int) image.Image {
	b := img.Bounds()
	if width <= 0 || width >= b.Dx() {
		return img
	}

	height := max(1, b.Dy()*width/b.Dx())
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func fillLine(z *vector.Rasterizer, dst draw.Image, a, b geo.ScreenCoordinate, width float64, c color.Color) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}

	// half-width normal
	nx, ny := -dy/length*width/2, dx/length*width/2
	corners := []geo.ScreenCoordinate{
		{X: a.X + nx, Y: a.Y + ny},
		{X: b.X + nx, Y: b.Y + ny},
		{X: b.X - nx, Y: b.Y - ny},
		{X: a.X - nx, Y: a.Y - ny},
	}
	fillPolygon(z, dst, corners, c)
}

func fillCircle(z *vector.Rasterizer, dst draw.Image, center geo.ScreenCoordinate, r float64, c color.Color) {
	if r <= 0 {
		return
	}

	corners := make([]geo.ScreenCoordinate, circleSegments)
	for i := range corners {
		a := 2 * math.Pi * float64(i) / circleSegments
		corners[i] = geo.ScreenCoordinate{X: center.X + r*math.Cos(a), Y: center.Y + r*math.Sin(a)}
	}
	fillPolygon(z, dst, corners, c)
}

// fillPolygon rasterizes corners over their bounding box clipped to dst.
func fillPolygon(z *vector.Rasterizer, dst draw.Image, corners []geo.ScreenCoordinate, c color.Color) {
	r := shapeBounds(corners).Intersect(dst.Bounds())
	if r.Empty() {
		return
	}

	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	z.Reset(r.Dx(), r.Dy())
	z.MoveTo(float32(corners[0].X-ox), float32(corners[0].Y-oy))
	for _, p := range corners[1:] {
		z.LineTo(float32(p.X-ox), float32(p.Y-oy))
	}
	z.ClosePath()
	z.Draw(dst, r, image.NewUniform(c), image.Point{})
}

// shapeBounds is the smallest pixel rectangle covering every corner.
func shapeBounds(corners []geo.ScreenCoordinate) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range corners {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	if math.IsNaN(minX+minY+maxX+maxY) || math.IsInf(minX+minY+maxX+maxY, 0) {
		return image.Rectangle{}
	}

	// clamp before converting so far off-canvas shapes cannot overflow int
	const limit = 1 << 24
	clamp := func(f float64) int { return int(max(-limit, min(limit, f))) }
	return image.Rect(
		clamp(math.Floor(minX)), clamp(math.Floor(minY)),
		clamp(math.Ceil(maxX)), clamp(math.Ceil(maxY)),
	)
}

func drawText(dst draw.Image, at geo.ScreenCoordinate, s string, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(math.Round(at.X)), int(math.Round(at.Y))),
	}
	d.DrawString(s)
}
