// Package layout turns a point set into what the map page draws: node
// positions keyed by point ID, link segments with labels, the stats panel and
// selection details.
package layout

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/woozymasta/citymap/internal/geo"
	"github.com/woozymasta/citymap/internal/proximity"
)

// Label offset from the node center.
const (
	labelOffsetX = 15.0
	labelOffsetY = -10.0
)

// ErrUnknownPoint is returned for IDs that are not part of the layout.
var ErrUnknownPoint = errors.New("unknown point")

// Settings drive one layout build.
type Settings struct {
	Viewport       geo.Viewport
	DefaultScale   float64
	ThresholdKm    float64
	NearbyRadiusKm float64
	NearbyLimit    int
	Major          []string // substrings that mark a city as major
}

// Node is the drawable handle of one point.
type Node struct {
	ID       string               `json:"id"`
	Name     string               `json:"name"`
	Label    string               `json:"label"`
	Pos      geo.ScreenCoordinate `json:"pos"`
	LabelPos geo.ScreenCoordinate `json:"label_pos"`
	Degree   int                  `json:"degree"`
	Major    bool                 `json:"major"`
}

// Link is the drawable segment of one edge.
type Link struct {
	FromID     string               `json:"from"`
	ToID       string               `json:"to"`
	Label      string               `json:"label"`
	From       geo.ScreenCoordinate `json:"from_pos"`
	To         geo.ScreenCoordinate `json:"to_pos"`
	LengthPx   float64              `json:"length_px"`
	AngleDeg   float64              `json:"angle_deg"`
	DistanceKm float64              `json:"distance_km"`
}

// Has reports whether the link touches id.
func (l Link) Has(id string) bool {
	return l.FromID == id || l.ToID == id
}

// Layout is an immutable snapshot for one point set and viewport.
type Layout struct {
	Settings  Settings        `json:"-"`
	Bounds    geo.Bounds      `json:"bounds"`
	Nodes     []Node          `json:"nodes"`
	Links     []Link          `json:"links"`
	Stats     proximity.Stats `json:"stats"`
	Scale     float64         `json:"scale"`
	// Fallback marks degenerate bounds. Scale is then the default scale, or less
	// when one axis still has a span and the default would not fit it.
	Fallback  bool            `json:"fallback_scale,omitempty"`
	projector *geo.Projector
	graph     *proximity.Graph
	index     map[string]int
}

// Build projects points, links close pairs and summarises the set.
func Build(points []geo.Point, s Settings) (*Layout, error) {
	pr, err := geo.NewProjector(points, s.Viewport, s.DefaultScale)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	g, err := proximity.NewGraph(points, s.ThresholdKm)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	stats, err := proximity.Summarize(points, g.Edges())
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	if pr.Degenerate() {
		log.Warn().
			Int("points", len(points)).
			Float64("scale", pr.Scale()).
			Msg("Bounds have no span on one axis, using fallback scale")
	}

	l := &Layout{
		Settings:  s,
		Bounds:    pr.Bounds(),
		Scale:     pr.Scale(),
		Fallback:  pr.Degenerate(),
		Stats:     stats,
		Nodes:     make([]Node, 0, len(points)),
		Links:     make([]Link, 0, len(g.Edges())),
		projector: pr,
		graph:     g,
		index:     make(map[string]int, len(points)),
	}

	for _, p := range points {
		if _, dup := l.index[p.ID]; dup {
			return nil, fmt.Errorf("layout: %w: duplicate id %q", geo.ErrInvalidArgument, p.ID)
		}

		pos := pr.Project(p)
		l.index[p.ID] = len(l.Nodes)
		l.Nodes = append(l.Nodes, Node{
			ID:       p.ID,
			Name:     p.Name,
			Label:    ShortName(p.Name),
			Major:    isMajor(p.Name, s.Major),
			Degree:   g.Degree(p.ID),
			Pos:      pos,
			LabelPos: geo.ScreenCoordinate{X: pos.X + labelOffsetX, Y: pos.Y + labelOffsetY},
		})
	}

	for _, e := range g.Edges() {
		l.Links = append(l.Links, l.link(e))
	}

	log.Debug().
		Int("nodes", len(l.Nodes)).
		Int("links", len(l.Links)).
		Float64("scale", l.Scale).
		Msg("Layout built")

	return l, nil
}

// Node looks up the handle of a point by ID.
func (l *Layout) Node(id string) (Node, error) {
	i, ok := l.index[id]
	if !ok {
		return Node{}, fmt.Errorf("%w: %q", ErrUnknownPoint, id)
	}
	return l.Nodes[i], nil
}

// Point returns the source point of a node.
func (l *Layout) Point(id string) (geo.Point, error) {
	i, ok := l.index[id]
	if !ok {
		return geo.Point{}, fmt.Errorf("%w: %q", ErrUnknownPoint, id)
	}
	return l.graph.Points()[i], nil
}

// LinksOf returns the links touching id, as shown when hovering a node.
func (l *Layout) LinksOf(id string) []Link {
	edges := l.graph.EdgesOf(id)
	out := make([]Link, 0, len(edges))
	for _, e := range edges {
		out = append(out, l.link(e))
	}
	return out
}

// link projects an edge with the projector the nodes were placed with.
func (l *Layout) link(e proximity.Edge) Link {
	from, to := l.projector.Project(e.A), l.projector.Project(e.B)
	dx, dy := to.X-from.X, to.Y-from.Y
	return Link{
		FromID:     e.A.ID,
		ToID:       e.B.ID,
		From:       from,
		To:         to,
		LengthPx:   math.Hypot(dx, dy),
		AngleDeg:   math.Atan2(dy, dx) * 180 / math.Pi,
		DistanceKm: e.DistanceKm,
		Label:      FormatKm(e.DistanceKm),
	}
}

// VisibleLinks returns what v shows: every link, or only those of the
// selected node when links are toggled off.
func (l *Layout) VisibleLinks(v View) []Link {
	if v.ShowConnections {
		return l.Links
	}
	if v.Selected == "" {
		return nil
	}
	return l.LinksOf(v.Selected)
}

// ShortName is the part of a place name before the first comma.
func ShortName(name string) string {
	short, _, _ := strings.Cut(name, ",")
	return strings.TrimSpace(short)
}

// FormatKm renders a distance the way labels show it.
func FormatKm(km float64) string {
	return fmt.Sprintf("%.1f km", km)
}

func isMajor(name string, major []string) bool {
	for _, m := range major {
		if m != "" && strings.Contains(name, m) {
			return true
		}
	}
	return false
}
