package proximity

import "github.com/woozymasta/citymap/internal/geo"

// Graph is an immutable snapshot of the links of one point set.
// It is rebuilt whenever the set changes.
type Graph struct {
	points    []geo.Point
	edges     []Edge
	adjacency map[string][]int
}

// NewGraph builds the link snapshot for points.
func NewGraph(points []geo.Point, thresholdKm float64) (*Graph, error) {
	edges, err := BuildEdges(points, thresholdKm)
	if err != nil {
		return nil, err
	}

	adjacency := make(map[string][]int, len(points))
	for i, e := range edges {
		adjacency[e.A.ID] = append(adjacency[e.A.ID], i)
		adjacency[e.B.ID] = append(adjacency[e.B.ID], i)
	}

	return &Graph{
		points:    points,
		edges:     edges,
		adjacency: adjacency,
	}, nil
}

// Points returns the snapshot points in input order.
func (g *Graph) Points() []geo.Point { return g.points }

// Edges returns every link in (i, j) order.
func (g *Graph) Edges() []Edge { return g.edges }

// EdgesOf returns the links touching the point with the given ID.
func (g *Graph) EdgesOf(id string) []Edge {
	idx := g.adjacency[id]
	out := make([]Edge, 0, len(idx))
	for _, i := range idx {
		out = append(out, g.edges[i])
	}
	return out
}

// Degree returns the number of links touching id.
func (g *Graph) Degree(id string) int {
	return len(g.adjacency[id])
}

// Nearest runs NearestNeighbors against the snapshot points.
func (g *Graph) Nearest(target geo.Point, radiusKm float64, limit int) ([]Neighbor, error) {
	return NearestNeighbors(target, g.points, radiusKm, limit)
}
