package constraint

import (
	"math"

	"github.com/terramesh/tin/types"
)

// Constraint is a polyline or polygon to be forced into a triangulation: an
// ordered vertex list, a constraint index assigned when it is embedded by
// AddConstraints, a flag marking whether it bounds a region to be labeled,
// and opaque application data carried through untouched.
type Constraint struct {
	// Vertices is the ordered vertex list. For a closed constraint the last
	// vertex implicitly connects back to the first; it should not be
	// repeated.
	Vertices []types.VertexID

	// Closed marks a polygon constraint (as opposed to an open polyline).
	Closed bool

	// DefinesConstrainedRegion marks a closed constraint whose bounded
	// interior should be flood-filled and labeled with this constraint's
	// index once its boundary is embedded.
	DefinesConstrainedRegion bool

	// Data is opaque application data; the embedder never inspects it.
	Data any

	index int32
}

// NewConstraint builds a constraint from an ordered vertex list.
func NewConstraint(vertices []types.VertexID, closed, definesConstrainedRegion bool, data any) Constraint {
	return Constraint{
		Vertices:                 vertices,
		Closed:                   closed,
		DefinesConstrainedRegion: definesConstrainedRegion,
		Data:                     data,
	}
}

// Index returns the constraint index assigned by the AddConstraints call
// that embedded it. It is meaningless before embedding.
func (c Constraint) Index() int32 {
	return c.index
}

// Loop returns the constraint's vertices as a polygon loop, for callers
// that want the canonical-edge view. Only meaningful when Closed is true.
func (c Constraint) Loop() types.PolygonLoop {
	return types.NewPolygonLoop(c.Vertices...)
}

// segments returns the constraint's consecutive ordered vertex pairs: one
// per edge of an open polyline, or one per edge of a closed loop (including
// the wraparound edge).
func (c Constraint) segments() [][2]types.VertexID {
	n := len(c.Vertices)
	if n < 2 {
		return nil
	}
	last := n - 1
	if c.Closed {
		last = n
	}
	out := make([][2]types.VertexID, 0, last)
	for i := 0; i < last; i++ {
		out = append(out, [2]types.VertexID{c.Vertices[i], c.Vertices[(i+1)%n]})
	}
	return out
}

// SignedArea returns the shoelace signed area of a closed constraint's
// vertex loop in traversal order — positive for counter-clockwise winding,
// negative for clockwise — resolving each vertex's coordinate with
// resolve. Only meaningful when Closed is true.
func (c Constraint) SignedArea(resolve func(types.VertexID) types.Point) float64 {
	n := len(c.Vertices)
	var sum float64
	for i := 0; i < n; i++ {
		a := resolve(c.Vertices[i])
		b := resolve(c.Vertices[(i+1)%n])
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// Perimeter returns the sum of edge lengths of a closed constraint's vertex
// loop. Only meaningful when Closed is true.
func (c Constraint) Perimeter(resolve func(types.VertexID) types.Point) float64 {
	n := len(c.Vertices)
	var sum float64
	for i := 0; i < n; i++ {
		a := resolve(c.Vertices[i])
		b := resolve(c.Vertices[(i+1)%n])
		sum += math.Hypot(b.X-a.X, b.Y-a.Y)
	}
	return sum
}
