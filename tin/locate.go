package tin

import (
	"fmt"

	"github.com/terramesh/tin/predicates"
	"github.com/terramesh/tin/quadedge"
	"github.com/terramesh/tin/types"
)

// location describes where a query point falls relative to the current
// triangulation.
type location struct {
	edge     quadedge.Edge // an edge whose left face is the target face for insertion
	onEdge   bool          // p lies on edge (interior to it, not at either endpoint)
	onVertex types.VertexID
}

// faceLocation builds a location for a face-interior or on-edge result.
// onVertex always defaults to NilVertex (the VertexID zero value is a valid
// vertex index, so it cannot be used as the "no vertex" sentinel).
func faceLocation(edge quadedge.Edge, onEdge bool) location {
	return location{edge: edge, onEdge: onEdge, onVertex: types.NilVertex}
}

// vertexLocation builds a location for a result that coincides with an
// existing vertex.
func vertexLocation(edge quadedge.Edge, v types.VertexID) location {
	return location{edge: edge, onVertex: v}
}

// locate finds the face a point falls into. It first tries the cached hint
// triangle and its immediate neighbors, then falls back to a linear scan
// over every live real (non-ghost) triangle. If no real triangle contains
// the point, it is resolved against the hull's ghost fan and, for a
// hull-extending point, the visible ghost triangles are merged into a
// single face so the caller's fan-insertion can treat it uniformly with
// the interior case.
//
// A full scan is O(n) in the number of live edges; a production-grade
// triangulator would instead maintain a directed walk using specialized
// infinite-vertex predicates. That complexity is not carried here (see
// DESIGN.md) since this triangulator is not asymptotically tuned.
func (t *Triangulator) locate(p types.Point) (location, error) {
	if !t.isBootstrapped() {
		return location{}, ErrNotBootstrapped
	}

	if loc, ok := t.locateAmongRealTriangles(p); ok {
		return loc, nil
	}

	return t.locateOutsideHull(p)
}

func (t *Triangulator) locateAmongRealTriangles(p types.Point) (location, bool) {
	tryHint := func(e quadedge.Edge) (location, bool) {
		if loc, ok := t.classifyFace(p, e); ok {
			return loc, true
		}
		return location{}, false
	}

	if t.hint.IsValid() && !t.isGhostEdge(t.hint) {
		if loc, ok := tryHint(t.hint); ok {
			return loc, true
		}
		if loc, ok := tryHint(t.pool.Sym(t.hint)); ok {
			return loc, true
		}
	}

	for _, e := range t.pool.AllEdges() {
		if loc, ok := tryHint(e); ok {
			return loc, true
		}
		if loc, ok := tryHint(t.pool.Sym(e)); ok {
			return loc, true
		}
	}
	return location{}, false
}

// classifyFace tests whether p falls inside, on the boundary of, or at a
// corner of the real triangle whose left face is e, returning false if e's
// left face is not a real triangle (any corner is the ghost vertex) or p is
// not in this triangle at all.
func (t *Triangulator) classifyFace(p types.Point, e quadedge.Edge) (location, bool) {
	a := t.pool.Org(e)
	b := t.pool.Dest(e)
	c := t.pool.Dest(t.pool.ForwardFromDual(e))
	if a == ghostVertex || b == ghostVertex || c == ghostVertex {
		return location{}, false
	}

	pa, pb, pc := t.pointOf(a), t.pointOf(b), t.pointOf(c)
	o0 := predicates.Orient2D(pa, pb, p)
	o1 := predicates.Orient2D(pb, pc, p)
	o2 := predicates.Orient2D(pc, pa, p)

	if o0 < 0 || o1 < 0 || o2 < 0 {
		return location{}, false
	}

	switch {
	case o0 == 0 && o1 == 0:
		return vertexLocation(e, b), true
	case o1 == 0 && o2 == 0:
		return vertexLocation(e, c), true
	case o2 == 0 && o0 == 0:
		return vertexLocation(e, a), true
	case o0 == 0:
		return faceLocation(e, true), true
	case o1 == 0:
		return faceLocation(t.pool.ForwardFromDual(e), true), true
	case o2 == 0:
		return faceLocation(t.pool.ReverseFromDual(e), true), true
	default:
		return faceLocation(e, false), true
	}
}

// locateOutsideHull handles a point that fell outside every real triangle:
// it determines the contiguous arc of hull edges visible from p, merges the
// corresponding ghost triangles into one face, and returns an edge on that
// merged face suitable for insertIntoFace.
func (t *Triangulator) locateOutsideHull(p types.Point) (location, error) {
	spokes := t.pool.Pinwheel(t.ghostRay)
	n := len(spokes)
	if n < 3 {
		return location{}, fmt.Errorf("tin: hull has fewer than 3 vertices: %w", ErrIntegrityViolation)
	}

	hullVertex := make([]types.VertexID, n)
	hullEdge := make([]quadedge.Edge, n)
	for i, s := range spokes {
		hullVertex[i] = t.pool.Dest(s)
		hullEdge[i] = t.pool.ForwardFromDual(s)
	}

	visible := make([]bool, n)
	anyVisible := false
	for i := 0; i < n; i++ {
		a := t.pointOf(hullVertex[i])
		b := t.pointOf(hullVertex[(i+1)%n])
		visible[i] = predicates.Orient2D(a, b, p) > 0
		anyVisible = anyVisible || visible[i]
	}
	if !anyVisible {
		return location{}, fmt.Errorf("tin: %v: %w", p, ErrOutsideDomain)
	}

	start := -1
	for i := 0; i < n; i++ {
		if visible[i] && !visible[(i-1+n)%n] {
			start = i
			break
		}
	}
	if start == -1 {
		// Every edge visible: hull is degenerate (collinear/near-empty);
		// fall back to treating edge 0 as the start of the run.
		start = 0
	}
	end := start
	for visible[(end+1)%n] && (end+1)%n != start {
		end = (end + 1) % n
	}

	// Delete the spokes of every hull vertex strictly interior to the
	// visible run; they are no longer on the hull once the new vertex is
	// inserted.
	for i := (start + 1) % n; i != (end+1)%n; i = (i + 1) % n {
		t.pool.DeleteEdge(spokes[i])
	}

	t.ghostRay = spokes[start]
	return faceLocation(hullEdge[start], false), nil
}
