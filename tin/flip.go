package tin

import (
	"github.com/terramesh/tin/predicates"
	"github.com/terramesh/tin/quadedge"
)

// FlipEdge replaces e's diagonal with the other diagonal of the
// quadrilateral it borders, for callers outside the ordinary
// insert/legalize path (the constraint embedder's Lawson-channel forcing)
// that need to flip an edge on demand rather than in response to an
// InCircle failure. It refuses and returns false if e is constrained,
// ghost-incident, or its quadrilateral is not convex — flipping a
// non-convex quadrilateral would fold the mesh over itself.
func (t *Triangulator) FlipEdge(e quadedge.Edge) bool {
	if t.isGhostEdge(e) || t.pool.IsConstrained(e) {
		return false
	}

	a := t.pool.Org(e)
	b := t.pool.Dest(e)
	c := t.pool.Dest(t.pool.ForwardFromDual(e))
	d := t.pool.Dest(t.pool.ForwardFromDual(t.pool.Sym(e)))
	if c == ghostVertex || d == ghostVertex {
		return false
	}

	pa, pb, pc, pd := t.pointOf(a), t.pointOf(b), t.pointOf(c), t.pointOf(d)
	// The quadrilateral a-c-b-d is convex, and therefore flippable, exactly
	// when each diagonal separates the other diagonal's endpoints.
	if predicates.Orient2D(pa, pb, pc)*predicates.Orient2D(pa, pb, pd) >= 0 {
		return false
	}
	if predicates.Orient2D(pc, pd, pa)*predicates.Orient2D(pc, pd, pb) >= 0 {
		return false
	}

	t.flip(e)
	return true
}
