package tin

import (
	"github.com/terramesh/tin/predicates"
	"github.com/terramesh/tin/quadedge"
	"github.com/terramesh/tin/types"
)

// insertIntoFace fans vertex s to every corner of the face whose boundary
// starts at e (e's left face), connecting s to Org(e) first and to each
// subsequent corner in turn. It works for a face of any size — a triangle
// for an ordinary interior insertion, a quadrilateral for an on-edge
// insertion once the shared edge has been removed, or the merged ghost
// polygon produced by a hull-extending insertion — since the construction
// is purely topological (quadedge.Connect/Splice) and touches no
// coordinates.
//
// It returns the first fan edge (Org(e) -> s) and the original boundary
// edges of the face, in order, which is exactly the set of edges that may
// need Delaunay legalization against s afterward.
func (t *Triangulator) insertIntoFace(s types.VertexID, e quadedge.Edge) (startEdge quadedge.Edge, boundary []quadedge.Edge) {
	base := t.pool.MakeEdge()
	t.pool.SetOrg(base, t.pool.Org(e))
	t.pool.SetDest(base, s)
	t.pool.Splice(base, e)
	startEdge = base

	for {
		boundary = append(boundary, e)
		base = t.pool.Connect(e, t.pool.Sym(base))
		e = t.pool.Reverse(base)
		if t.pool.ForwardFromDual(e) == startEdge {
			break
		}
	}
	boundary = append(boundary, e)
	return startEdge, boundary
}

// isGhostEdge reports whether either endpoint of e is the sentinel ghost
// vertex. Ghost-incident edges are never flip-tested: the ghost vertex
// carries no coordinate, so InCircle against it is meaningless, and by
// construction the ghost fan is always consistent with the real hull.
func (t *Triangulator) isGhostEdge(e quadedge.Edge) bool {
	return t.pool.Org(e) == ghostVertex || t.pool.Dest(e) == ghostVertex
}

// legalize runs the Lawson-flip sweep seeded by the boundary edges of a
// just-subdivided face, restoring the Delaunay property around the newly
// inserted vertex s.
func (t *Triangulator) legalize(s types.VertexID, seed []quadedge.Edge) {
	queue := append([]quadedge.Edge(nil), seed...)
	sp := t.pointOf(s)

	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]

		if t.isGhostEdge(e) || t.pool.IsConstrained(e) {
			continue
		}

		opposite := t.pool.Dest(t.pool.ForwardFromDual(t.pool.Sym(e)))
		if opposite == ghostVertex {
			continue
		}

		a := t.pool.Org(e)
		b := t.pool.Dest(e)
		if a == s || b == s {
			// e itself is one of the new fan spokes, not a boundary edge;
			// nothing to test.
			continue
		}

		if predicates.InCircle(t.pointOf(a), t.pointOf(opposite), t.pointOf(b), sp) > 0 {
			t.flip(e)
			if t.cfg.debugFlip != nil {
				t.cfg.debugFlip(t.pool.Org(e), t.pool.Dest(e))
			}
			// The two edges of the newly formed triangle opposite s become
			// the next candidates.
			queue = append(queue, t.pool.ReverseFromDual(e), t.pool.ForwardFromDual(t.pool.Sym(e)))
		}
	}
}

// flip replaces diagonal e of the quadrilateral formed by the two
// triangles on either side of e with the other diagonal, preserving all
// four quadrilateral corners' adjacency to their correct neighbors.
func (t *Triangulator) flip(e quadedge.Edge) {
	a := t.pool.Reverse(e)
	b := t.pool.Reverse(t.pool.Sym(e))

	t.pool.Splice(e, a)
	t.pool.Splice(t.pool.Sym(e), b)
	t.pool.Splice(e, t.pool.ForwardFromDual(a))
	t.pool.Splice(t.pool.Sym(e), t.pool.ForwardFromDual(b))

	t.pool.SetOrg(e, t.pool.Dest(a))
	t.pool.SetDest(e, t.pool.Dest(b))
}

// insert performs the full located-point insertion: vertex coincidence
// (handled by the caller's merge check before insert is reached), on-edge
// splitting, interior insertion, and hull-extending insertion all reduce to
// the same fan-then-legalize sequence once locate has identified the target
// face.
func (t *Triangulator) insert(p types.Point) (types.VertexID, error) {
	loc, err := t.locate(p)
	if err != nil {
		return types.NilVertex, err
	}

	if loc.onVertex != types.NilVertex {
		return loc.onVertex, nil
	}

	faceEdge := loc.edge
	if loc.onEdge {
		// Merge the two triangles sharing this edge into one quadrilateral
		// face before fanning, exactly as the classical algorithm's
		// "e = Oprev(e); DeleteEdge(Onext(e))" on-edge preprocessing step:
		// reassign to the previous edge around the same origin, then
		// delete the edge p actually lies on.
		merged := t.pool.Reverse(loc.edge)
		t.pool.DeleteEdge(loc.edge)
		faceEdge = merged
	}

	v := t.allocVertex(p)
	startEdge, boundary := t.insertIntoFace(v, faceEdge)
	t.hint = startEdge
	t.legalize(v, boundary)
	return v, nil
}
