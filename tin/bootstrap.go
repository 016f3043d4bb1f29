package tin

import (
	"github.com/terramesh/tin/predicates"
	"github.com/terramesh/tin/types"
)

// addDuringBootstrap buffers points until three non-collinear points are
// available, then builds the initial triangle-plus-ghost-fan mesh: one real
// triangle and three ghost triangles sharing the single ghostVertex.
func (t *Triangulator) addDuringBootstrap(p types.Point) (types.VertexID, error) {
	id := t.allocVertex(p)
	t.pending = append(t.pending, p)
	if len(t.pending) < 3 {
		return id, nil
	}

	a, b, c := t.pending[0], t.pending[1], p
	if predicates.Orient2D(a, b, c) == 0 {
		// Still collinear; keep buffering until a non-degenerate triple
		// shows up, per the bootstrap precondition.
		return id, nil
	}

	// Nothing is freed before bootstrap, so pending[i] holds vertex ID i.
	va, vb, vc := types.VertexID(0), types.VertexID(1), id
	if predicates.Orient2D(a, b, c) < 0 {
		va, vc = vc, va
	}

	rest := append([]types.Point(nil), t.pending[2:len(t.pending)-1]...)
	t.pending = nil
	for i := len(rest) - 1; i >= 0; i-- {
		t.freeVertex(types.VertexID(2 + i)) // re-added below under the same ID
	}

	t.buildInitialTriangle(va, vb, vc)

	for _, q := range rest {
		_, err := t.Add(q)
		if err != nil {
			return types.NilVertex, err
		}
	}
	return id, nil
}

// buildInitialTriangle constructs the CCW triangle (va,vb,vc) plus the
// three ghost triangles that close its exterior, and seeds hint/ghostRay.
func (t *Triangulator) buildInitialTriangle(va, vb, vc types.VertexID) {
	eAB := t.pool.MakeEdge()
	t.pool.SetOrg(eAB, va)
	t.pool.SetDest(eAB, vb)

	eBC := t.pool.MakeEdge()
	t.pool.SetOrg(eBC, vb)
	t.pool.SetDest(eBC, vc)
	t.pool.Splice(t.pool.Sym(eAB), eBC)

	t.pool.Connect(eBC, eAB)

	// The Sym ring of eAB (vb -> va, va -> vc, vc -> vb) bounds the single
	// unbounded face outside the triangle. Fan the ghost vertex into that
	// face exactly as a normal point insertion would; no legalization is
	// needed since every new edge is ghost-incident.
	outer := t.pool.Sym(eAB)
	startEdge, _ := t.insertIntoFace(ghostVertex, outer)

	t.hint = eAB
	t.ghostRay = t.pool.Sym(startEdge)
}
