package tin

import (
	"fmt"

	"github.com/terramesh/tin/predicates"
	"github.com/terramesh/tin/quadedge"
	"github.com/terramesh/tin/types"
)

// IntegrityCheck verifies the structural and geometric invariants this
// package depends on: quad-edge algebraic consistency (Sym and Dual are
// both involutions), every live primal edge's endpoints resolve to live
// vertices, the hull forms a single closed ring around the ghost vertex,
// and every non-constrained real triangle edge is locally Delaunay (no
// opposite vertex strictly inside its circumcircle) — constrained edges are
// exempt, since forcing a segment into the mesh is allowed to violate the
// Delaunay property locally. It is intended for tests and debugging, not
// for routine use after every mutation.
func (t *Triangulator) IntegrityCheck() error {
	if !t.isBootstrapped() {
		return nil
	}

	for _, e := range t.pool.AllEdges() {
		if err := t.checkQuadEdgeAlgebra(e); err != nil {
			return err
		}
		if err := t.checkEndpoints(e); err != nil {
			return err
		}
	}

	if err := t.checkHullRing(); err != nil {
		return err
	}

	return t.checkLocallyDelaunay()
}

func (t *Triangulator) checkQuadEdgeAlgebra(e quadedge.Edge) error {
	if t.pool.Sym(t.pool.Sym(e)) != e {
		return fmt.Errorf("tin: IntegrityCheck: Sym is not an involution at edge %d: %w", e, ErrIntegrityViolation)
	}
	if t.pool.Dual(t.pool.Dual(e)) != e {
		return fmt.Errorf("tin: IntegrityCheck: Dual is not an involution at edge %d: %w", e, ErrIntegrityViolation)
	}
	if t.pool.Org(t.pool.Sym(e)) != t.pool.Dest(e) {
		return fmt.Errorf("tin: IntegrityCheck: Org(Sym(e)) != Dest(e) at edge %d: %w", e, ErrIntegrityViolation)
	}
	return nil
}

func (t *Triangulator) checkEndpoints(e quadedge.Edge) error {
	for _, v := range [2]int32{int32(t.pool.Org(e)), int32(t.pool.Dest(e))} {
		if v == int32(ghostVertex) {
			continue
		}
		if v < 0 || int(v) >= len(t.verts) || t.verts[v].Index != types.VertexID(v) {
			return fmt.Errorf("tin: IntegrityCheck: edge %d references a non-live vertex %d: %w", e, v, ErrIntegrityViolation)
		}
	}
	return nil
}

// checkHullRing verifies that the ghost vertex's edge ring has at least
// three spokes and that every spoke originates at the ghost vertex. It does
// not check the winding or convexity of the hull.
func (t *Triangulator) checkHullRing() error {
	spokes := t.pool.Pinwheel(t.ghostRay)
	n := len(spokes)
	if n < 3 {
		return fmt.Errorf("tin: IntegrityCheck: hull has fewer than 3 vertices: %w", ErrIntegrityViolation)
	}
	for i := 0; i < n; i++ {
		if t.pool.Org(spokes[i]) != ghostVertex {
			return fmt.Errorf("tin: IntegrityCheck: hull spoke %d does not originate at the ghost vertex: %w", i, ErrIntegrityViolation)
		}
	}
	return nil
}

// checkLocallyDelaunay verifies that for every live real (non-ghost)
// triangle, the vertex across each of its edges does not lie strictly
// inside that triangle's circumcircle.
func (t *Triangulator) checkLocallyDelaunay() error {
	seen := make(map[quadedge.Edge]bool)
	for _, e := range t.pool.AllEdges() {
		for _, dir := range [2]quadedge.Edge{e, t.pool.Sym(e)} {
			if seen[dir] || t.isGhostEdge(dir) {
				continue
			}
			seen[dir] = true
			if t.pool.IsConstrained(dir) {
				continue
			}

			a := t.pool.Org(dir)
			b := t.pool.Dest(dir)
			c := t.pool.Dest(t.pool.ForwardFromDual(dir))
			d := t.pool.Dest(t.pool.ForwardFromDual(t.pool.Sym(dir)))
			if c == ghostVertex || d == ghostVertex {
				continue
			}
			if predicates.InCircle(t.pointOf(a), t.pointOf(b), t.pointOf(c), t.pointOf(d)) > 0 {
				return fmt.Errorf("tin: IntegrityCheck: edge %d is not locally Delaunay: %w", dir, ErrIntegrityViolation)
			}
		}
	}
	return nil
}
