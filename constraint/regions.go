package constraint

import (
	"fmt"

	"github.com/terramesh/tin/quadedge"
	"github.com/terramesh/tin/types"
)

// UnlabeledRegion is the region label every face carries before LabelRegion
// has visited it (the quad-edge pool's zero value for region fields).
const UnlabeledRegion int32 = 0

// LabelRegion flood-fills from the real triangle whose left face is start,
// assigning label to every face reachable without crossing a constrained
// edge, and returns the number of triangles labeled. Faces already visited
// in this call are not revisited; a face labeled by an earlier call is
// overwritten if a later call's flood fill reaches it too ("later wins",
// matching how constraint marking itself is never conditioned on a prior
// value).
func (em *Embedder) LabelRegion(start quadedge.Edge, label int32) int {
	pool := em.t.Pool()
	ghost := em.t.GhostVertex()

	if pool.Org(start) == ghost || pool.Dest(start) == ghost {
		return 0
	}

	visited := make(map[quadedge.Edge]bool)
	queue := []quadedge.Edge{start}
	count := 0

	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		if visited[e] {
			continue
		}

		face := faceEdges(pool, e)
		if pool.Org(face[2]) == ghost || pool.Dest(face[2]) == ghost {
			// The third corner of this face is the ghost vertex; this is an
			// unbounded wedge, not a real triangle.
			continue
		}

		for _, fe := range face {
			visited[fe] = true
		}
		for _, fe := range face {
			pool.SetRegionLeft(fe, label)
		}
		count++

		for _, fe := range face {
			if pool.IsConstrained(fe) {
				continue
			}
			neighbor := pool.Sym(fe)
			if pool.Org(neighbor) == ghost || pool.Dest(neighbor) == ghost {
				continue
			}
			if !visited[neighbor] {
				queue = append(queue, neighbor)
			}
		}
	}
	return count
}

// LabelRegionAt is LabelRegion seeded by an arbitrary interior point rather
// than an edge handle, for callers that know a representative point of a
// region (e.g. a polygon's centroid) but not a mesh edge.
func (em *Embedder) LabelRegionAt(p types.Point, label int32) (int, error) {
	e, ok := em.FaceContaining(p)
	if !ok {
		return 0, fmt.Errorf("constraint: LabelRegionAt(%v): %w", p, ErrNoFaceAtPoint)
	}
	return em.LabelRegion(e, label), nil
}

// RegionOf returns the region label assigned to the real triangle whose
// left face is e, or UnlabeledRegion if LabelRegion has never reached it.
func (em *Embedder) RegionOf(e quadedge.Edge) int32 {
	return em.t.Pool().RegionLeft(e)
}

// IsRegionBorder reports whether the undirected edge of e bounds a labeled
// region: it must be constrained, and at least one side must carry a
// non-default region label. An edge between a labeled region and
// unlabeled exterior is still a border.
func (em *Embedder) IsRegionBorder(e quadedge.Edge) bool {
	pool := em.t.Pool()
	if !pool.IsConstrained(e) {
		return false
	}
	return pool.RegionLeft(e) != UnlabeledRegion || pool.RegionRight(e) != UnlabeledRegion
}

// IsRegionInterior reports whether the undirected edge of e lies strictly
// inside a single labeled region: unconstrained, with both sides flood-
// filled to the same non-default label.
func (em *Embedder) IsRegionInterior(e quadedge.Edge) bool {
	pool := em.t.Pool()
	if pool.IsConstrained(e) {
		return false
	}
	left := pool.RegionLeft(e)
	return left != UnlabeledRegion && left == pool.RegionRight(e)
}

// labelConstraintRegion flood-fills and labels a closed constraint's
// bounded interior with its own index. The seed edge is oriented to match
// the constraint's own vertex traversal so that "left of the seed" is the
// polygon interior: for a counter-clockwise loop (positive signed area)
// that is the edge itself; for a clockwise loop, its Sym.
func (em *Embedder) labelConstraintRegion(c Constraint) error {
	if len(c.Vertices) < 3 {
		return fmt.Errorf("constraint: region %d needs at least 3 vertices: %w", c.index, ErrDegenerateEdge)
	}
	area := c.SignedArea(em.t.PointOf)
	if area == 0 {
		return fmt.Errorf("constraint: region %d is degenerate (zero area): %w", c.index, ErrDegenerateEdge)
	}

	u, v := c.Vertices[0], c.Vertices[1]
	e, ok := em.t.NeighborEdge(u, v)
	if !ok {
		return fmt.Errorf("constraint: region %d: boundary edge (%d,%d) missing after embedding: %w", c.index, u, v, ErrNoPath)
	}
	seed := e
	if area < 0 {
		seed = em.t.Pool().Sym(e)
	}

	em.LabelRegion(seed, c.index)
	return nil
}

func faceEdges(pool *quadedge.Pool, e quadedge.Edge) [3]quadedge.Edge {
	e1 := pool.ForwardFromDual(e)
	e2 := pool.ForwardFromDual(e1)
	return [3]quadedge.Edge{e, e1, e2}
}
