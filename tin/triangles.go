package tin

import (
	"github.com/terramesh/tin/quadedge"
	"github.com/terramesh/tin/types"
)

// Triangles returns the vertex triplet of every live real (non-ghost)
// triangle, one entry per face, in arbitrary order. This is the face-level
// counterpart to Edges and Vertices.
func (t *Triangulator) Triangles() []types.Triangle {
	seen := make(map[quadedge.Edge]bool)
	var out []types.Triangle

	for _, e := range t.Edges() {
		for _, dir := range [2]quadedge.Edge{e, t.pool.Sym(e)} {
			if seen[dir] || t.isGhostEdge(dir) {
				continue
			}

			e1 := t.pool.ForwardFromDual(dir)
			e2 := t.pool.ForwardFromDual(e1)
			if t.isGhostEdge(e1) || t.isGhostEdge(e2) {
				continue
			}

			seen[dir] = true
			seen[e1] = true
			seen[e2] = true
			out = append(out, types.NewTriangle(t.pool.Org(dir), t.pool.Org(e1), t.pool.Org(e2)))
		}
	}
	return out
}
