package tin

import "github.com/terramesh/tin/types"

// Perimeter returns the vertices of the triangulation's convex hull, in
// counter-clockwise order starting from an arbitrary hull vertex. It is
// computed on demand by walking the ghost vertex's edge ring, so its cost
// is proportional to the hull size rather than the full vertex count.
func (t *Triangulator) Perimeter() []types.VertexID {
	if !t.isBootstrapped() {
		return nil
	}
	spokes := t.pool.Pinwheel(t.ghostRay)
	hull := make([]types.VertexID, len(spokes))
	for i, s := range spokes {
		hull[i] = t.pool.Dest(s)
	}
	return hull
}
