package tin

import (
	"github.com/terramesh/tin/quadedge"
	"github.com/terramesh/tin/types"
)

// Pool exposes the underlying quad-edge arena for packages that need to
// walk mesh topology directly (constraint embedding, Voronoi duals, natural
// neighbor interpolation). Callers in those packages must not mutate
// vertex-table bookkeeping (Org/Dest are fine; inserting or deleting edges
// outside this package will desynchronize hint/ghostRay/the spatial index).
func (t *Triangulator) Pool() *quadedge.Pool {
	return t.pool
}

// PointOf returns the coordinate of a live vertex. It panics if v is not a
// live vertex index, mirroring slice-index-out-of-range semantics; callers
// should check Vertex(v) first if v's liveness is not already known.
func (t *Triangulator) PointOf(v types.VertexID) types.Point {
	return t.pointOf(v)
}

// IsGhostEdge reports whether either endpoint of e is the sentinel ghost
// vertex exposed to other packages that need to skip unbounded faces.
func (t *Triangulator) IsGhostEdge(e quadedge.Edge) bool {
	return t.isGhostEdge(e)
}

// GhostVertex returns the sentinel vertex ID representing the unbounded
// exterior face. It carries no coordinate; PointOf(GhostVertex()) panics.
func (t *Triangulator) GhostVertex() types.VertexID {
	return ghostVertex
}

// IsBootstrapped reports whether at least one real triangle has been
// established (three non-collinear vertices added). Operations requiring a
// triangle to query against should check this before calling into the mesh.
func (t *Triangulator) IsBootstrapped() bool {
	return t.isBootstrapped()
}

// MaxAllocatedIndex returns the highest directed-edge index ever handed out
// by the underlying quad-edge pool, a sizing hint for callers that want to
// key a parallel array by quadedge.Edge.
func (t *Triangulator) MaxAllocatedIndex() int {
	return t.pool.MaxAllocatedIndex()
}

// Vertices returns every live vertex, in arbitrary order. The returned slice
// is a snapshot; it is not invalidated by later mutation of the
// triangulator, but also does not reflect later mutation.
func (t *Triangulator) Vertices() []types.Vertex {
	out := make([]types.Vertex, 0, len(t.verts))
	for _, v := range t.verts {
		if v.Index != types.NilVertex {
			out = append(out, v)
		}
	}
	return out
}

// Vertex returns the vertex record for id, or false if id does not name a
// live vertex.
func (t *Triangulator) Vertex(id types.VertexID) (types.Vertex, bool) {
	if id < 0 || int(id) >= len(t.verts) {
		return types.Vertex{}, false
	}
	v := t.verts[id]
	if v.Index == types.NilVertex {
		return types.Vertex{}, false
	}
	return v, true
}

// Edges returns the canonical directed edge of every live undirected edge
// whose endpoints are both real vertices, skipping ghost-incident edges.
// This is the edge set a caller would walk to enumerate triangles or
// Voronoi duals.
func (t *Triangulator) Edges() []quadedge.Edge {
	all := t.pool.AllEdges()
	out := make([]quadedge.Edge, 0, len(all))
	for _, e := range all {
		if !t.isGhostEdge(e) {
			out = append(out, e)
		}
	}
	return out
}

// NeighborEdge returns the directed edge from a to b, if the two vertices
// are adjacent in the current triangulation. Like locateAmongRealTriangles,
// this is a linear scan over live edges rather than an indexed lookup (see
// DESIGN.md for the tradeoff).
func (t *Triangulator) NeighborEdge(a, b types.VertexID) (quadedge.Edge, bool) {
	for _, e := range t.pool.AllEdges() {
		if t.pool.Org(e) == a && t.pool.Dest(e) == b {
			return e, true
		}
		if t.pool.Org(e) == b && t.pool.Dest(e) == a {
			return t.pool.Sym(e), true
		}
	}
	return quadedge.NilEdge, false
}

// EdgeFrom returns some directed edge with origin v, suitable as a starting
// point for a Pinwheel walk of v's neighbors. It reports false if v has no
// live incident edges.
func (t *Triangulator) EdgeFrom(v types.VertexID) (quadedge.Edge, bool) {
	e := t.anyEdgeFrom(v)
	return e, e.IsValid()
}

// anyEdgeFrom returns some directed edge with origin v, or NilEdge if v has
// no live incident edges.
func (t *Triangulator) anyEdgeFrom(v types.VertexID) quadedge.Edge {
	for _, e := range t.pool.AllEdges() {
		if t.pool.Org(e) == v {
			return e
		}
		if t.pool.Dest(e) == v {
			return t.pool.Sym(e)
		}
	}
	return quadedge.NilEdge
}
