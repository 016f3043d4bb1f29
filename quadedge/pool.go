// Package quadedge implements the Guibas–Stolfi quad-edge data structure
// backed by a reusable slot arena, in the spirit of the allocator the
// triangulator's predecessor used for triangle storage: a flat array of
// slots plus a free list of recycled indices, so repeated insert/remove
// cycles do not grow the arena unboundedly.
//
// Every undirected edge of a mesh is represented by a block of four
// consecutive slots (its "quad edge"): two primal directed edges (the edge
// itself and its reverse) and two dual directed edges (the two faces on
// either side). The four navigation operators below let a caller move
// between any of these twelve related edges (four per quad edge, and the
// edges reachable from each via Forward) without ever touching the slot
// arithmetic directly.
package quadedge

import "github.com/terramesh/tin/types"

// Edge is a handle to one of the four directed representations of an
// undirected edge. The zero value is not a valid edge; use NilEdge for an
// explicit absent reference.
type Edge int32

// NilEdge is the sentinel value representing an invalid or absent edge.
const NilEdge Edge = -1

// IsValid reports whether e refers to an allocated slot.
func (e Edge) IsValid() bool { return e >= 0 }

// quadEdge groups the bookkeeping for the four directed slots of one
// undirected edge. Slot rotation 0 is the "canonical" primal direction a
// caller allocated; rotation 2 is its Sym (the reverse primal direction);
// rotations 1 and 3 are the two dual (face) directions.
type quadEdge struct {
	next        [4]Edge    // Onext ring pointer per rotation
	data        [4]int32   // vertex index (rot 0,2); NilVertex for the dual slots (rot 1,3)
	constrained bool       // true if this undirected edge is a constraint segment
	regionLeft  int32      // region label of the face to the left of rotation 0
	regionRight int32      // region label of the face to the right of rotation 0
	onHull      bool       // true if this edge borders the ghost/ghost-adjacent face
}

// Pool is an arena of quad edges. The zero value is not usable; use NewPool.
type Pool struct {
	blocks []quadEdge
	free   []int32 // recycled block indices
}

// NewPool creates an empty edge pool.
func NewPool() *Pool {
	return &Pool{}
}

// MakeEdge allocates a new, topologically isolated undirected edge and
// returns its canonical (rotation 0) directed edge. The returned edge's
// origin and destination are unset (NilVertex) until the caller assigns
// them with SetOrg/SetDest.
func (p *Pool) MakeEdge() Edge {
	var base int32
	if n := len(p.free); n > 0 {
		base = p.free[n-1]
		p.free = p.free[:n-1]
		p.blocks[base] = quadEdge{}
	} else {
		base = int32(len(p.blocks))
		p.blocks = append(p.blocks, quadEdge{})
	}

	blk := &p.blocks[base]
	for i := range blk.data {
		blk.data[i] = int32(types.NilVertex)
	}

	e0 := Edge(base * 4)
	e1 := e0 + 1
	e2 := e0 + 2
	e3 := e0 + 3

	// An isolated edge's Onext ring is self-looped on the primal pair and
	// cross-looped on the dual pair, matching the classical construction.
	p.setNext(e0, e0)
	p.setNext(e1, e3)
	p.setNext(e2, e2)
	p.setNext(e3, e1)

	return e0
}

// DeleteEdge splices e out of the rings it participates in and returns its
// four slots to the free list. e must not be referenced again afterwards.
func (p *Pool) DeleteEdge(e Edge) {
	if p.Forward(e) != e {
		p.Splice(e, p.Reverse(e))
	}
	sym := p.Sym(e)
	if p.Forward(sym) != sym {
		p.Splice(sym, p.Reverse(sym))
	}
	base := int32(e) / 4
	p.free = append(p.free, base)
}

// Dual returns e's planar-dual edge: the dual graph's edge crossing e,
// oriented so that Dual(Dual(e)) == e. Per the slot layout, this is simply
// e's index with its low bit flipped, pairing rotation 0 with 1 and 2 with
// 3, so it always moves between a primal slot (rotation 0 or 2) and a dual
// slot (rotation 1 or 3). Dual is its own inverse; InvDual is kept as
// a distinct method only because the classical quad-edge literature names
// it separately.
func (p *Pool) Dual(e Edge) Edge {
	return Edge(int32(e) ^ 1)
}

// InvDual undoes Dual. Since Dual is an involution (Dual(Dual(e)) == e),
// InvDual and Dual compute the same value; two names are kept so call
// sites can express "the dual" versus "undo the dual" the way the
// classical quad-edge operators do.
func (p *Pool) InvDual(e Edge) Edge {
	return Edge(int32(e) ^ 1)
}

// Sym returns the reverse of e (same undirected edge, opposite direction).
func (p *Pool) Sym(e Edge) Edge {
	return rotate(e, 2)
}

// Forward returns the next edge counter-clockwise around e's origin vertex
// (the classical Onext operator). Repeatedly applying Forward enumerates
// every edge incident to a vertex; see Pinwheel.
func (p *Pool) Forward(e Edge) Edge {
	return p.blocks[e/4].next[e%4]
}

// Reverse returns the next edge clockwise around e's origin vertex (the
// classical Oprev operator), defined as rot(Forward(rot(e))) for the
// quarter-turn rotation that walks primal -> dual -> primal. This uses the
// internal 4-cycle rotation rather than the public (involutive) Dual, which
// is a bookkeeping identity rather than the navigation step Oprev needs.
func (p *Pool) Reverse(e Edge) Edge {
	return rotate(p.Forward(rotate(e, 1)), 1)
}

// ForwardFromDual returns the next edge around e's left face in the same
// orientation as e (the classical Lnext operator), defined as
// rot(Forward(rot(e, -1))). This is the operator used to walk the boundary
// of a face/triangle.
func (p *Pool) ForwardFromDual(e Edge) Edge {
	return rotate(p.Forward(rotate(e, 3)), 1)
}

// ReverseFromDual returns the previous edge around e's left face (the
// classical Lprev operator), defined as Sym(Forward(e)).
func (p *Pool) ReverseFromDual(e Edge) Edge {
	return p.Sym(p.Forward(e))
}

// Pinwheel enumerates every directed edge with the same origin as e, in
// counter-clockwise order starting at e, by repeatedly applying Forward
// until the ring returns to e.
func (p *Pool) Pinwheel(e Edge) []Edge {
	edges := []Edge{e}
	for cur := p.Forward(e); cur != e; cur = p.Forward(cur) {
		edges = append(edges, cur)
		if len(edges) > 4*len(p.blocks)+4 {
			// Defensive bound: a well-formed ring always closes; this only
			// trips if the topology has been corrupted.
			break
		}
	}
	return edges
}

// Org returns the origin vertex of directed primal edge e.
func (p *Pool) Org(e Edge) types.VertexID {
	return types.VertexID(p.blocks[e/4].data[e%4])
}

// Dest returns the destination vertex of directed primal edge e.
func (p *Pool) Dest(e Edge) types.VertexID {
	return p.Org(p.Sym(e))
}

// SetOrg assigns the origin vertex of directed primal edge e.
func (p *Pool) SetOrg(e Edge, v types.VertexID) {
	p.blocks[e/4].data[e%4] = int32(v)
}

// SetDest assigns the destination vertex of directed primal edge e.
func (p *Pool) SetDest(e Edge, v types.VertexID) {
	p.SetOrg(p.Sym(e), v)
}

// Splice is the fundamental quad-edge topological surgery operator: it
// either merges the Onext rings of a and b's origins (if they were
// disjoint) or splits a single ring into two (if they were the same ring).
// Every higher-level mesh edit (connect, flip, delete) is expressed in
// terms of Splice.
func (p *Pool) Splice(a, b Edge) {
	alpha := rotate(p.Forward(a), 1)
	beta := rotate(p.Forward(b), 1)

	aNext := p.Forward(a)
	bNext := p.Forward(b)
	alphaNext := p.Forward(alpha)
	betaNext := p.Forward(beta)

	p.setNext(a, bNext)
	p.setNext(b, aNext)
	p.setNext(alpha, betaNext)
	p.setNext(beta, alphaNext)
}

// Connect creates a new edge from Dest(a) to Org(b), splices it into both
// rings so the new edge shares a's destination face and b's origin face,
// and returns the directed edge running a.Dest -> b.Org.
func (p *Pool) Connect(a, b Edge) Edge {
	e := p.MakeEdge()
	p.SetOrg(e, p.Dest(a))
	p.SetDest(e, p.Org(b))
	p.Splice(e, p.ForwardFromDual(a))
	p.Splice(p.Sym(e), b)
	return e
}

// SetConstrained marks or clears the undirected edge of e as a constraint
// segment. Both directed representations of the same undirected edge share
// the flag.
func (p *Pool) SetConstrained(e Edge, constrained bool) {
	p.blocks[e/4].constrained = constrained
}

// IsConstrained reports whether the undirected edge of e is a constraint
// segment.
func (p *Pool) IsConstrained(e Edge) bool {
	return p.blocks[e/4].constrained
}

// SetOnHull marks or clears e as bordering the triangulation's outer
// boundary (incident to the ghost vertex/face).
func (p *Pool) SetOnHull(e Edge, onHull bool) {
	p.blocks[e/4].onHull = onHull
}

// IsOnHull reports whether e borders the triangulation's outer boundary.
func (p *Pool) IsOnHull(e Edge) bool {
	return p.blocks[e/4].onHull
}

// RegionLeft returns the region label of the face to the left of the
// directed edge e (for the canonical rotation 0 this is regionLeft, for
// its Sym regionRight).
func (p *Pool) RegionLeft(e Edge) int32 {
	blk := &p.blocks[e/4]
	if e%4 == 0 {
		return blk.regionLeft
	}
	return blk.regionRight
}

// SetRegionLeft assigns the region label of the face to the left of the
// directed edge e.
func (p *Pool) SetRegionLeft(e Edge, label int32) {
	blk := &p.blocks[e/4]
	if e%4 == 0 {
		blk.regionLeft = label
	} else {
		blk.regionRight = label
	}
}

// RegionRight returns the region label of the face to the right of the
// directed edge e.
func (p *Pool) RegionRight(e Edge) int32 {
	return p.RegionLeft(p.Sym(e))
}

// SetRegionRight assigns the region label of the face to the right of the
// directed edge e.
func (p *Pool) SetRegionRight(e Edge, label int32) {
	p.SetRegionLeft(p.Sym(e), label)
}

// MaxAllocatedIndex returns the highest directed-edge index ever handed out
// by this pool, including slots since freed. This is the sizing hint a
// caller can use to dimension a parallel array keyed by Edge.
func (p *Pool) MaxAllocatedIndex() int {
	return len(p.blocks)*4 - 1
}

// NumLiveEdges returns the number of undirected edges currently allocated
// (not on the free list).
func (p *Pool) NumLiveEdges() int {
	return len(p.blocks) - len(p.free)
}

// AllEdges returns the canonical (rotation 0) directed edge of every
// currently-allocated undirected edge, in arbitrary order. Used by callers
// that need to enumerate every live edge or face, such as a brute-force
// point-location fallback or an integrity check.
func (p *Pool) AllEdges() []Edge {
	freed := make(map[int32]bool, len(p.free))
	for _, b := range p.free {
		freed[b] = true
	}
	edges := make([]Edge, 0, len(p.blocks)-len(p.free))
	for b := 0; b < len(p.blocks); b++ {
		if !freed[int32(b)] {
			edges = append(edges, Edge(int32(b)*4))
		}
	}
	return edges
}

func (p *Pool) setNext(e, to Edge) {
	p.blocks[e/4].next[e%4] = to
}

func rotate(e Edge, steps int32) Edge {
	base := e / 4
	rot := (int32(e%4) + steps) % 4
	return base*4 + Edge(rot)
}
