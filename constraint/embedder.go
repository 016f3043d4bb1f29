// Package constraint forces user-supplied segments and polygons into an
// already-built triangulation and labels the resulting regions.
//
// A constraint edge that does not already exist in the mesh is forced in
// the classical Lawson-channel way: walk from one endpoint toward the
// other, and for every edge the straight segment properly crosses, flip it
// if the flip yields a convex quadrilateral (tried first, and it never
// introduces a synthetic vertex); if the crossing edge cannot be flipped —
// its quadrilateral isn't convex, or the edge is itself already
// constrained — fall back to splitting it with a synthetic vertex inserted
// via the triangulator's ordinary incremental insertion (which
// re-legalizes the local neighborhood for free), and recurse on the two
// shorter sub-segments either side of the split.
//
// When the edge being split was already constrained, the two halves left
// behind by the split keep the original constraint's index and the
// crossing is recorded as a Conflict rather than failing the call — see
// Embedder.IntegrityCheck.
package constraint

import (
	"fmt"
	"math"

	"github.com/terramesh/tin/predicates"
	"github.com/terramesh/tin/quadedge"
	"github.com/terramesh/tin/tin"
	"github.com/terramesh/tin/types"
)

// Conflict records a constraint segment that had to split an
// already-constrained edge at a proper crossing. Winner is the index of
// the constraint being forced in; Loser is the index of the pre-existing
// constraint whose edge was split.
type Conflict struct {
	Winner, Loser int32
}

// Embedder forces constraint segments into a Triangulator and tracks the
// constraint ownership and crossing diagnostics AddConstraints reports.
// Like Triangulator itself, it is a single-writer structure: do not call
// its methods concurrently with each other or with the underlying
// Triangulator's own mutators.
type Embedder struct {
	t         *tin.Triangulator
	nextIndex int32
	owner     map[types.Edge]int32
	conflicts []Conflict
}

// NewEmbedder wraps an already-bootstrapped Triangulator. Constraint
// indices it assigns start at 0 and increase by one per AddEdge/AddLoop
// call, or per Constraint passed to AddConstraints through this Embedder.
func NewEmbedder(t *tin.Triangulator) *Embedder {
	return &Embedder{t: t}
}

// AddEdge forces a single oriented segment between two existing vertices
// into the triangulation, assigning it the Embedder's next constraint
// index.
func (em *Embedder) AddEdge(seg types.Segment) error {
	idx := em.nextIndex
	em.nextIndex++
	u, v := seg.Vertices()
	return em.addSegment(u, v, idx)
}

// AddLoop forces every edge of a closed polygon loop into the
// triangulation, each under its own constraint index. Used for outer
// perimeters and hole boundaries that don't need a single shared index or
// region label; see AddConstraints for that case.
func (em *Embedder) AddLoop(loop types.PolygonLoop) error {
	if loop.NumVertices() < 3 {
		return fmt.Errorf("constraint: AddLoop: need at least 3 vertices: %w", ErrDegenerateEdge)
	}
	for i, e := range loop.Edges() {
		if err := em.AddEdge(types.NewSegment(e.V1(), e.V2())); err != nil {
			return fmt.Errorf("constraint: AddLoop edge %d: %w", i, err)
		}
	}
	return nil
}

// IntegrityCheck reports any unresolved constraint conflicts recorded while
// embedding: segments that had to split an already-constrained edge at a
// proper crossing. Per the "later wins" rule those splits always succeed —
// this is a diagnostic, not a fatal condition during embedding — so
// conflicts surface here rather than failing AddEdge/AddLoop/AddConstraints.
func (em *Embedder) IntegrityCheck() error {
	if len(em.conflicts) == 0 {
		return nil
	}
	first := em.conflicts[0]
	return fmt.Errorf("constraint: %d crossing(s) resolved by splitting (constraint %d crossed constraint %d): %w",
		len(em.conflicts), first.Winner, first.Loser, ErrConflict)
}

// Conflicts returns every recorded constraint crossing, in the order
// encountered.
func (em *Embedder) Conflicts() []Conflict {
	return append([]Conflict(nil), em.conflicts...)
}

// OwnerOf returns the constraint index that last marked the undirected edge
// of e as constrained, if any.
func (em *Embedder) OwnerOf(e quadedge.Edge) (int32, bool) {
	pool := em.t.Pool()
	idx, ok := em.owner[types.NewEdge(pool.Org(e), pool.Dest(e))]
	return idx, ok
}

// addSegment forces the segment (u,v) into the triangulation under
// constraint index idx, flipping crossing edges where possible and
// splitting where it is not.
func (em *Embedder) addSegment(u, v types.VertexID, idx int32) error {
	if u == v {
		return fmt.Errorf("constraint: segment (%d,%d): %w", u, v, ErrDegenerateEdge)
	}
	if _, ok := em.t.Vertex(u); !ok {
		return fmt.Errorf("constraint: segment (%d,%d): %w", u, v, ErrUnknownVertex)
	}
	if _, ok := em.t.Vertex(v); !ok {
		return fmt.Errorf("constraint: segment (%d,%d): %w", u, v, ErrUnknownVertex)
	}

	if e, ok := em.t.NeighborEdge(u, v); ok {
		em.markConstrained(e, idx)
		return nil
	}

	em.clearCrossingsByFlip(u, v)
	if e, ok := em.t.NeighborEdge(u, v); ok {
		em.markConstrained(e, idx)
		return nil
	}

	pu, pv := em.t.PointOf(u), em.t.PointOf(v)
	crossing, mid, wasConstrained, found := em.properCrossing(u, v, pu, pv)
	if !found {
		return fmt.Errorf("constraint: segment (%d,%d): %w", u, v, ErrNoPath)
	}

	var crossingOrg, crossingDest types.VertexID
	var crossingOwner int32
	if wasConstrained {
		pool := em.t.Pool()
		crossingOrg, crossingDest = pool.Org(crossing), pool.Dest(crossing)
		crossingOwner = em.owner[types.NewEdge(crossingOrg, crossingDest)]
	}

	midID, err := em.t.Add(mid)
	if err != nil {
		return fmt.Errorf("constraint: splitting (%d,%d): %w", u, v, err)
	}

	if wasConstrained {
		// The on-edge insertion that produced midID deleted the original
		// constrained edge and replaced it with fresh, unconstrained fan
		// edges; restore constrained status on both halves under the
		// original owner, and record the crossing rather than failing.
		if e, ok := em.t.NeighborEdge(crossingOrg, midID); ok {
			em.markConstrained(e, crossingOwner)
		}
		if e, ok := em.t.NeighborEdge(midID, crossingDest); ok {
			em.markConstrained(e, crossingOwner)
		}
		em.conflicts = append(em.conflicts, Conflict{Winner: idx, Loser: crossingOwner})
	}

	if midID == u || midID == v {
		// The split point merged onto an endpoint (degenerate remaining
		// length below the merge tolerance); the direct edge should now be
		// locatable.
		if e, ok := em.t.NeighborEdge(u, v); ok {
			em.markConstrained(e, idx)
			return nil
		}
		return fmt.Errorf("constraint: segment (%d,%d): %w", u, v, ErrNoPath)
	}

	if err := em.addSegment(u, midID, idx); err != nil {
		return err
	}
	return em.addSegment(midID, v, idx)
}

// clearCrossingsByFlip repeatedly flips the first non-constrained edge that
// properly crosses (u,v), stopping once no crossing remains, the next
// crossing is already constrained (left for addSegment's split fallback),
// or a crossing's quadrilateral cannot be flipped.
func (em *Embedder) clearCrossingsByFlip(u, v types.VertexID) {
	pu, pv := em.t.PointOf(u), em.t.PointOf(v)
	limit := 4*len(em.t.Edges()) + 16
	for i := 0; i < limit; i++ {
		e, _, constrained, found := em.properCrossing(u, v, pu, pv)
		if !found || constrained {
			return
		}
		if !em.t.FlipEdge(e) {
			return
		}
	}
}

// properCrossing scans every live real edge for a proper (interior)
// intersection with segment (u,v), skipping edges incident to either
// endpoint, and returns the first one found along with whether it is
// already constrained.
func (em *Embedder) properCrossing(u, v types.VertexID, pu, pv types.Point) (e quadedge.Edge, mid types.Point, constrained, found bool) {
	pool := em.t.Pool()
	for _, c := range em.t.Edges() {
		a, b := pool.Org(c), pool.Dest(c)
		if a == u || a == v || b == u || b == v {
			continue
		}

		pa, pb := em.t.PointOf(a), em.t.PointOf(b)
		hit, t, s := predicates.SegmentIntersect(pa, pb, pu, pv)
		if !hit || math.IsNaN(t) || math.IsNaN(s) {
			continue
		}

		const eps = 1e-9
		if t <= eps || t >= 1-eps || s <= eps || s >= 1-eps {
			continue // touches at or near an endpoint, not a proper crossing
		}

		m := types.Point{X: pa.X + t*(pb.X-pa.X), Y: pa.Y + t*(pb.Y-pa.Y)}
		return c, m, pool.IsConstrained(c), true
	}
	return quadedge.NilEdge, types.Point{}, false, false
}

// markConstrained flags e's undirected edge as constrained and records idx
// as its owning constraint index, overwriting any previous owner ("later
// wins" for edges shared outright between two constraints).
func (em *Embedder) markConstrained(e quadedge.Edge, idx int32) {
	em.t.Pool().SetConstrained(e, true)
	if em.owner == nil {
		em.owner = make(map[types.Edge]int32)
	}
	pool := em.t.Pool()
	em.owner[types.NewEdge(pool.Org(e), pool.Dest(e))] = idx
}

// FaceContaining returns an edge whose left face is the real triangle
// containing p, or false if p falls outside the triangulation. It is a
// linear scan, matching the triangulator's own point-location fallback
// (see tin/locate.go).
func (em *Embedder) FaceContaining(p types.Point) (quadedge.Edge, bool) {
	pool := em.t.Pool()
	ghost := em.t.GhostVertex()

	var candidates []quadedge.Edge
	for _, e := range em.t.Edges() {
		candidates = append(candidates, e, pool.Sym(e))
	}
	for _, e := range candidates {
		a, b := pool.Org(e), pool.Dest(e)
		c := pool.Dest(pool.ForwardFromDual(e))
		if a == ghost || b == ghost || c == ghost {
			continue
		}
		pa, pb, pc := em.t.PointOf(a), em.t.PointOf(b), em.t.PointOf(c)
		if predicates.Orient2D(pa, pb, p) >= 0 &&
			predicates.Orient2D(pb, pc, p) >= 0 &&
			predicates.Orient2D(pc, pa, p) >= 0 {
			return e, true
		}
	}
	return quadedge.NilEdge, false
}
