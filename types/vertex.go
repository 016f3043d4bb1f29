package types

// Vertex is a single point carried by a triangulation, extended with the
// bookkeeping the triangulator needs to track provenance through merges and
// constraint insertion.
//
// Vertex.Index is the stable handle a caller uses to refer back to a vertex
// after insertion; it is independent of any internal mesh bookkeeping the
// triangulator keeps for the same vertex, so client code can stash its own
// meaning in Aux without colliding with triangulator internals.
type Vertex struct {
	Point
	Z     float64 // optional elevation/attribute carried alongside X,Y
	Index VertexID
	Aux   int32 // client-owned slot, never read or written by this package

	Synthetic        bool // introduced by constraint-segment splitting, not by a caller
	Withheld         bool // excluded from triangulation but retained for later re-insertion
	ConstraintMember bool // incident to at least one constraint edge

	// MergedFrom gains one entry, this vertex's own index, each time Add
	// folds an input point into this vertex because it fell within the merge
	// threshold; the folded points themselves are never given an index.
	MergedFrom []VertexID
}

// NewVertex creates a vertex at the given point with the given stable index.
func NewVertex(index VertexID, p Point) Vertex {
	return Vertex{Point: p, Index: index}
}
