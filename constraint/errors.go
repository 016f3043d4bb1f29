package constraint

import "errors"

// Sentinel errors returned by Embedder methods.
var (
	// ErrDegenerateEdge is returned when a constraint edge's two endpoints
	// are the same vertex.
	ErrDegenerateEdge = errors.New("constraint: degenerate edge")

	// ErrUnknownVertex is returned when a constraint edge names a vertex
	// that is not currently live in the triangulation.
	ErrUnknownVertex = errors.New("constraint: vertex not found")

	// ErrNoPath is returned when a constraint segment could not be forced
	// into the triangulation after repeated splitting; this indicates a
	// topology bug rather than a normal user-facing condition.
	ErrNoPath = errors.New("constraint: could not force segment into triangulation")

	// ErrConflict is the error Embedder.IntegrityCheck wraps when a
	// constraint segment properly crossed an already-embedded constraint
	// segment during AddEdge/AddLoop/AddConstraints. The crossing is always
	// resolved by splitting (see Conflict, "later wins"); this is a
	// diagnostic surfaced after the fact, not a reason AddEdge or AddLoop
	// themselves fail.
	ErrConflict = errors.New("constraint: segment crossed an existing constraint")

	// ErrNoFaceAtPoint is returned when a region-labeling seed point does
	// not fall inside any triangle of the current triangulation.
	ErrNoFaceAtPoint = errors.New("constraint: no triangulation face contains point")
)
