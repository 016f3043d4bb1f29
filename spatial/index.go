package spatial

import "github.com/terramesh/tin/types"

// Index provides spatial queries used to find merge candidates while
// inserting vertices into a triangulation.
type Index interface {
	// FindVerticesNear returns vertex IDs within radius of point p.
	FindVerticesNear(p types.Point, radius float64) []types.VertexID
	// AddVertex adds a vertex to the index.
	AddVertex(id types.VertexID, p types.Point)
	// RemoveVertex removes a previously added vertex from the index.
	RemoveVertex(id types.VertexID, p types.Point)
	// Build finalizes the index structure.
	Build()
}
