// Package tin implements an incremental constrained Delaunay triangulator
// on top of a quad-edge mesh. A Triangulator is a single-writer structure:
// Add/AddBulk/Remove/AddConstraints must not be called concurrently with
// each other or with any other method, but once construction is finished
// the result may be read concurrently by any number of goroutines (the
// voronoi and naturalneighbor packages only ever read).
package tin

import (
	"fmt"
	"math"

	"github.com/terramesh/tin/quadedge"
	"github.com/terramesh/tin/spatial"
	"github.com/terramesh/tin/types"
)

// ghostVertex is the stable index of the single sentinel vertex used to
// close the triangulation's outer boundary. Every hull vertex has exactly
// one "spoke" edge to ghostVertex, and the wedge between two consecutive
// spokes is a ghost triangle representing the unbounded face outside the
// convex hull.
//
// ghostVertex carries no coordinate: every predicate evaluated by this
// package operates on real vertices only. Locate resolves "is this point
// outside the hull" using the real hull-edge chain directly (see locate.go)
// rather than evaluating an orientation test against a symbolic point at
// infinity, so no fabricated ghost coordinate is ever needed.
const ghostVertex = types.VertexID(-2)

// Triangulator incrementally builds a constrained Delaunay triangulation.
type Triangulator struct {
	cfg  *config
	pool *quadedge.Pool

	verts    []types.Vertex
	freeVert []types.VertexID
	index    spatial.Index

	pending []types.Point // buffered points before 3 non-collinear points bootstrap the mesh

	hint     quadedge.Edge // last-used real-real edge, used as a locate starting point
	ghostRay quadedge.Edge // one edge with Org == ghostVertex, or NilEdge before bootstrap

	nextRegion int32
}

// New creates an empty Triangulator. nominalPointSpacing is the expected
// distance between neighboring input points; it is used to derive the
// default vertex-merge tolerance (see types.ThresholdsForSpacing).
// Pass 0 to use the library's conservative default tolerance instead.
func New(nominalPointSpacing float64, opts ...Option) *Triangulator {
	cfg := newDefaultConfig(nominalPointSpacing)
	for _, opt := range opts {
		opt(cfg)
	}
	return &Triangulator{
		cfg:      cfg,
		pool:     quadedge.NewPool(),
		index:    spatial.NewHashGrid(cfg.spatialCell),
		hint:     quadedge.NilEdge,
		ghostRay: quadedge.NilEdge,
	}
}

// Thresholds returns the tolerance bundle in effect for this triangulator.
func (t *Triangulator) Thresholds() types.Thresholds {
	return t.cfg.thresholds
}

func (t *Triangulator) pointOf(v types.VertexID) types.Point {
	return t.verts[v].Point
}

func (t *Triangulator) isBootstrapped() bool {
	return t.ghostRay.IsValid()
}

// allocVertex commits a new vertex to the vertex table and spatial index,
// returning its stable index.
func (t *Triangulator) allocVertex(p types.Point) types.VertexID {
	var id types.VertexID
	if n := len(t.freeVert); n > 0 {
		id = t.freeVert[n-1]
		t.freeVert = t.freeVert[:n-1]
		t.verts[id] = types.NewVertex(id, p)
	} else {
		id = types.VertexID(len(t.verts))
		t.verts = append(t.verts, types.NewVertex(id, p))
	}
	t.index.AddVertex(id, p)
	if t.cfg.debugAddPoint != nil {
		t.cfg.debugAddPoint(id, p)
	}
	return id
}

func (t *Triangulator) freeVertex(id types.VertexID) {
	t.index.RemoveVertex(id, t.verts[id].Point)
	t.verts[id] = types.Vertex{Index: types.NilVertex}
	t.freeVert = append(t.freeVert, id)
}

// Add inserts a point into the triangulation, merging it into an existing
// vertex if one lies within the configured merge tolerance, and returns the
// stable index of the (possibly pre-existing) vertex.
func (t *Triangulator) Add(p types.Point) (types.VertexID, error) {
	if !validPoint(p) {
		return types.NilVertex, fmt.Errorf("tin: Add(%v): %w", p, ErrInvalidInput)
	}

	if !t.isBootstrapped() {
		return t.addDuringBootstrap(p)
	}

	if t.cfg.mergeVertices {
		if existing, ok := t.findMergeCandidate(p); ok {
			t.verts[existing].MergedFrom = append(t.verts[existing].MergedFrom, existing)
			return existing, nil
		}
	}

	return t.insert(p)
}

// AddBulk inserts many points in order, checking cancel roughly every 1000
// insertions (never mid-insertion, so the triangulation is always left in a
// consistent, valid state even when canceled). On cancellation it returns
// the vertex IDs committed so far alongside ErrCanceled.
func (t *Triangulator) AddBulk(points []types.Point, cancel <-chan struct{}) ([]types.VertexID, error) {
	const checkCadence = 1000
	ids := make([]types.VertexID, 0, len(points))
	for i, p := range points {
		if cancel != nil && i%checkCadence == 0 {
			select {
			case <-cancel:
				return ids, ErrCanceled
			default:
			}
		}
		id, err := t.Add(p)
		if err != nil {
			return ids, fmt.Errorf("tin: AddBulk at index %d: %w", i, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func validPoint(p types.Point) bool {
	return p.X == p.X && p.Y == p.Y && // reject NaN
		p.X < 1e300 && p.X > -1e300 && p.Y < 1e300 && p.Y > -1e300 // reject Inf
}

func (t *Triangulator) findMergeCandidate(p types.Point) (types.VertexID, bool) {
	radius := t.cfg.thresholds.TolForPoints(p)
	for _, id := range t.index.FindVerticesNear(p, radius) {
		if id == types.NilVertex || id < 0 || int(id) >= len(t.verts) {
			continue
		}
		if t.verts[id].Index == types.NilVertex {
			continue // freed slot
		}
		if t.cfg.thresholds.MergeDistance(p, t.verts[id].Point) >= distance(p, t.verts[id].Point) {
			return id, true
		}
	}
	return types.NilVertex, false
}

func distance(a, b types.Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
