// Package naturalneighbor implements Sibson natural-neighbor interpolation
// over a tin.Triangulator: for a query point q, it finds the set of
// vertices whose Voronoi cells would shrink if q were inserted (its
// "natural neighbors"), weights each by the area it would lose, and returns
// the weighted average of a caller-supplied value at each neighbor.
//
// The envelope is found by the same in-circle test the triangulator itself
// uses to decide whether to flip an edge (see tin's legalize), applied as a
// read-only flood fill instead of a committed insertion: no vertex is ever
// added to the mesh, and ResetForChangeToTin exists only to invalidate the
// Interpolator's own query cache when the caller has mutated the
// triangulator directly.
package naturalneighbor

import (
	"math"

	"github.com/terramesh/tin/predicates"
	"github.com/terramesh/tin/quadedge"
	"github.com/terramesh/tin/tin"
	"github.com/terramesh/tin/types"
)

// Valuator supplies the scalar value being interpolated at a vertex, e.g.
// its elevation.
type Valuator func(types.VertexID) float64

// Interpolator computes natural-neighbor interpolated values over a
// Triangulator without mutating it.
type Interpolator struct {
	t *tin.Triangulator

	lastQuery     types.Point
	lastNeighbors []types.VertexID
	lastWeights   []float64
	haveLast      bool
}

// New wraps an already-built Triangulator for natural-neighbor queries.
func New(t *tin.Triangulator) *Interpolator {
	return &Interpolator{t: t}
}

// ResetForChangeToTin invalidates the Interpolator's cached last-query
// state. Call it whenever the underlying Triangulator has been mutated
// (Add, AddBulk, Remove, or a constraint embedding) since the Interpolator
// was created or last reset; the Interpolator keeps no reference that would
// otherwise detect such a change.
func (in *Interpolator) ResetForChangeToTin() {
	in.lastNeighbors = nil
	in.lastWeights = nil
	in.haveLast = false
}

// Interpolate evaluates the natural-neighbor weighted average of valuator
// over q's natural neighbors. If the triangulation is not bootstrapped, it
// returns ErrNotBootstrapped. If q lies outside the triangulation's hull or
// the envelope degenerates (fewer than 3 neighbors, zero total weight), it
// returns math.NaN() with a nil error, per the "well-formed undefined
// result" contract for out-of-domain queries.
func (in *Interpolator) Interpolate(q types.Point, valuator Valuator) (float64, error) {
	neighbors, weights, ok, err := in.envelope(q)
	if err != nil {
		return math.NaN(), err
	}
	if !ok {
		in.ResetForChangeToTin()
		return math.NaN(), nil
	}

	in.lastQuery = q
	in.lastNeighbors = neighbors
	in.lastWeights = weights
	in.haveLast = true

	var sum float64
	for i, v := range neighbors {
		sum += weights[i] * valuator(v)
	}
	return sum, nil
}

// BowyerWatsonEnvelope returns q's natural neighbors — the vertices whose
// Voronoi cells are adjacent to the hypothetical cell q would occupy if
// inserted — in cyclic (counter-clockwise) order, without computing
// interpolation weights. It returns nil neighbors and a nil error if q is
// outside the hull or the envelope could not be formed.
func (in *Interpolator) BowyerWatsonEnvelope(q types.Point) ([]types.VertexID, error) {
	neighbors, _, ok, err := in.envelope(q)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return neighbors, nil
}

// BarycentricCoordinateDeviation returns ‖Σ wᵢ·(vᵢ − q)‖ for the most
// recent Interpolate call: the degree to which the natural-neighbor weights
// fail to reproduce q itself as a barycentric combination of its
// neighbors, a diagnostic for how well-conditioned the local mesh is. It
// returns 0 if no query has been made since construction or the last
// ResetForChangeToTin.
func (in *Interpolator) BarycentricCoordinateDeviation() float64 {
	if !in.haveLast {
		return 0
	}
	var dx, dy float64
	for i, v := range in.lastNeighbors {
		p := in.t.PointOf(v)
		w := in.lastWeights[i]
		dx += w * (p.X - in.lastQuery.X)
		dy += w * (p.Y - in.lastQuery.Y)
	}
	return math.Hypot(dx, dy)
}

// envelope computes q's ordered natural neighbors and their normalized
// Sibson weights. ok is false (with a nil error) when q falls outside the
// hull or the local mesh is too degenerate to form a cavity.
func (in *Interpolator) envelope(q types.Point) (neighbors []types.VertexID, weights []float64, ok bool, err error) {
	if !in.t.IsBootstrapped() {
		return nil, nil, false, ErrNotBootstrapped
	}

	start, found := in.locate(q)
	if !found {
		return nil, nil, false, nil
	}

	pool := in.t.Pool()
	ghost := in.t.GhostVertex()

	type faceKey = quadedge.Edge // canonical representative: the smallest of the 3 face edges
	cavity := make(map[faceKey]bool)

	canon := func(e quadedge.Edge) faceKey {
		f := faceOf(pool, e)
		rep := f[0]
		if f[1] < rep {
			rep = f[1]
		}
		if f[2] < rep {
			rep = f[2]
		}
		return rep
	}

	var queue []quadedge.Edge
	startFace := faceOf(pool, start)
	cavity[canon(start)] = true
	queue = append(queue, startFace[:]...)

	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]

		nbr := pool.Sym(e)
		a, b, c := pool.Org(nbr), pool.Dest(nbr), pool.Dest(pool.ForwardFromDual(nbr))
		if a == ghost || b == ghost || c == ghost {
			continue
		}
		key := canon(nbr)
		if cavity[key] {
			continue
		}
		if predicates.InCircle(in.t.PointOf(a), in.t.PointOf(b), in.t.PointOf(c), q) <= 0 {
			continue
		}
		cavity[key] = true
		face := faceOf(pool, nbr)
		queue = append(queue, face[:]...)
	}

	// Boundary edges: edges of a cavity face whose opposite face is not in
	// the cavity (including ghost faces, which are never in the cavity).
	var boundary []quadedge.Edge
	for key := range cavity {
		for _, fe := range faceOf(pool, key) {
			if !cavity[canon(pool.Sym(fe))] {
				boundary = append(boundary, fe)
			}
		}
	}

	if len(boundary) < 3 {
		return nil, nil, false, nil
	}

	ordered, ok2 := orderBoundary(pool, boundary)
	if !ok2 {
		return nil, nil, false, nil
	}
	n := len(ordered)

	verts := make([]types.VertexID, n)
	for i, e := range ordered {
		verts[i] = pool.Org(e)
	}

	qcc := make([]types.Point, n)
	for i := 0; i < n; i++ {
		a := in.t.PointOf(verts[i])
		b := in.t.PointOf(verts[(i+1)%n])
		qcc[i] = predicates.Circumcenter(q, a, b)
	}

	raw := make([]float64, n)
	var total float64
	for i := 0; i < n; i++ {
		poly := []types.Point{qcc[(i-1+n)%n]}
		poly = append(poly, innerFanCircumcenters(in.t, pool, ordered[(i-1+n)%n], ordered[i], cavity, canon)...)
		poly = append(poly, qcc[i])
		area := math.Abs(polygonArea(poly))
		raw[i] = area
		total += area
	}
	if total <= 0 {
		return nil, nil, false, nil
	}

	weights = make([]float64, n)
	for i := range raw {
		weights[i] = raw[i] / total
	}
	return verts, weights, true, nil
}

// faceOf returns the 3 directed edges whose common left face has e as one
// of its sides, in CCW order starting at e.
func faceOf(pool *quadedge.Pool, e quadedge.Edge) [3]quadedge.Edge {
	e1 := pool.ForwardFromDual(e)
	e2 := pool.ForwardFromDual(e1)
	return [3]quadedge.Edge{e, e1, e2}
}

// innerFanCircumcenters walks the pinwheel of vertex Org(to) (equivalently
// Dest(from)) from Sym(from), exclusive, clockwise (Reverse) through to,
// inclusive,
// collecting the circumcenter of each cavity face traversed along the way —
// the deleted triangles contributing to the area stolen from that vertex's
// Voronoi cell. Sym(from)'s own wedge is always the exterior face beyond
// the cavity boundary (from is itself a boundary edge), so it is correctly
// excluded by starting the walk one step past it; to's wedge is the last
// cavity face in the fan and is always included.
func innerFanCircumcenters(t *tin.Triangulator, pool *quadedge.Pool, from, to quadedge.Edge, cavity map[quadedge.Edge]bool, canon func(quadedge.Edge) quadedge.Edge) []types.Point {
	var out []types.Point
	cur := pool.Sym(from)
	for i := 0; i < 64; i++ {
		cur = pool.Reverse(cur)
		if cavity[canon(cur)] {
			f := faceOf(pool, cur)
			a, b, c := pool.Org(f[0]), pool.Org(f[1]), pool.Org(f[2])
			out = append(out, predicates.Circumcenter(t.PointOf(a), t.PointOf(b), t.PointOf(c)))
		}
		if cur == to {
			break
		}
	}
	return out
}

// orderBoundary assembles an unordered set of boundary edges (each
// Org(e)->Dest(e) along the cavity's outside) into one cyclic, CCW-ordered
// chain, matching each edge's Dest to the next edge's Org.
func orderBoundary(pool *quadedge.Pool, boundary []quadedge.Edge) ([]quadedge.Edge, bool) {
	remaining := append([]quadedge.Edge(nil), boundary...)
	ordered := []quadedge.Edge{remaining[0]}
	remaining = remaining[1:]

	for len(remaining) > 0 {
		last := ordered[len(ordered)-1]
		found := -1
		for i, e := range remaining {
			if pool.Org(e) == pool.Dest(last) {
				found = i
				break
			}
		}
		if found < 0 {
			return nil, false
		}
		ordered = append(ordered, remaining[found])
		remaining = append(remaining[:found], remaining[found+1:]...)
	}
	return ordered, true
}

func polygonArea(poly []types.Point) float64 {
	var sum float64
	n := len(poly)
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// locate finds an edge whose left face is the real triangle containing q,
// by linear scan over live edges — the same fallback tradeoff tin's own
// locate makes (see DESIGN.md).
func (in *Interpolator) locate(q types.Point) (quadedge.Edge, bool) {
	pool := in.t.Pool()
	ghost := in.t.GhostVertex()

	var candidates []quadedge.Edge
	for _, e := range in.t.Edges() {
		candidates = append(candidates, e, pool.Sym(e))
	}
	for _, e := range candidates {
		a, b := pool.Org(e), pool.Dest(e)
		c := pool.Dest(pool.ForwardFromDual(e))
		if a == ghost || b == ghost || c == ghost {
			continue
		}
		pa, pb, pc := in.t.PointOf(a), in.t.PointOf(b), in.t.PointOf(c)
		if predicates.Orient2D(pa, pb, q) >= 0 &&
			predicates.Orient2D(pb, pc, q) >= 0 &&
			predicates.Orient2D(pc, pa, q) >= 0 {
			return e, true
		}
	}
	return quadedge.NilEdge, false
}
