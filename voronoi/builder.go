// Package voronoi builds the bounded Voronoi diagram dual to a
// triangulation: one polygon per site, the union of the circumcenters of
// its incident triangles, clipped to a caller-supplied rectangle.
package voronoi

import (
	"fmt"

	"github.com/terramesh/tin/predicates"
	"github.com/terramesh/tin/tin"
	"github.com/terramesh/tin/types"
)

// Cell is one site's Voronoi polygon, wound counter-clockwise and clipped
// to the Builder's bounds.
type Cell struct {
	Site    types.VertexID
	Polygon []types.Point

	// Open reports whether Site lies on the triangulation's convex hull,
	// meaning its unclipped cell would otherwise extend to infinity.
	Open bool
}

// Builder constructs Voronoi cells for every site of a Triangulator, reading
// it without mutation; any number of Builders (and any number of Build
// calls) may run concurrently against the same Triangulator as long as
// nothing is concurrently adding to or removing from it.
type Builder struct {
	t      *tin.Triangulator
	bounds types.AABB
}

// NewBuilder creates a Builder that clips every cell to bounds.
func NewBuilder(t *tin.Triangulator, bounds types.AABB) *Builder {
	return &Builder{t: t, bounds: bounds}
}

// Build computes every site's Voronoi cell. A site whose cell does not
// intersect the clip rectangle at all is omitted from the result.
func (b *Builder) Build() ([]Cell, error) {
	ghost := b.t.GhostVertex()
	pool := b.t.Pool()

	var cells []Cell
	for _, vert := range b.t.Vertices() {
		v := vert.Index
		start, ok := b.t.EdgeFrom(v)
		if !ok {
			continue
		}

		spokes := pool.Pinwheel(start)
		n := len(spokes)
		if n < 2 {
			continue
		}
		neighbors := make([]types.VertexID, n)
		for i, s := range spokes {
			neighbors[i] = pool.Dest(s)
		}

		hullIdx := -1
		for i, nb := range neighbors {
			if nb == ghost {
				hullIdx = i
				break
			}
		}

		pv := b.t.PointOf(v)
		var cell Cell
		var built bool
		if hullIdx < 0 {
			cell, built = b.closedCell(v, pv, neighbors)
		} else {
			if n < 3 {
				continue // degenerate pre-triangulation state; nothing to build yet
			}
			cell, built = b.openCell(v, pv, neighbors, hullIdx)
		}
		if built {
			cells = append(cells, cell)
		}
	}
	return cells, nil
}

func (b *Builder) closedCell(v types.VertexID, pv types.Point, neighbors []types.VertexID) (Cell, bool) {
	n := len(neighbors)
	poly := make([]types.Point, n)
	for i := 0; i < n; i++ {
		a := neighbors[i]
		c := neighbors[(i+1)%n]
		poly[i] = predicates.Circumcenter(pv, b.t.PointOf(a), b.t.PointOf(c))
	}
	clipped := clipPolygonToBox(poly, b.bounds)
	if len(clipped) < 3 {
		return Cell{}, false
	}
	return Cell{Site: v, Polygon: clipped, Open: false}, true
}

// openCell builds the cell for a hull site. neighbors[hullIdx] is the ghost
// vertex; the real neighbors either side of it bound the cell's two
// unbounded edges, whose perpendicular-bisector rays are clipped to the
// bounds and, if both hit it, stitched together with any intervening box
// corners (walking counter-clockwise, per perimeterParam) to close the
// polygon.
func (b *Builder) openCell(v types.VertexID, pv types.Point, neighbors []types.VertexID, hullIdx int) (Cell, bool) {
	n := len(neighbors)
	var poly []types.Point
	for k := 1; k <= n-2; k++ {
		a := neighbors[(hullIdx+k)%n]
		c := neighbors[(hullIdx+k+1)%n]
		poly = append(poly, predicates.Circumcenter(pv, b.t.PointOf(a), b.t.PointOf(c)))
	}
	if len(poly) == 0 {
		return Cell{}, false
	}

	first := neighbors[(hullIdx+1)%n]
	firstAway := neighbors[(hullIdx+2)%n]
	last := neighbors[(hullIdx-1+n)%n]
	lastAway := neighbors[(hullIdx-2+n)%n]

	dirFirst := outwardBisectorDir(pv, b.t.PointOf(first), b.t.PointOf(firstAway))
	dirLast := outwardBisectorDir(pv, b.t.PointOf(last), b.t.PointOf(lastAway))

	exitFirst, okFirst := rayBoxExit(poly[0], dirFirst, b.bounds)
	exitLast, okLast := rayBoxExit(poly[len(poly)-1], dirLast, b.bounds)

	full := append([]types.Point(nil), poly...)
	if okFirst && okLast {
		full = append(full, exitLast)
		full = append(full, cornersBetween(perimeterParam(exitLast, b.bounds), perimeterParam(exitFirst, b.bounds), b.bounds)...)
		full = append(full, exitFirst)
	}

	clipped := clipPolygonToBox(full, b.bounds)
	if len(clipped) < 3 {
		return Cell{}, false
	}
	return Cell{Site: v, Polygon: clipped, Open: true}, true
}

// outwardBisectorDir returns a direction, perpendicular to segment v-n and
// pointing away from away, suitable as the ray direction for an open Voronoi
// edge. away is a point known to lie on the bounded (triangulation-interior)
// side of the bisector, e.g. the third vertex of the adjacent real triangle.
func outwardBisectorDir(v, n, away types.Point) types.Point {
	mid := types.Point{X: (v.X + n.X) / 2, Y: (v.Y + n.Y) / 2}
	edge := types.Point{X: n.X - v.X, Y: n.Y - v.Y}
	perp := types.Point{X: edge.Y, Y: -edge.X}
	toAway := types.Point{X: away.X - mid.X, Y: away.Y - mid.Y}
	if perp.X*toAway.X+perp.Y*toAway.Y > 0 {
		perp = types.Point{X: -perp.X, Y: -perp.Y}
	}
	return perp
}

// IntegrityCheck verifies that every cell is a positively-wound polygon
// (positive signed area) with at least three vertices. It does not test
// cells for self-intersection, and it does not check polygon membership
// counts or that the cell areas sum to the bounds' area.
func (b *Builder) IntegrityCheck(cells []Cell) error {
	for _, c := range cells {
		if len(c.Polygon) < 3 {
			return fmt.Errorf("voronoi: cell for site %d has fewer than 3 vertices: %w", c.Site, ErrDegenerateCell)
		}
		if signedArea(c.Polygon) <= 0 {
			return fmt.Errorf("voronoi: cell for site %d is degenerate or wound clockwise: %w", c.Site, ErrDegenerateCell)
		}
	}
	return nil
}

func signedArea(poly []types.Point) float64 {
	var sum float64
	n := len(poly)
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}
