package voronoi

import (
	"math"

	"github.com/terramesh/tin/types"
)

// Cohen–Sutherland region outcodes, used as a cheap trivial-reject before
// the exact Liang–Barsky clip runs.
const (
	outLeft = 1 << iota
	outRight
	outBottom
	outTop
)

func outcode(p types.Point, box types.AABB) int {
	code := 0
	if p.X < box.Min.X {
		code |= outLeft
	} else if p.X > box.Max.X {
		code |= outRight
	}
	if p.Y < box.Min.Y {
		code |= outBottom
	} else if p.Y > box.Max.Y {
		code |= outTop
	}
	return code
}

// liangBarskyClip clips segment p0->p1 against box using the classical
// parametric line-clipping algorithm, returning the clipped endpoints and
// whether any part of the segment survives.
func liangBarskyClip(p0, p1 types.Point, box types.AABB) (types.Point, types.Point, bool) {
	dx := p1.X - p0.X
	dy := p1.Y - p0.Y
	tMin, tMax := 0.0, 1.0

	checks := [4][2]float64{
		{-dx, p0.X - box.Min.X},
		{dx, box.Max.X - p0.X},
		{-dy, p0.Y - box.Min.Y},
		{dy, box.Max.Y - p0.Y},
	}
	for _, c := range checks {
		p, q := c[0], c[1]
		if p == 0 {
			if q < 0 {
				return types.Point{}, types.Point{}, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > tMax {
				return types.Point{}, types.Point{}, false
			}
			if r > tMin {
				tMin = r
			}
		} else {
			if r < tMin {
				return types.Point{}, types.Point{}, false
			}
			if r < tMax {
				tMax = r
			}
		}
	}
	if tMin > tMax {
		return types.Point{}, types.Point{}, false
	}
	return types.Point{X: p0.X + tMin*dx, Y: p0.Y + tMin*dy},
		types.Point{X: p0.X + tMax*dx, Y: p0.Y + tMax*dy}, true
}

// rayBoxExit finds where the ray from origin in direction dir first leaves
// box, approximating the ray by a segment to a point well beyond the box's
// diagonal and clipping that segment. It reports false if the ray (in
// either direction from origin, trivially rejected by outcode) cannot reach
// the box at all.
func rayBoxExit(origin, dir types.Point, box types.AABB) (types.Point, bool) {
	diag := math.Hypot(box.Max.X-box.Min.X, box.Max.Y-box.Min.Y)
	if diag == 0 {
		diag = 1
	}
	norm := math.Hypot(dir.X, dir.Y)
	if norm == 0 {
		return types.Point{}, false
	}
	far := types.Point{
		X: origin.X + dir.X/norm*diag*4,
		Y: origin.Y + dir.Y/norm*diag*4,
	}
	if outcode(origin, box)&outcode(far, box) != 0 {
		return types.Point{}, false
	}
	_, exit, ok := liangBarskyClip(origin, far, box)
	return exit, ok
}

// clipPolygonToBox clips a simple polygon against an axis-aligned rectangle
// using the Sutherland–Hodgman algorithm: the subject polygon is clipped
// against each of the box's four half-planes in turn.
func clipPolygonToBox(poly []types.Point, box types.AABB) []types.Point {
	if len(poly) == 0 {
		return nil
	}
	out := poly
	out = clipHalfPlane(out, func(p types.Point) bool { return p.X >= box.Min.X }, func(a, b types.Point) types.Point { return lerpX(a, b, box.Min.X) })
	if len(out) == 0 {
		return nil
	}
	out = clipHalfPlane(out, func(p types.Point) bool { return p.X <= box.Max.X }, func(a, b types.Point) types.Point { return lerpX(a, b, box.Max.X) })
	if len(out) == 0 {
		return nil
	}
	out = clipHalfPlane(out, func(p types.Point) bool { return p.Y >= box.Min.Y }, func(a, b types.Point) types.Point { return lerpY(a, b, box.Min.Y) })
	if len(out) == 0 {
		return nil
	}
	out = clipHalfPlane(out, func(p types.Point) bool { return p.Y <= box.Max.Y }, func(a, b types.Point) types.Point { return lerpY(a, b, box.Max.Y) })
	return out
}

func clipHalfPlane(poly []types.Point, inside func(types.Point) bool, intersect func(a, b types.Point) types.Point) []types.Point {
	var out []types.Point
	n := len(poly)
	for i := 0; i < n; i++ {
		cur := poly[i]
		prev := poly[(i-1+n)%n]
		curIn := inside(cur)
		prevIn := inside(prev)
		switch {
		case curIn && prevIn:
			out = append(out, cur)
		case curIn && !prevIn:
			out = append(out, intersect(prev, cur), cur)
		case !curIn && prevIn:
			out = append(out, intersect(prev, cur))
		}
	}
	return out
}

func lerpX(a, b types.Point, x float64) types.Point {
	if b.X == a.X {
		return types.Point{X: x, Y: a.Y}
	}
	t := (x - a.X) / (b.X - a.X)
	return types.Point{X: x, Y: a.Y + t*(b.Y-a.Y)}
}

func lerpY(a, b types.Point, y float64) types.Point {
	if b.Y == a.Y {
		return types.Point{X: a.X, Y: y}
	}
	t := (y - a.Y) / (b.Y - a.Y)
	return types.Point{X: a.X + t*(b.X-a.X), Y: y}
}
