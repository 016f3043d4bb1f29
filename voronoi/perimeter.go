package voronoi

import (
	"math"
	"sort"

	"github.com/terramesh/tin/types"
)

// perimeterParam maps a point assumed to lie on the boundary of box to a
// cyclic parameter in [0,4) that increases counter-clockwise from the
// bottom-left corner: bottom edge 0..1, right edge 1..2, top edge 2..3,
// left edge 3..4. All four sides use the same (non-buggy, symmetric)
// formula, unlike a commonly seen variant that flips the sign on the left
// side.
func perimeterParam(p types.Point, box types.AABB) float64 {
	w := box.Max.X - box.Min.X
	h := box.Max.Y - box.Min.Y
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}

	const eps = 1e-9
	switch {
	case math.Abs(p.Y-box.Min.Y) <= eps:
		return (p.X - box.Min.X) / w
	case math.Abs(p.X-box.Max.X) <= eps:
		return 1 + (p.Y-box.Min.Y)/h
	case math.Abs(p.Y-box.Max.Y) <= eps:
		return 2 + (box.Max.X-p.X)/w
	default:
		return 3 + (box.Max.Y-p.Y)/h
	}
}

func boxCorners(box types.AABB) [4]types.Point {
	return [4]types.Point{
		{X: box.Min.X, Y: box.Min.Y},
		{X: box.Max.X, Y: box.Min.Y},
		{X: box.Max.X, Y: box.Max.Y},
		{X: box.Min.X, Y: box.Max.Y},
	}
}

// cornersBetween returns the box corners whose perimeterParam falls
// strictly between from and to, walking counter-clockwise (increasing
// parameter, wrapping past 4 back to 0), in that walking order. Used to
// stitch an open Voronoi cell's two box-boundary exit points into a closed
// polygon.
func cornersBetween(from, to float64, box types.AABB) []types.Point {
	corners := boxCorners(box)
	toAdj := to
	for toAdj <= from {
		toAdj += 4
	}

	type entry struct {
		param float64
		point types.Point
	}
	var entries []entry
	for k := 0; k < 4; k++ {
		p := float64(k)
		for p <= from {
			p += 4
		}
		if p < toAdj {
			entries = append(entries, entry{p, corners[k]})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].param < entries[j].param })

	out := make([]types.Point, len(entries))
	for i, e := range entries {
		out[i] = e.point
	}
	return out
}
