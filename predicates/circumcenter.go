package predicates

import "github.com/terramesh/tin/types"

// Circumcenter computes the center of the circle passing through a, b, and c.
// The triangle must be non-degenerate (not collinear); callers should guard
// with Orient2D before calling this for triangles derived from untrusted
// input.
func Circumcenter(a, b, c types.Point) types.Point {
	ax, ay := a.X, a.Y
	bx, by := b.X-ax, b.Y-ay
	cx, cy := c.X-ax, c.Y-ay

	d := 2 * (bx*cy - by*cx)
	bLen2 := bx*bx + by*by
	cLen2 := cx*cx + cy*cy

	ux := (cy*bLen2 - by*cLen2) / d
	uy := (bx*cLen2 - cx*bLen2) / d

	return types.Point{X: ax + ux, Y: ay + uy}
}

// CircumRadius2 returns the squared circumradius of triangle (a,b,c).
func CircumRadius2(a, b, c types.Point) float64 {
	center := Circumcenter(a, b, c)
	dx := a.X - center.X
	dy := a.Y - center.Y
	return dx*dx + dy*dy
}
