package predicates

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/terramesh/tin/types"
)

// TestOrient2DAntisymmetric checks that swapping any two vertices of the
// orientation test flips its sign, for arbitrary generated points.
func TestOrient2DAntisymmetric(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		coord := rapid.Float64Range(-1000, 1000)
		a := types.Point{X: coord.Draw(rt, "ax"), Y: coord.Draw(rt, "ay")}
		b := types.Point{X: coord.Draw(rt, "bx"), Y: coord.Draw(rt, "by")}
		c := types.Point{X: coord.Draw(rt, "cx"), Y: coord.Draw(rt, "cy")}

		if Orient2D(a, b, c) != -Orient2D(b, a, c) {
			rt.Fatalf("Orient2D(a,b,c)=%d but Orient2D(b,a,c)=%d", Orient2D(a, b, c), Orient2D(b, a, c))
		}
	})
}

// TestInCircleConsistentWithOrientation checks that a point strictly inside
// the circumcircle of a CCW triangle never contradicts InCircle run on a
// rotation of the same three vertices (rotating a CCW triangle's vertices
// leaves its circumcircle, and therefore the sign of InCircle, unchanged).
func TestInCircleConsistentWithOrientation(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		coord := rapid.Float64Range(-100, 100)
		a := types.Point{X: coord.Draw(rt, "ax"), Y: coord.Draw(rt, "ay")}
		b := types.Point{X: coord.Draw(rt, "bx"), Y: coord.Draw(rt, "by")}
		c := types.Point{X: coord.Draw(rt, "cx"), Y: coord.Draw(rt, "cy")}
		d := types.Point{X: coord.Draw(rt, "dx"), Y: coord.Draw(rt, "dy")}

		if Orient2D(a, b, c) <= 0 {
			return
		}

		want := InCircle(a, b, c, d)
		got := InCircle(b, c, a, d)
		if want != got {
			rt.Fatalf("InCircle not invariant under cyclic rotation: %d vs %d", want, got)
		}
	})
}
