package naturalneighbor

import (
	"math"
	"testing"

	"pgregory.net/rapid"

	"github.com/terramesh/tin/tin"
	"github.com/terramesh/tin/types"
)

// TestSibsonWeightsSumToOne checks that, for a randomly generated point
// cloud and a randomly chosen query point, every successful Interpolate
// call produces natural-neighbor weights that sum to 1 (the defining
// property of a partition of unity), and that BarycentricCoordinateDeviation
// stays near zero — the weighted neighbor positions must reproduce q.
func TestSibsonWeightsSumToOne(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(4, 20).Draw(rt, "numPoints")
		coord := rapid.Float64Range(0, 100)

		tr := tin.New(1.0)
		seen := map[types.Point]bool{}
		for i := 0; i < n; i++ {
			p := types.Point{X: coord.Draw(rt, "x"), Y: coord.Draw(rt, "y")}
			if seen[p] {
				continue
			}
			seen[p] = true
			if _, err := tr.Add(p); err != nil {
				continue
			}
		}
		if !tr.IsBootstrapped() {
			return
		}

		q := types.Point{X: coord.Draw(rt, "qx"), Y: coord.Draw(rt, "qy")}
		in := New(tr)
		val, err := in.Interpolate(q, func(types.VertexID) float64 { return 1 })
		if err != nil {
			rt.Fatalf("Interpolate returned error on a bootstrapped triangulation: %v", err)
		}
		if math.IsNaN(val) {
			// q fell outside the hull or the envelope degenerated; nothing to
			// check for this draw.
			return
		}

		var sum float64
		for _, w := range in.lastWeights {
			sum += w
		}
		if math.Abs(sum-1) > 1e-6 {
			rt.Fatalf("natural-neighbor weights summed to %v, want 1", sum)
		}
		if in.BarycentricCoordinateDeviation() > 1e-6 {
			rt.Fatalf("barycentric coordinate deviation too large: %v", in.BarycentricCoordinateDeviation())
		}
	})
}
