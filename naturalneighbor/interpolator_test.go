package naturalneighbor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/terramesh/tin/tin"
	"github.com/terramesh/tin/types"
)

func buildSquareWithCenter(t *testing.T) (*tin.Triangulator, map[types.VertexID]float64) {
	t.Helper()
	tr := tin.New(1.0)
	z := map[types.VertexID]float64{}
	for _, p := range []types.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 5, Y: 5},
	} {
		id, err := tr.Add(p)
		require.NoError(t, err)
		z[id] = 2*p.X + 3*p.Y + 1
	}
	return tr, z
}

func TestInterpolateAtInteriorPointWeightsSumToOne(t *testing.T) {
	tr, z := buildSquareWithCenter(t)
	in := New(tr)

	_, err := in.Interpolate(types.Point{X: 2, Y: 2}, func(id types.VertexID) float64 { return z[id] })
	require.NoError(t, err)

	var sum float64
	for _, w := range in.lastWeights {
		sum += w
	}
	require.InDelta(t, 1.0, sum, 1e-9)
}

func TestInterpolateOutsideHullReturnsNaN(t *testing.T) {
	tr, z := buildSquareWithCenter(t)
	in := New(tr)

	v, err := in.Interpolate(types.Point{X: 1000, Y: 1000}, func(id types.VertexID) float64 { return z[id] })
	require.NoError(t, err)
	require.True(t, math.IsNaN(v))
}

func TestInterpolateBeforeBootstrapReturnsError(t *testing.T) {
	tr := tin.New(1.0)
	in := New(tr)
	_, err := in.Interpolate(types.Point{X: 0, Y: 0}, func(types.VertexID) float64 { return 0 })
	require.ErrorIs(t, err, ErrNotBootstrapped)
}

func TestInterpolateReproducesLinearPlane(t *testing.T) {
	tr := tin.New(0.1)
	var ids []types.VertexID
	z := map[types.VertexID]float64{}
	plane := func(x, y float64) float64 { return 2*x + 3*y + 1 }

	pts := []types.Point{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
		{X: 0.2, Y: 0.3}, {X: 0.7, Y: 0.2}, {X: 0.8, Y: 0.8}, {X: 0.3, Y: 0.9},
		{X: 0.5, Y: 0.5}, {X: 0.4, Y: 0.6}, {X: 0.6, Y: 0.4},
	}
	for _, p := range pts {
		id, err := tr.Add(p)
		require.NoError(t, err)
		ids = append(ids, id)
		z[id] = plane(p.X, p.Y)
	}

	in := New(tr)
	valuator := func(id types.VertexID) float64 { return z[id] }

	for _, q := range []types.Point{{X: 0.45, Y: 0.45}, {X: 0.35, Y: 0.55}, {X: 0.55, Y: 0.35}} {
		got, err := in.Interpolate(q, valuator)
		require.NoError(t, err)
		require.InDelta(t, plane(q.X, q.Y), got, 1e-6)
		require.Less(t, in.BarycentricCoordinateDeviation(), 1e-6)
	}
}

func TestBowyerWatsonEnvelopeReturnsNaturalNeighbors(t *testing.T) {
	tr, _ := buildSquareWithCenter(t)
	in := New(tr)

	neighbors, err := in.BowyerWatsonEnvelope(types.Point{X: 2, Y: 1})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(neighbors), 3)
}

func TestResetForChangeToTinClearsDeviationCache(t *testing.T) {
	tr, z := buildSquareWithCenter(t)
	in := New(tr)

	_, err := in.Interpolate(types.Point{X: 3, Y: 3}, func(id types.VertexID) float64 { return z[id] })
	require.NoError(t, err)
	require.NotZero(t, len(in.lastNeighbors))

	in.ResetForChangeToTin()
	require.Equal(t, 0.0, in.BarycentricCoordinateDeviation())
}
