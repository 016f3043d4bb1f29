package predicates

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/terramesh/tin/types"
)

func TestOrient2DSigns(t *testing.T) {
	a := types.Point{X: 0, Y: 0}
	b := types.Point{X: 1, Y: 0}
	c := types.Point{X: 0, Y: 1}

	require.Equal(t, 1, Orient2D(a, b, c), "CCW triangle should be positive")
	require.Equal(t, -1, Orient2D(a, c, b), "reversing two vertices flips orientation")
	require.Equal(t, 0, Orient2D(a, b, types.Point{X: 2, Y: 0}), "collinear points should be zero")
}

func TestOrient2DNearDegenerateFallsBackToExact(t *testing.T) {
	a := types.Point{X: 0, Y: 0}
	b := types.Point{X: 1e8, Y: 0}
	c := types.Point{X: 2e8, Y: 1e-9}

	got := Orient2D(a, b, c)
	require.Equal(t, 1, got)
}

func TestInCircle(t *testing.T) {
	a := types.Point{X: 0, Y: 0}
	b := types.Point{X: 1, Y: 0}
	c := types.Point{X: 0, Y: 1}

	inside := types.Point{X: 0.25, Y: 0.25}
	outside := types.Point{X: 10, Y: 10}
	onCircle := types.Point{X: 1, Y: 1}

	require.Equal(t, 1, InCircle(a, b, c, inside))
	require.Equal(t, -1, InCircle(a, b, c, outside))
	require.Equal(t, 0, InCircle(a, b, c, onCircle))
}
