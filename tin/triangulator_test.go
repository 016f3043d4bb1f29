package tin

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/terramesh/tin/types"
)

func TestAddBootstrapsOnThirdNonCollinearPoint(t *testing.T) {
	tr := New(1.0)
	_, err := tr.Add(types.Point{X: 0, Y: 0})
	require.NoError(t, err)
	require.False(t, tr.isBootstrapped())

	_, err = tr.Add(types.Point{X: 10, Y: 0})
	require.NoError(t, err)
	require.False(t, tr.isBootstrapped())

	_, err = tr.Add(types.Point{X: 0, Y: 10})
	require.NoError(t, err)
	require.True(t, tr.isBootstrapped())

	require.NoError(t, tr.IntegrityCheck())
	require.Len(t, tr.Perimeter(), 3)
}

func TestAddRejectsNaNAndInf(t *testing.T) {
	tr := New(1.0)
	_, err := tr.Add(types.Point{X: math.NaN(), Y: 0})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = tr.Add(types.Point{X: math.Inf(1), Y: 0})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddInteriorPointSubdividesAndStaysDelaunay(t *testing.T) {
	tr := New(1.0)
	pts := []types.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
		{X: 5, Y: 5},
	}
	for _, p := range pts {
		_, err := tr.Add(p)
		require.NoError(t, err)
	}
	require.NoError(t, tr.IntegrityCheck())
	require.Len(t, tr.Vertices(), 5)
	require.Len(t, tr.Perimeter(), 4)
}

func TestAddHullExtendingPointGrowsPerimeter(t *testing.T) {
	tr := New(1.0)
	pts := []types.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 10},
	}
	for _, p := range pts {
		_, err := tr.Add(p)
		require.NoError(t, err)
	}
	require.Len(t, tr.Perimeter(), 3)

	_, err := tr.Add(types.Point{X: 15, Y: 5})
	require.NoError(t, err)
	require.NoError(t, tr.IntegrityCheck())
	require.Len(t, tr.Perimeter(), 4)
}

func TestAddOnEdgeSplitsBothAdjacentTriangles(t *testing.T) {
	tr := New(1.0)
	pts := []types.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
	}
	for _, p := range pts {
		_, err := tr.Add(p)
		require.NoError(t, err)
	}
	require.NoError(t, tr.IntegrityCheck())

	// (5,5) lies exactly on the diagonal the triangulator chose; pick a
	// point guaranteed to land on a known internal or boundary edge
	// instead: the bottom edge's midpoint.
	_, err := tr.Add(types.Point{X: 5, Y: 0})
	require.NoError(t, err)
	require.NoError(t, tr.IntegrityCheck())
	require.Len(t, tr.Vertices(), 5)
}

func TestAddDuplicatePointMergesWithinTolerance(t *testing.T) {
	tr := New(1.0)
	pts := []types.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 10},
	}
	for _, p := range pts {
		_, err := tr.Add(p)
		require.NoError(t, err)
	}

	first, err := tr.Add(types.Point{X: 5, Y: 5})
	require.NoError(t, err)

	second, err := tr.Add(types.Point{X: 5 + 1e-9, Y: 5})
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Len(t, tr.Vertices(), 4)
}

func TestAddBulkCancellation(t *testing.T) {
	tr := New(1.0)
	pts := make([]types.Point, 5000)
	for i := range pts {
		pts[i] = types.Point{X: float64(i % 50), Y: float64(i / 50)}
	}
	cancel := make(chan struct{})
	close(cancel)

	ids, err := tr.AddBulk(pts, cancel)
	require.ErrorIs(t, err, ErrCanceled)
	require.Empty(t, ids)
}

func TestAddBulkWithoutCancellationInsertsEverything(t *testing.T) {
	tr := New(1.0)
	pts := make([]types.Point, 200)
	for i := range pts {
		pts[i] = types.Point{X: float64(i % 20), Y: float64(i / 20)}
	}
	ids, err := tr.AddBulk(pts, nil)
	require.NoError(t, err)
	require.Len(t, ids, len(pts))
	require.NoError(t, tr.IntegrityCheck())
}

func TestRemoveInteriorVertexRestoresDelaunay(t *testing.T) {
	tr := New(1.0)
	pts := []types.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
		{X: 5, Y: 5}, {X: 3, Y: 7}, {X: 7, Y: 2},
	}
	ids := make([]types.VertexID, len(pts))
	for i, p := range pts {
		id, err := tr.Add(p)
		require.NoError(t, err)
		ids[i] = id
	}
	require.NoError(t, tr.IntegrityCheck())

	require.NoError(t, tr.Remove(ids[4]))
	require.NoError(t, tr.IntegrityCheck())

	_, ok := tr.Vertex(ids[4])
	require.False(t, ok)
}

func TestRemoveHullVertexShrinksPerimeter(t *testing.T) {
	tr := New(1.0)
	pts := []types.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 5, Y: 5},
	}
	ids := make([]types.VertexID, len(pts))
	for i, p := range pts {
		id, err := tr.Add(p)
		require.NoError(t, err)
		ids[i] = id
	}
	require.Len(t, tr.Perimeter(), 4)

	require.NoError(t, tr.Remove(ids[1]))
	require.NoError(t, tr.IntegrityCheck())
	require.Len(t, tr.Perimeter(), 3)
}

func TestRemoveUnknownVertexReturnsNotFound(t *testing.T) {
	tr := New(1.0)
	for _, p := range []types.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 10}} {
		_, err := tr.Add(p)
		require.NoError(t, err)
	}
	err := tr.Remove(types.VertexID(999))
	require.ErrorIs(t, err, ErrVertexNotFound)
}

func TestNeighborEdgeReflectsAdjacency(t *testing.T) {
	tr := New(1.0)
	var ids []types.VertexID
	for _, p := range []types.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 10}} {
		id, err := tr.Add(p)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	_, ok := tr.NeighborEdge(ids[0], ids[1])
	require.True(t, ok)
	_, ok = tr.NeighborEdge(ids[0], types.VertexID(9999))
	require.False(t, ok)
}
