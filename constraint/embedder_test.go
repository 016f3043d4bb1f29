package constraint

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/terramesh/tin/tin"
	"github.com/terramesh/tin/types"
)

func buildSquareWithCenter(t *testing.T) (*tin.Triangulator, map[string]types.VertexID) {
	t.Helper()
	tr := tin.New(1.0)
	ids := map[string]types.VertexID{}
	pts := map[string]types.Point{
		"bl": {X: 0, Y: 0}, "br": {X: 10, Y: 0},
		"tr": {X: 10, Y: 10}, "tl": {X: 0, Y: 10},
		"c": {X: 5, Y: 5},
	}
	for _, name := range []string{"bl", "br", "tr", "tl", "c"} {
		id, err := tr.Add(pts[name])
		require.NoError(t, err)
		ids[name] = id
	}
	return tr, ids
}

func TestAddEdgeOnExistingEdgeJustMarksConstrained(t *testing.T) {
	tr, ids := buildSquareWithCenter(t)
	em := NewEmbedder(tr)

	require.NoError(t, em.AddEdge(types.NewSegment(ids["bl"], ids["br"])))
	e, ok := tr.NeighborEdge(ids["bl"], ids["br"])
	require.True(t, ok)
	require.True(t, tr.Pool().IsConstrained(e))
	require.NoError(t, tr.IntegrityCheck())
}

func TestAddEdgeDegenerateFails(t *testing.T) {
	tr, ids := buildSquareWithCenter(t)
	em := NewEmbedder(tr)
	err := em.AddEdge(types.NewSegment(ids["bl"], ids["bl"]))
	require.ErrorIs(t, err, ErrDegenerateEdge)
}

func TestAddEdgeUnknownVertexFails(t *testing.T) {
	tr, ids := buildSquareWithCenter(t)
	em := NewEmbedder(tr)
	err := em.AddEdge(types.NewSegment(ids["bl"], types.VertexID(12345)))
	require.ErrorIs(t, err, ErrUnknownVertex)
}

func TestAddEdgeSplitsAtCrossingAndStaysDelaunay(t *testing.T) {
	tr := tin.New(1.0)
	var ids []types.VertexID
	for _, p := range []types.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
		{X: 5, Y: 2}, {X: 5, Y: 8},
	} {
		id, err := tr.Add(p)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	em := NewEmbedder(tr)
	// bl -> tr diagonal likely crosses the triangulator's chosen internal
	// edges; forcing it must succeed (by flip, by split, or both) and leave
	// a valid mesh either way.
	require.NoError(t, em.AddEdge(types.NewSegment(ids[0], ids[2])))
	require.NoError(t, tr.IntegrityCheck())
	e, ok := tr.NeighborEdge(ids[0], ids[2])
	require.True(t, ok)
	require.True(t, tr.Pool().IsConstrained(e))
}

// TestAddEdgePrefersFlipOverSplit forces a diagonal across a simple
// triangulated square (two triangles sharing the other diagonal); there is
// no vertex whose removal the flip-first channel would otherwise need, so
// the vertex count must stay exactly the same as before forcing — proof
// that the crossing was resolved by flipping, not by inserting a synthetic
// vertex.
func TestAddEdgePrefersFlipOverSplit(t *testing.T) {
	tr := tin.New(1.0)
	var ids []types.VertexID
	for _, p := range []types.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
	} {
		id, err := tr.Add(p)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	before := len(tr.Vertices())

	em := NewEmbedder(tr)
	require.NoError(t, em.AddEdge(types.NewSegment(ids[0], ids[2])))

	require.Equal(t, before, len(tr.Vertices()), "forcing the other diagonal of a quad should flip, not split")
	e, ok := tr.NeighborEdge(ids[0], ids[2])
	require.True(t, ok)
	require.True(t, tr.Pool().IsConstrained(e))
	require.NoError(t, tr.IntegrityCheck())
}

func TestAddLoopRejectsTooFewVertices(t *testing.T) {
	tr, ids := buildSquareWithCenter(t)
	em := NewEmbedder(tr)
	err := em.AddLoop(types.NewPolygonLoop(ids["bl"], ids["br"]))
	require.ErrorIs(t, err, ErrDegenerateEdge)
}

// TestAddEdgeCrossingConstrainedEdgeSplitsInsteadOfFailing forces a second
// constraint segment across an already-embedded one. Per "later wins" this
// must succeed (the crossing constrained edge is split, not treated as a
// fatal conflict), and the conflict must be visible afterward through
// IntegrityCheck/Conflicts rather than as a returned error.
func TestAddEdgeCrossingConstrainedEdgeSplitsInsteadOfFailing(t *testing.T) {
	tr := tin.New(1.0)
	var ids []types.VertexID
	for _, p := range []types.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
		{X: 5, Y: 3}, {X: 5, Y: 7},
	} {
		id, err := tr.Add(p)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	bl, br, tr_, tl := ids[0], ids[1], ids[2], ids[3]

	em := NewEmbedder(tr)
	require.NoError(t, em.AddEdge(types.NewSegment(bl, tr_)))

	// The orthogonal diagonal crosses the one just constrained at (5,5), a
	// point coincident with no existing vertex: this must split the
	// constrained crossing rather than erroring out.
	err := em.AddEdge(types.NewSegment(br, tl))
	require.NoError(t, err, "a crossing into an existing constraint must split, not fail")

	require.Error(t, em.IntegrityCheck())
	require.ErrorIs(t, em.IntegrityCheck(), ErrConflict)
	require.Len(t, em.Conflicts(), 1)
	require.Equal(t, int32(1), em.Conflicts()[0].Winner)
	require.Equal(t, int32(0), em.Conflicts()[0].Loser)

	require.NoError(t, tr.IntegrityCheck())
}

func TestLabelRegionFloodFillsBoundedByConstraints(t *testing.T) {
	tr, ids := buildSquareWithCenter(t)
	em := NewEmbedder(tr)

	// A small constrained quad around the center splits off an inner region
	// from the outer one, loosely: constrain the two diagonals through the
	// center vertex.
	require.NoError(t, em.AddEdge(types.NewSegment(ids["bl"], ids["c"])))
	require.NoError(t, em.AddEdge(types.NewSegment(ids["br"], ids["c"])))
	require.NoError(t, em.AddEdge(types.NewSegment(ids["tr"], ids["c"])))
	require.NoError(t, em.AddEdge(types.NewSegment(ids["tl"], ids["c"])))

	e, ok := em.FaceContaining(types.Point{X: 2, Y: 1})
	require.True(t, ok)
	count := em.LabelRegion(e, 7)
	require.Greater(t, count, 0)
	require.Equal(t, int32(7), em.RegionOf(e))
}

func TestLabelRegionAtUnknownPointErrors(t *testing.T) {
	tr, _ := buildSquareWithCenter(t)
	em := NewEmbedder(tr)
	_, err := em.LabelRegionAt(types.Point{X: 1000, Y: 1000}, 1)
	require.ErrorIs(t, err, ErrNoFaceAtPoint)
}

// TestRegionBorderAndInteriorFlagsDistinguishBoundaryFromInside builds a
// constrained square with AddConstraints (so the boundary is labeled as a
// region) and checks that the boundary edges report IsRegionBorder and the
// unconstrained interior spoke edges report IsRegionInterior, never both.
func TestRegionBorderAndInteriorFlagsDistinguishBoundaryFromInside(t *testing.T) {
	tr, ids := buildSquareWithCenter(t)
	square := NewConstraint([]types.VertexID{ids["bl"], ids["br"], ids["tr"], ids["tl"]}, true, true, nil)

	ok, em, err := AddConstraints(tr, []Constraint{square}, true)
	require.NoError(t, err)
	require.True(t, ok)

	boundary, has := tr.NeighborEdge(ids["bl"], ids["br"])
	require.True(t, has)
	require.True(t, em.IsRegionBorder(boundary))
	require.False(t, em.IsRegionInterior(boundary))

	spoke, has := tr.NeighborEdge(ids["bl"], ids["c"])
	require.True(t, has)
	require.False(t, em.IsRegionBorder(spoke))
	require.True(t, em.IsRegionInterior(spoke))
}

// TestAddConstraintsAssignsSequentialIndices checks that each constraint in
// a single AddConstraints call is assigned its position in the list as its
// index, and that signed area/perimeter use the constraint's own traversal
// order rather than a canonicalized one.
func TestAddConstraintsAssignsSequentialIndices(t *testing.T) {
	tr, ids := buildSquareWithCenter(t)
	outer := NewConstraint([]types.VertexID{ids["bl"], ids["br"], ids["tr"], ids["tl"]}, true, true, nil)
	spoke := NewConstraint([]types.VertexID{ids["bl"], ids["c"]}, false, false, nil)

	list := []Constraint{outer, spoke}
	_, _, err := AddConstraints(tr, list, false)
	require.NoError(t, err)

	require.Equal(t, int32(0), list[0].Index())
	require.Equal(t, int32(1), list[1].Index())
	require.InDelta(t, 100, outer.SignedArea(tr.PointOf), 1e-9)
	require.InDelta(t, 40, outer.Perimeter(tr.PointOf), 1e-9)
}
