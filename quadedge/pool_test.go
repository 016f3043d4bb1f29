package quadedge

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/terramesh/tin/types"
)

func TestMakeEdgeIsolatedRing(t *testing.T) {
	p := NewPool()
	e := p.MakeEdge()

	require.Equal(t, e, p.Forward(e), "an isolated edge's Onext ring is itself")
	require.Equal(t, e, p.Sym(p.Sym(e)), "Sym is its own inverse")
}

func TestDualIsInvolution(t *testing.T) {
	p := NewPool()
	e := p.MakeEdge()

	// Applying Dual twice must return to the original edge.
	d1 := p.Dual(e)
	d2 := p.Dual(d1)

	require.NotEqual(t, e, d1, "Dual(e) != e")
	require.Equal(t, e, d2, "Dual^2 == identity")
	require.Equal(t, e, p.InvDual(d1), "InvDual undoes Dual")
}

func TestSpliceMergesAndSplitsRings(t *testing.T) {
	p := NewPool()
	a := p.MakeEdge()
	b := p.MakeEdge()

	v0, v1, v2 := types.VertexID(0), types.VertexID(1), types.VertexID(2)
	p.SetOrg(a, v0)
	p.SetDest(a, v1)
	p.SetOrg(b, v0)
	p.SetDest(b, v2)

	// Splicing two edges that share an origin merges their Onext rings.
	p.Splice(a, b)
	ring := p.Pinwheel(a)
	require.Len(t, ring, 2)
	require.Contains(t, ring, a)
	require.Contains(t, ring, b)

	// Splicing again un-merges them (Splice is its own inverse).
	p.Splice(a, b)
	require.Equal(t, a, p.Forward(a))
	require.Equal(t, b, p.Forward(b))
}

func TestConnectBuildsTriangle(t *testing.T) {
	p := NewPool()
	v0, v1, v2 := types.VertexID(0), types.VertexID(1), types.VertexID(2)

	e1 := p.MakeEdge()
	p.SetOrg(e1, v0)
	p.SetDest(e1, v1)

	e2 := p.MakeEdge()
	p.SetOrg(e2, v1)
	p.SetDest(e2, v2)
	p.Splice(p.Sym(e1), e2)

	e3 := p.Connect(e2, e1)
	require.Equal(t, v2, p.Org(e3))
	require.Equal(t, v0, p.Dest(e3))

	// Walking the left face of e1 via ForwardFromDual should visit all
	// three edges of the triangle and return to e1.
	face := []Edge{e1}
	cur := p.ForwardFromDual(e1)
	for cur != e1 {
		face = append(face, cur)
		cur = p.ForwardFromDual(cur)
		if len(face) > 10 {
			t.Fatal("face walk did not close")
		}
	}
	require.Len(t, face, 3)
}

func TestFreeListReusesSlots(t *testing.T) {
	p := NewPool()
	e1 := p.MakeEdge()
	p.DeleteEdge(e1)
	e2 := p.MakeEdge()

	require.Equal(t, e1/4, e2/4, "deleting then allocating should reuse the freed block")
}
