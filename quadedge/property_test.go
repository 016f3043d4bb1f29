package quadedge

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/terramesh/tin/types"
)

// TestDualSymIdentitiesHoldUnderRandomSplices builds an arena by a randomly
// generated sequence of MakeEdge/Splice operations and checks that the
// Dual/Sym algebra (Dual^2 == identity, Sym^2 == identity, ForwardFromDual/
// ReverseFromDual are mutual inverses) holds for every allocated edge
// regardless of how the rings were spliced together.
func TestDualSymIdentitiesHoldUnderRandomSplices(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := NewPool()
		n := rapid.IntRange(1, 12).Draw(rt, "numEdges")

		edges := make([]Edge, n)
		for i := range edges {
			edges[i] = p.MakeEdge()
			p.SetOrg(edges[i], types.VertexID(2*i))
			p.SetDest(edges[i], types.VertexID(2*i+1))
		}

		spliceCount := rapid.IntRange(0, n*2).Draw(rt, "numSplices")
		for i := 0; i < spliceCount; i++ {
			a := edges[rapid.IntRange(0, n-1).Draw(rt, "a")]
			b := edges[rapid.IntRange(0, n-1).Draw(rt, "b")]
			p.Splice(a, b)
		}

		for _, e := range edges {
			d1 := p.Dual(e)
			d2 := p.Dual(d1)
			if d2 != e {
				rt.Fatalf("Dual^2(%v) = %v, want identity", e, d2)
			}
			if p.Sym(p.Sym(e)) != e {
				rt.Fatalf("Sym^2(%v) = %v, want identity", e, p.Sym(p.Sym(e)))
			}
			if p.InvDual(p.Dual(e)) != e {
				rt.Fatalf("InvDual(Dual(%v)) = %v, want identity", e, p.InvDual(p.Dual(e)))
			}
			if p.ReverseFromDual(p.ForwardFromDual(e)) != e {
				rt.Fatalf("ReverseFromDual(ForwardFromDual(%v)) = %v, want identity", e, p.ReverseFromDual(p.ForwardFromDual(e)))
			}
		}
	})
}

// TestPinwheelVisitsEachOnextRingMemberExactlyOnce checks that for a
// randomly spliced-together set of edges, Pinwheel(e) enumerates e's entire
// Onext ring exactly once each, for every edge in the ring.
func TestPinwheelVisitsEachOnextRingMemberExactlyOnce(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := NewPool()
		n := rapid.IntRange(1, 8).Draw(rt, "numEdges")

		edges := make([]Edge, n)
		for i := range edges {
			edges[i] = p.MakeEdge()
			p.SetOrg(edges[i], types.VertexID(0))
			p.SetDest(edges[i], types.VertexID(i+1))
		}
		for i := 1; i < n; i++ {
			p.Splice(edges[0], edges[i])
		}

		ring := p.Pinwheel(edges[0])
		if len(ring) != n {
			rt.Fatalf("Pinwheel visited %d edges, want %d", len(ring), n)
		}
		seen := make(map[Edge]bool, n)
		for _, e := range ring {
			if seen[e] {
				rt.Fatalf("Pinwheel visited %v more than once", e)
			}
			seen[e] = true
			if p.Org(e) != types.VertexID(0) {
				rt.Fatalf("Pinwheel(%v) returned edge %v with wrong origin", edges[0], e)
			}
		}
	})
}
