package tin

import (
	"fmt"

	"github.com/terramesh/tin/predicates"
	"github.com/terramesh/tin/quadedge"
	"github.com/terramesh/tin/types"
)

// Remove deletes a vertex from the triangulation, collapsing the star of
// triangles around it into one polygonal hole and re-triangulating that
// hole by fanning from one of its surviving corners, then legalizing the
// new diagonals. The removed vertex's index is returned to the free list
// and may be reused by a later Add.
//
// Fanning from a single corner assumes the hole is star-shaped from that
// corner, which holds for the common case of removing a low-degree vertex
// from a well-conditioned mesh; a pathological removal can leave a locally
// non-Delaunay (but still valid, non-self-intersecting) triangulation that
// a later Add in the area will not automatically repair. See DESIGN.md.
func (t *Triangulator) Remove(id types.VertexID) error {
	if !t.isBootstrapped() {
		return ErrNotBootstrapped
	}
	if _, ok := t.Vertex(id); !ok {
		return fmt.Errorf("tin: Remove(%v): %w", id, ErrVertexNotFound)
	}

	e0 := t.anyEdgeFrom(id)
	if !e0.IsValid() {
		return fmt.Errorf("tin: Remove(%v): %w", id, ErrVertexNotFound)
	}

	spokes := t.pool.Pinwheel(e0)
	if len(spokes) < 3 {
		return fmt.Errorf("tin: Remove(%v): %w", id, ErrIntegrityViolation)
	}

	hullIdx := -1
	for i, s := range spokes {
		if t.pool.Dest(s) == ghostVertex {
			hullIdx = i
			break
		}
	}

	// Surviving (non-spoke) edges used as the re-triangulation entry point;
	// these are computed before any spoke is deleted, but they are
	// themselves untouched by deleting v's spokes so the handles stay valid
	// afterward. The real hull entry is read off the surviving ghost spoke
	// once v's spokes are gone.
	interiorEntry := t.pool.ForwardFromDual(spokes[0])
	var hullRealEntry, hullGhostSpoke quadedge.Edge
	if hullIdx >= 0 {
		hullGhostSpoke = t.pool.ForwardFromDual(spokes[hullIdx]) // ghost -> first real neighbor
	}

	for _, s := range spokes {
		t.pool.DeleteEdge(s)
	}

	var created []quadedge.Edge
	if hullIdx >= 0 {
		hullRealEntry = t.pool.ForwardFromDual(hullGhostSpoke)
		apex := t.pool.Org(hullRealEntry)
		created = t.fanTriangulate(hullRealEntry, apex, ghostVertex)
		t.ghostRay = hullGhostSpoke
		t.hint = hullRealEntry
	} else {
		apex := t.pool.Org(interiorEntry)
		created = t.fanTriangulate(interiorEntry, apex, apex)
		t.hint = interiorEntry
	}

	t.legalizeAroundRemoval(created)
	t.freeVertex(id)
	return nil
}

// fanTriangulate triangulates a polygonal face by connecting apex (the
// origin of entry, an existing boundary edge of the face) to every other
// corner of the face up to, but not including, stopAt. For an ordinary
// closed polygon stopAt equals apex, so the walk fans every corner and
// stops when it returns to its start. For the hull-vertex-removal case
// stopAt is ghostVertex: the walk fans only the real corners and leaves
// the two ghost-adjacent boundary edges untouched.
func (t *Triangulator) fanTriangulate(entry quadedge.Edge, apex, stopAt types.VertexID) []quadedge.Edge {
	base := t.pool.Sym(entry)
	e := t.pool.ForwardFromDual(entry)
	var created []quadedge.Edge
	for t.pool.Dest(e) != stopAt && t.pool.Dest(t.pool.ForwardFromDual(e)) != apex {
		base = t.pool.Connect(e, t.pool.Sym(base))
		created = append(created, base)
		e = t.pool.Reverse(base)
	}
	return created
}

// legalizeAroundRemoval runs a Lawson-flip sweep seeded by the diagonals a
// removal's re-triangulation just introduced. Unlike legalize (seeded by a
// single newly-inserted vertex), there is no privileged vertex here, so
// each edge is tested symmetrically against both of its opposite corners.
func (t *Triangulator) legalizeAroundRemoval(seed []quadedge.Edge) {
	queue := append([]quadedge.Edge(nil), seed...)
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]

		if t.isGhostEdge(e) || t.pool.IsConstrained(e) {
			continue
		}
		leftApex := t.pool.Dest(t.pool.ForwardFromDual(e))
		rightApex := t.pool.Dest(t.pool.ForwardFromDual(t.pool.Sym(e)))
		if leftApex == ghostVertex || rightApex == ghostVertex {
			continue
		}

		a, b := t.pool.Org(e), t.pool.Dest(e)
		if predicates.InCircle(t.pointOf(a), t.pointOf(rightApex), t.pointOf(b), t.pointOf(leftApex)) > 0 {
			t.flip(e)
			queue = append(queue,
				t.pool.ForwardFromDual(e), t.pool.ReverseFromDual(e),
				t.pool.ForwardFromDual(t.pool.Sym(e)), t.pool.ReverseFromDual(t.pool.Sym(e)),
			)
		}
	}
}
