package constraint

import (
	"fmt"

	"github.com/terramesh/tin/tin"
)

// AddConstraints embeds every constraint in list into t, in the order
// supplied, assigning each the index it occupies in a fresh Embedder (see
// Constraint.Index). Constraints with DefinesConstrainedRegion set
// additionally get their bounded interior flood-filled and labeled with
// their own index (see LabelRegion).
//
// ok reports whether every constraint embedded without crossing into a
// constraint already present; restoreConformity, if true, additionally
// runs t.IntegrityCheck and folds its result into ok. Either way, embedding
// itself never fails because of a crossing — a crossing is always resolved
// by splitting — so a false ok is a diagnostic, not evidence that list was
// only partially embedded. Use the returned *Embedder's IntegrityCheck and
// Conflicts for the detail.
func AddConstraints(t *tin.Triangulator, list []Constraint, restoreConformity bool) (ok bool, em *Embedder, err error) {
	em = NewEmbedder(t)

	for i := range list {
		c := &list[i]
		if len(c.Vertices) < 2 || (c.Closed && len(c.Vertices) < 3) {
			return false, em, fmt.Errorf("constraint: AddConstraints[%d]: %w", i, ErrDegenerateEdge)
		}

		c.index = em.nextIndex
		em.nextIndex++

		for _, seg := range c.segments() {
			if err := em.addSegment(seg[0], seg[1], c.index); err != nil {
				return false, em, fmt.Errorf("constraint: AddConstraints[%d]: %w", i, err)
			}
		}

		if c.DefinesConstrainedRegion {
			if err := em.labelConstraintRegion(*c); err != nil {
				return false, em, fmt.Errorf("constraint: AddConstraints[%d]: %w", i, err)
			}
		}
	}

	ok = len(em.conflicts) == 0
	if restoreConformity {
		if err := t.IntegrityCheck(); err != nil {
			ok = false
		}
	}
	return ok, em, nil
}
