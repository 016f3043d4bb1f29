package voronoi

import "errors"

// ErrDegenerateCell is returned by IntegrityCheck when a built cell has
// fewer than three vertices or a non-positive signed area.
var ErrDegenerateCell = errors.New("voronoi: degenerate cell")
