package tin

import "github.com/terramesh/tin/types"

// Option configures a Triangulator during construction.
type Option func(*config)

type config struct {
	thresholds    types.Thresholds
	mergeVertices bool
	spatialCell   float64
	debugAddPoint func(types.VertexID, types.Point)
	debugFlip     func(a, b types.VertexID)
}

func newDefaultConfig(nominalPointSpacing float64) *config {
	return &config{
		thresholds:    types.ThresholdsForSpacing(nominalPointSpacing),
		mergeVertices: true,
		spatialCell:   spacingOrDefault(nominalPointSpacing),
	}
}

func spacingOrDefault(spacing float64) float64 {
	if spacing <= 0 {
		return 1
	}
	return spacing
}

// WithThresholds overrides the derived tolerance bundle.
func WithThresholds(t types.Thresholds) Option {
	return func(c *config) {
		c.thresholds = t
	}
}

// WithMergeVertices enables or disables automatic epsilon-merge of vertices
// inserted within the tolerance radius of an existing vertex.
func WithMergeVertices(enable bool) Option {
	return func(c *config) {
		c.mergeVertices = enable
	}
}

// WithSpatialCellSize overrides the hash grid cell size used for merge
// candidate lookup.
func WithSpatialCellSize(size float64) Option {
	return func(c *config) {
		if size > 0 {
			c.spatialCell = size
		}
	}
}

// WithDebugAddPoint installs a hook called after a vertex is committed to
// the triangulation (after any merge resolution).
func WithDebugAddPoint(hook func(types.VertexID, types.Point)) Option {
	return func(c *config) {
		c.debugAddPoint = hook
	}
}

// WithDebugFlip installs a hook called whenever the legalization pass flips
// an edge, identified by the endpoints of the new diagonal.
func WithDebugFlip(hook func(a, b types.VertexID)) Option {
	return func(c *config) {
		c.debugFlip = hook
	}
}
