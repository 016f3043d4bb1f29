package naturalneighbor

import "errors"

// ErrNotBootstrapped is returned when Interpolate or BowyerWatsonEnvelope is
// called against a triangulator that has not yet established a triangle.
var ErrNotBootstrapped = errors.New("naturalneighbor: triangulation is not bootstrapped")
