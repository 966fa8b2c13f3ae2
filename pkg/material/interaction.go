package material

import "github.com/df07/go-progressive-pathtracer/pkg/core"

// ScatteredRay is an outgoing ray and the per-channel factor applied to the light it gathers
type ScatteredRay struct {
	Ray         core.Ray
	Attenuation core.Vec3
}

// LightInteraction is a surface's response to one hit: light emitted at the
// surface plus zero or more scattered rays. An empty ScatteredRays slice means
// the ray was absorbed.
type LightInteraction struct {
	DirectlyEmitted core.Vec3
	ScatteredRays   []ScatteredRay
}

// NewLightInteraction creates an interaction with the given emission and scattered rays
func NewLightInteraction(emitted core.Vec3, scattered ...ScatteredRay) LightInteraction {
	return LightInteraction{DirectlyEmitted: emitted, ScatteredRays: scattered}
}

// Absorbed reports whether no ray leaves the surface
func (li LightInteraction) Absorbed() bool {
	return len(li.ScatteredRays) == 0
}
