package integrator

import (
	"math"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/geometry"
)

// Config controls recursion and self-intersection avoidance
type Config struct {
	Epsilon  float64 // tMin for every ray, keeps secondary rays off their own surface
	MaxT     float64 // tMax for every ray
	MaxDepth int     // Maximum number of bounces before a path is cut off
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Epsilon:  1e-4,
		MaxT:     math.MaxFloat64,
		MaxDepth: 50,
	}
}

// PathTracingIntegrator implements recursive unidirectional path tracing
type PathTracingIntegrator struct {
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config Config) *PathTracingIntegrator {
	return &PathTracingIntegrator{config: config}
}

// Config returns the integrator configuration
func (pt *PathTracingIntegrator) Config() Config {
	return pt.config
}

// RayColor traces a camera ray with the configured bounds and depth
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler) core.Vec3 {
	return pt.Color(ray, world, pt.config.Epsilon, pt.config.MaxT, pt.config.MaxDepth, sampler)
}

// Color returns the radiance along ray. A hit at depth 0 contributes nothing
// and makes no further calls; a miss returns the sky.
func (pt *PathTracingIntegrator) Color(ray core.Ray, world geometry.Hittable, tMin, tMax float64, depth int, sampler core.Sampler) core.Vec3 {
	hit, isHit := world.Hit(ray, tMin, tMax)
	if !isHit {
		return SkyColor(ray)
	}

	if depth <= 0 {
		return core.Vec3{}
	}

	interaction := hit.Material.Interact(ray, hit.Normal, sampler)

	color := interaction.DirectlyEmitted
	for _, scattered := range interaction.ScatteredRays {
		incoming := pt.Color(scattered.Ray, world, pt.config.Epsilon, pt.config.MaxT, depth-1, sampler)
		color = color.Add(scattered.Attenuation.MultiplyVec(incoming))
	}
	return color
}
