package geometry

import (
	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/material"
)

// Hittable is anything a ray can be tested against.
// Implementations must be safe for concurrent use by many workers.
type Hittable interface {
	// Hit returns the nearest intersection with tMin < t < tMax
	Hit(ray core.Ray, tMin, tMax float64) (Hit, bool)
}

// Hit records a successful ray intersection
type Hit struct {
	T float64
	// Normal starts at the intersection point and points along the outward unit normal
	Normal   core.Ray
	Material material.Material
}

// Point returns the intersection point
func (h Hit) Point() core.Vec3 {
	return h.Normal.Origin
}
