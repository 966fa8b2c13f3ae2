package geometry

import (
	"math"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Hit tests if a ray intersects with the sphere.
// Only the nearer root is considered, and it must lie strictly inside (tMin, tMax).
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (Hit, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return Hit{}, false
	}

	t := (-b - math.Sqrt(discriminant)) / (2.0 * a)
	if t <= tMin || t >= tMax {
		return Hit{}, false
	}

	point := ray.At(t)
	return Hit{
		T:        t,
		Normal:   core.NewRay(point, point.Subtract(s.Center).Unit()),
		Material: s.Material,
	}, true
}
