package material

import (
	"math"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

var colorless = core.NewVec3(1.0, 1.0, 1.0)

// interactDielectric either reflects or refracts. Total internal reflection
// always reflects; otherwise Schlick's reflectance is compared against a fresh
// uniform draw.
func interactDielectric(rayIn core.Ray, hitNormal core.Ray, refractiveIndex float64, sampler core.Sampler) LightInteraction {
	direction := rayIn.Direction
	normal := hitNormal.Direction.Unit()
	reflected := reflect(direction, hitNormal.Direction)

	// The sphere normal always points outward, so a positive dot product means
	// the ray is leaving the material.
	var outwardNormal core.Vec3
	var etaRatio, cosine float64
	if direction.Unit().Dot(normal) > 0 {
		outwardNormal = normal.Negate()
		etaRatio = refractiveIndex
		cosine = refractiveIndex * direction.Dot(normal) / direction.Length()
	} else {
		outwardNormal = normal
		etaRatio = 1.0 / refractiveIndex
		cosine = -direction.Dot(normal) / direction.Length()
	}

	out := reflected
	if refracted, ok := refract(direction, outwardNormal, etaRatio); ok {
		if Reflectance(cosine, refractiveIndex) < sampler.Get1D() {
			out = refracted
		}
	}

	return NewLightInteraction(core.Vec3{}, ScatteredRay{
		Ray:         core.NewRay(hitNormal.Origin, out),
		Attenuation: colorless,
	})
}

// refract bends v through a surface with normal n using Snell's law.
// It reports false on total internal reflection.
func refract(v, n core.Vec3, etaRatio float64) (core.Vec3, bool) {
	uv := v.Unit()
	dt := uv.Dot(n)
	discriminant := 1.0 - etaRatio*etaRatio*(1.0-dt*dt)
	if discriminant <= 0 {
		return core.Vec3{}, false
	}
	return uv.Subtract(n.Multiply(dt)).Multiply(etaRatio).Subtract(n.Multiply(math.Sqrt(discriminant))), true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractiveIndex float64) float64 {
	r0 := (1 - refractiveIndex) / (1 + refractiveIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
