package material

import "github.com/df07/go-progressive-pathtracer/pkg/core"

// interactMetal mirrors the incoming direction and perturbs it by fuzz.
// Reflections that end up below the surface are absorbed.
func interactMetal(rayIn core.Ray, hitNormal core.Ray, albedo core.Vec3, fuzz float64, sampler core.Sampler) LightInteraction {
	reflected := reflect(rayIn.Direction, hitNormal.Direction)
	if fuzz > 0 {
		reflected = reflected.Add(core.RandomInUnitSphere(sampler).Multiply(fuzz))
	}

	if reflected.Dot(hitNormal.Direction) <= 0 {
		return NewLightInteraction(core.Vec3{})
	}

	return NewLightInteraction(core.Vec3{}, ScatteredRay{
		Ray:         core.NewRay(hitNormal.Origin, reflected),
		Attenuation: albedo,
	})
}

// reflect calculates the reflection of a vector v off a surface with normal n
func reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
