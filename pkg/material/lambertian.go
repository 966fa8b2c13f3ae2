package material

import "github.com/df07/go-progressive-pathtracer/pkg/core"

// interactLambertian scatters toward a random point in the unit sphere
// tangent to the surface at the hit point.
func interactLambertian(hitNormal core.Ray, albedo core.Vec3, sampler core.Sampler) LightInteraction {
	target := hitNormal.Origin.Add(hitNormal.Direction).Add(core.RandomInUnitSphere(sampler))
	scattered := ScatteredRay{
		Ray:         core.NewRay(hitNormal.Origin, target.Subtract(hitNormal.Origin)),
		Attenuation: albedo,
	}
	return NewLightInteraction(core.Vec3{}, scattered)
}
