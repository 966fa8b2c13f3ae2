package material

import (
	"fmt"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

// Kind identifies one of the fixed set of surface behaviors
type Kind int

const (
	// KindNormal visualizes the surface normal as a color
	KindNormal Kind = iota
	// KindLambertian is a perfectly diffuse surface
	KindLambertian
	// KindMetal is a specular reflector with optional fuzz
	KindMetal
	// KindDielectric is a clear refracting surface such as glass
	KindDielectric
)

var kindNames = map[Kind]string{
	KindNormal:     "normal",
	KindLambertian: "lambertian",
	KindMetal:      "metal",
	KindDielectric: "dielectric",
}

// String returns the lower-case material name
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a material name back to its Kind
func ParseKind(name string) (Kind, error) {
	for kind, kindName := range kindNames {
		if kindName == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown material type %q", name)
}

// Material is a closed variant over the supported surface behaviors.
// Only the fields of the active Kind are meaningful. It is a small value type
// and is copied into every hit record.
type Material struct {
	Kind            Kind
	Albedo          core.Vec3 // Lambertian, Metal
	Fuzz            float64   // Metal: 0.0 = perfect mirror
	RefractiveIndex float64   // Dielectric
}

// NewNormal creates the debug material that renders surface normals
func NewNormal() Material {
	return Material{Kind: KindNormal}
}

// NewLambertian creates a diffuse material
func NewLambertian(albedo core.Vec3) Material {
	return Material{Kind: KindLambertian, Albedo: albedo}
}

// NewMetal creates a metal material. Fuzz is clamped to [0, 1].
func NewMetal(albedo core.Vec3, fuzz float64) Material {
	return Material{Kind: KindMetal, Albedo: albedo, Fuzz: max(0.0, min(1.0, fuzz))}
}

// NewDielectric creates a dielectric material
func NewDielectric(refractiveIndex float64) Material {
	return Material{Kind: KindDielectric, RefractiveIndex: refractiveIndex}
}

// Interact computes how the surface responds to an incoming ray.
// hitNormal has the hit point as origin and the outward unit normal as direction.
func (m Material) Interact(rayIn core.Ray, hitNormal core.Ray, sampler core.Sampler) LightInteraction {
	switch m.Kind {
	case KindNormal:
		return NewLightInteraction(hitNormal.Direction.AddScalar(1.0))
	case KindLambertian:
		return interactLambertian(hitNormal, m.Albedo, sampler)
	case KindMetal:
		return interactMetal(rayIn, hitNormal, m.Albedo, m.Fuzz, sampler)
	case KindDielectric:
		return interactDielectric(rayIn, hitNormal, m.RefractiveIndex, sampler)
	default:
		panic(fmt.Sprintf("material: unhandled kind %v", m.Kind))
	}
}
