package scene

import (
	"math/rand"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/geometry"
	"github.com/df07/go-progressive-pathtracer/pkg/material"
	"github.com/df07/go-progressive-pathtracer/pkg/renderer"
)

const randomGridSize = 22

// NewRandomScene creates a field of small random spheres around three large
// ones. The layout is fixed for a given seed.
func NewRandomScene(seed int64) *Scene {
	random := rand.New(rand.NewSource(seed))

	samplingConfig := SamplingConfig{
		Width:           480,
		Height:          270,
		SamplesPerPixel: 32,
		MaxDepth:        50,
	}

	cameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewVec3(7.5, 1.5, -2.0),
		LookAt:        core.NewVec3(0.0, 1.0, 0.0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          60.0,
		AspectRatio:   float64(samplingConfig.Width) / float64(samplingConfig.Height),
		Aperture:      0.05,
		FocusDistance: 4.0,
	}

	world := geometry.NewWorld()

	half := randomGridSize / 2
	for i := 0; i < randomGridSize*randomGridSize; i++ {
		a := float64(i/randomGridSize - half)
		b := float64(i%randomGridSize - half)
		center := core.NewVec3(a+0.9*random.Float64(), 0.2, b+0.9*random.Float64())

		// Keep clear of the metal sphere
		if center.Subtract(core.NewVec3(4.0, 0.2, 0.0)).Length() <= 0.9 {
			continue
		}
		world.Add(geometry.NewSphere(center, 0.2, randomMaterial(random)))
	}

	world.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return &Scene{
		Name:           "random",
		World:          world,
		CameraConfig:   cameraConfig,
		SamplingConfig: samplingConfig,
	}
}

// randomMaterial picks matte 80% of the time, metal 15% and glass 5%
func randomMaterial(random *rand.Rand) material.Material {
	choice := random.Float64()
	switch {
	case choice < 0.8:
		albedo := core.NewVec3(
			random.Float64()*random.Float64(),
			random.Float64()*random.Float64(),
			random.Float64()*random.Float64(),
		)
		return material.NewLambertian(albedo)
	case choice < 0.95:
		albedo := core.NewVec3(
			0.5*(1+random.Float64()),
			0.5*(1+random.Float64()),
			0.5*(1+random.Float64()),
		)
		return material.NewMetal(albedo, 0.5*random.Float64())
	default:
		return material.NewDielectric(1.5)
	}
}
