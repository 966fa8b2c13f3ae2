package scene

import (
	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/geometry"
	"github.com/df07/go-progressive-pathtracer/pkg/material"
	"github.com/df07/go-progressive-pathtracer/pkg/renderer"
)

// NewSpheresScene creates the material showcase: one sphere of every material
// sitting on a large green ground sphere
func NewSpheresScene() *Scene {
	samplingConfig := SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 64,
		MaxDepth:        50,
	}

	cameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewVec3(0, 0.4, 1.0),
		LookAt:        core.NewVec3(0, 0.2, -1.5),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          60.0,
		AspectRatio:   float64(samplingConfig.Width) / float64(samplingConfig.Height),
		Aperture:      0.0,
		FocusDistance: 0.0, // Auto-calculate focus distance
	}

	normals := material.NewNormal()
	redMatte := material.NewLambertian(core.NewVec3(0.8, 0.3, 0.3))
	greenMatte := material.NewLambertian(core.NewVec3(0.3, 0.8, 0.3))
	blueFuzzyMetal := material.NewMetal(core.NewVec3(0.3, 0.3, 0.5), 0.5)
	shinyMetal := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.005)
	glass := material.NewDielectric(1.5)

	world := geometry.NewWorld(
		geometry.NewSphere(core.NewVec3(-1.0, 0.0, -1.5), 0.5, blueFuzzyMetal),
		geometry.NewSphere(core.NewVec3(0.0, 2.0, -3.5), 1.5, shinyMetal),
		geometry.NewSphere(core.NewVec3(0.0, 0.0, -1.5), 0.5, normals),
		geometry.NewSphere(core.NewVec3(0.5, -0.25, -1.0), 0.25, redMatte),
		geometry.NewSphere(core.NewVec3(1.0, 0.0, -1.5), 0.5, glass),
		geometry.NewSphere(core.NewVec3(0.0, -200.5, -1.0), 200.0, greenMatte), // Ground
	)

	return &Scene{
		Name:           "spheres",
		World:          world,
		CameraConfig:   cameraConfig,
		SamplingConfig: samplingConfig,
	}
}

// NewNormalsScene creates a single normal-shaded sphere straight ahead of a
// camera at the origin
func NewNormalsScene() *Scene {
	samplingConfig := SamplingConfig{
		Width:           200,
		Height:          200,
		SamplesPerPixel: 4,
		MaxDepth:        10,
	}

	cameraConfig := renderer.CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90.0,
		AspectRatio: 1.0,
	}

	return &Scene{
		Name:           "normals",
		World:          geometry.NewWorld(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewNormal())),
		CameraConfig:   cameraConfig,
		SamplingConfig: samplingConfig,
	}
}
