package scene

import (
	"github.com/df07/go-progressive-pathtracer/pkg/geometry"
	"github.com/df07/go-progressive-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	World          *geometry.World // Objects in the scene
	CameraConfig   renderer.CameraConfig
	SamplingConfig SamplingConfig
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// MergeSamplingConfig returns base with every non-zero field of override applied
func MergeSamplingConfig(base, override SamplingConfig) SamplingConfig {
	result := base
	if override.Width > 0 {
		result.Width = override.Width
	}
	if override.Height > 0 {
		result.Height = override.Height
	}
	if override.SamplesPerPixel > 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth > 0 {
		result.MaxDepth = override.MaxDepth
	}
	return result
}

// ApplySamplingOverrides merges overrides into the scene's sampling config and
// keeps the camera aspect ratio in step with the image size
func (s *Scene) ApplySamplingOverrides(overrides SamplingConfig) {
	s.SamplingConfig = MergeSamplingConfig(s.SamplingConfig, overrides)
	s.CameraConfig.AspectRatio = float64(s.SamplingConfig.Width) / float64(s.SamplingConfig.Height)
}

// Camera builds the scene camera
func (s *Scene) Camera() *renderer.Camera {
	return renderer.NewCamera(s.CameraConfig)
}

// TracerConfig returns the tracer configuration for this scene
func (s *Scene) TracerConfig(numWorkers int, seed int64) renderer.TracerConfig {
	return renderer.TracerConfig{
		Samples:    s.SamplingConfig.SamplesPerPixel,
		MaxDepth:   s.SamplingConfig.MaxDepth,
		NumWorkers: numWorkers,
		Seed:       seed,
	}
}

// GetPrimitiveCount returns the number of objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}
