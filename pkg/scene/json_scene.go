package scene

import (
	"fmt"

	"github.com/df07/go-progressive-pathtracer/pkg/loaders"
)

// NewJSONScene loads a scene description file
func NewJSONScene(filename string) (*Scene, error) {
	sf, err := loaders.LoadSceneFile(filename)
	if err != nil {
		return nil, err
	}
	return FromSceneFile(sf)
}

// FromSceneFile converts a parsed scene description into a Scene
func FromSceneFile(sf *loaders.SceneFile) (*Scene, error) {
	world, err := sf.World()
	if err != nil {
		return nil, fmt.Errorf("failed to build world: %w", err)
	}

	name := sf.Name
	if name == "" {
		name = "custom"
	}

	return &Scene{
		Name:         name,
		World:        world,
		CameraConfig: sf.CameraConfig(),
		SamplingConfig: SamplingConfig{
			Width:           sf.Width,
			Height:          sf.Height,
			SamplesPerPixel: sf.Samples,
			MaxDepth:        sf.MaxDepth,
		},
	}, nil
}
