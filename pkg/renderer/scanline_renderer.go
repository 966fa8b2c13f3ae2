package renderer

import (
	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/geometry"
	"github.com/df07/go-progressive-pathtracer/pkg/integrator"
)

// Color is an RGB radiance value
type Color = core.Vec3

// ScanlineRenderer renders one work item into the shared accumulator
type ScanlineRenderer struct {
	camera     RayGenerator
	world      geometry.Hittable
	integrator integrator.Integrator
}

// NewScanlineRenderer creates a new scanline renderer
func NewScanlineRenderer(camera RayGenerator, world geometry.Hittable, integratorInst integrator.Integrator) *ScanlineRenderer {
	return &ScanlineRenderer{
		camera:     camera,
		world:      world,
		integrator: integratorInst,
	}
}

// RenderScanline traces one jittered ray per column of the item's scanline and
// folds each result into the pixel's running average. It returns the number of
// pixels updated.
func (sr *ScanlineRenderer) RenderScanline(item WorkItem, image *ImageAccumulator, sampler core.Sampler) int {
	width := image.Width()
	height := image.Height()
	fold := RunningAverage(item.Sample)
	j := item.Scanline

	for i := 0; i < width; i++ {
		s := (float64(i) + sampler.Get1D()) / float64(width)
		t := (float64(j) + sampler.Get1D()) / float64(height)

		ray := sr.camera.GetRay(s, t, sampler)
		color := sr.integrator.RayColor(ray, sr.world, sampler)

		image.UpdatePixel(i, j, func(old Color) Color {
			return fold(old, color)
		})
	}

	return width
}
