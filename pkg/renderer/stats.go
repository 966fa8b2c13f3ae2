package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width, Height int           // Image size in pixels
	Samples       int           // Samples per pixel
	WorkItems     int           // Scanline work items executed
	PixelSamples  int           // Total number of camera rays traced
	Workers       int           // Number of parallel workers used
	Duration      time.Duration // Wall time of the whole render
}

// PassResult reports a finished sample pass: every scanline of one sample index
type PassResult struct {
	Sample     int           // Sample index, 0-based
	Completion float64       // Accumulator completion after the pass
	Duration   time.Duration // Wall time of this pass
	IsLast     bool
}
