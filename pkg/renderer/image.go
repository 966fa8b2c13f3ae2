package renderer

import (
	"fmt"
	"sync"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

// pixelCell is one independently locked pixel
type pixelCell struct {
	mu    sync.RWMutex
	color core.Vec3
}

// ImageAccumulator is a fixed grid of running per-pixel averages plus a
// completion fraction. Every cell has its own lock so writers on different
// pixels never contend, and readers never wait on a whole-image lock.
// Pixels hold unclamped linear radiance.
type ImageAccumulator struct {
	width, height int
	cells         []pixelCell // Row-major, index y*width+x

	completionMu sync.RWMutex
	completion   float64
}

// NewImageAccumulator creates a width×height grid with every pixel set to initial
func NewImageAccumulator(width, height int, initial core.Vec3) *ImageAccumulator {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("renderer: invalid image size %dx%d", width, height))
	}

	cells := make([]pixelCell, width*height)
	for i := range cells {
		cells[i].color = initial
	}

	return &ImageAccumulator{
		width:  width,
		height: height,
		cells:  cells,
	}
}

// Width returns the image width in pixels
func (a *ImageAccumulator) Width() int {
	return a.width
}

// Height returns the image height in pixels
func (a *ImageAccumulator) Height() int {
	return a.height
}

// cell returns the cell at (x, y), panicking when out of range
func (a *ImageAccumulator) cell(x, y int) *pixelCell {
	if x < 0 || x >= a.width || y < 0 || y >= a.height {
		panic(fmt.Sprintf("renderer: pixel (%d,%d) out of range for %dx%d image", x, y, a.width, a.height))
	}
	return &a.cells[y*a.width+x]
}

// GetPixel returns the current value of pixel (x, y)
func (a *ImageAccumulator) GetPixel(x, y int) core.Vec3 {
	c := a.cell(x, y)
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.color
}

// UpdatePixel atomically replaces pixel (x, y) with update(old) and returns the new value
func (a *ImageAccumulator) UpdatePixel(x, y int, update func(core.Vec3) core.Vec3) core.Vec3 {
	c := a.cell(x, y)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.color = update(c.color)
	return c.color
}

// GetCompletion returns the completion fraction in [0, 1]
func (a *ImageAccumulator) GetCompletion() float64 {
	a.completionMu.RLock()
	defer a.completionMu.RUnlock()
	return a.completion
}

// UpdateCompletion atomically replaces the completion fraction with update(old) and returns the new value
func (a *ImageAccumulator) UpdateCompletion(update func(float64) float64) float64 {
	a.completionMu.Lock()
	defer a.completionMu.Unlock()
	a.completion = update(a.completion)
	return a.completion
}

// Snapshot copies every pixel in row-major order. Each cell is read under its
// own lock; cells are not mutually consistent while a render is running.
func (a *ImageAccumulator) Snapshot() []core.Vec3 {
	pixels := make([]core.Vec3, len(a.cells))
	for i := range a.cells {
		c := &a.cells[i]
		c.mu.RLock()
		pixels[i] = c.color
		c.mu.RUnlock()
	}
	return pixels
}
