package renderer

import (
	"fmt"
	"time"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/geometry"
	"github.com/df07/go-progressive-pathtracer/pkg/integrator"
)

// TracerConfig contains configuration for a render
type TracerConfig struct {
	Samples    int   // Samples per pixel, one pass each
	MaxDepth   int   // Maximum bounces per path
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Base seed for the per-item samplers
}

// DefaultTracerConfig returns sensible default values
func DefaultTracerConfig() TracerConfig {
	return TracerConfig{
		Samples:    16,
		MaxDepth:   50,
		NumWorkers: 0, // Auto-detect CPU count
		Seed:       0,
	}
}

// Tracer renders a world into an ImageAccumulator one sample pass at a time.
// Every scanline of sample k is finished before any scanline of sample k+1
// starts, so the running average in each pixel always folds samples in order.
type Tracer struct {
	width, height int
	config        TracerConfig
	renderer      *ScanlineRenderer
	image         *ImageAccumulator
	logger        core.Logger
}

// NewTracer creates a tracer that shades with recursive path tracing
func NewTracer(camera RayGenerator, world geometry.Hittable, width, height int, config TracerConfig, logger core.Logger) *Tracer {
	integratorConfig := integrator.DefaultConfig()
	if config.MaxDepth > 0 {
		integratorConfig.MaxDepth = config.MaxDepth
	}
	return NewTracerWithIntegrator(camera, world, integrator.NewPathTracingIntegrator(integratorConfig), width, height, config, logger)
}

// NewTracerWithIntegrator creates a tracer with a caller-supplied integrator.
// It panics if the sample count is not positive.
func NewTracerWithIntegrator(camera RayGenerator, world geometry.Hittable, integratorInst integrator.Integrator, width, height int, config TracerConfig, logger core.Logger) *Tracer {
	if config.Samples <= 0 {
		panic(fmt.Sprintf("renderer: samples must be positive, got %d", config.Samples))
	}
	if logger == nil {
		logger = discardLogger{}
	}

	return &Tracer{
		width:    width,
		height:   height,
		config:   config,
		renderer: NewScanlineRenderer(camera, world, integratorInst),
		image:    NewImageAccumulator(width, height, core.Vec3{}),
		logger:   logger,
	}
}

// Image returns the accumulator the tracer writes into.
// It may be read at any time, including while Render is running.
func (tr *Tracer) Image() *ImageAccumulator {
	return tr.image
}

// Config returns the tracer configuration
func (tr *Tracer) Config() TracerConfig {
	return tr.config
}

// Render executes every work item and blocks until the image is complete
func (tr *Tracer) Render() RenderStats {
	return tr.render(nil)
}

// RenderProgressive renders in the background and reports each finished
// sample pass. The channel is closed once the render is complete.
func (tr *Tracer) RenderProgressive() <-chan PassResult {
	passChan := make(chan PassResult, tr.config.Samples)

	go func() {
		defer close(passChan)
		tr.render(func(result PassResult) {
			passChan <- result
		})
	}()

	return passChan
}

func (tr *Tracer) render(onPass func(PassResult)) RenderStats {
	items := NewWorkItems(tr.config.Samples, tr.height)
	fraction := 1.0 / float64(len(items))

	tr.image.UpdateCompletion(func(float64) float64 { return 0 })

	workerPool := NewWorkerPool(tr.renderer, tr.image, tr.config.NumWorkers, tr.height)
	workerPool.Start()
	defer workerPool.Stop()

	tr.logger.Printf("Rendering %dx%d: %d work items, %d samples, %d workers\n",
		tr.width, tr.height, len(items), tr.config.Samples, workerPool.GetNumWorkers())

	startTime := time.Now()
	pixelSamples := 0

	for sample := 0; sample < tr.config.Samples; sample++ {
		passStart := time.Now()

		pass := items[sample*tr.height : (sample+1)*tr.height]
		for _, item := range pass {
			workerPool.SubmitTask(ScanlineTask{
				Item:     item,
				Fraction: fraction,
				Seed:     tr.config.Seed + int64(item.ID) + 42, // +42 to avoid seed 0
			})
		}

		for range pass {
			result, ok := workerPool.GetResult()
			if !ok {
				panic("renderer: worker pool closed unexpectedly")
			}
			pixelSamples += result.Pixels
		}

		isLast := sample == tr.config.Samples-1
		if isLast {
			// Rounding in the per-scanline increments can leave completion just short of 1
			tr.image.UpdateCompletion(func(float64) float64 { return 1.0 })
		}

		passTime := time.Since(passStart)
		tr.logger.Printf("Sample %d/%d completed in %v\n", sample+1, tr.config.Samples, passTime)

		if onPass != nil {
			onPass(PassResult{
				Sample:     sample,
				Completion: tr.image.GetCompletion(),
				Duration:   passTime,
				IsLast:     isLast,
			})
		}
	}

	duration := time.Since(startTime)
	tr.logger.Printf("Render completed in %v\n", duration)

	return RenderStats{
		Width:        tr.width,
		Height:       tr.height,
		Samples:      tr.config.Samples,
		WorkItems:    len(items),
		PixelSamples: pixelSamples,
		Workers:      workerPool.GetNumWorkers(),
		Duration:     duration,
	}
}
