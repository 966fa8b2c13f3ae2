package renderer

import (
	"runtime"
	"sync"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

// ScanlineTask represents a scanline rendering task for the worker pool
type ScanlineTask struct {
	Item     WorkItem
	Fraction float64 // Completion added once the scanline is done
	Seed     int64   // Seed for the item's own sampler
}

// ScanlineResult contains the result from rendering a scanline
type ScanlineResult struct {
	Item   WorkItem
	Pixels int
}

// WorkerPool manages parallel scanline rendering
type WorkerPool struct {
	taskQueue   chan ScanlineTask
	resultQueue chan ScanlineResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual scanline rendering tasks
type Worker struct {
	ID          int
	renderer    *ScanlineRenderer
	image       *ImageAccumulator
	taskQueue   chan ScanlineTask
	resultQueue chan ScanlineResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// queueSize bounds how many tasks may be queued without blocking the submitter.
func NewWorkerPool(renderer *ScanlineRenderer, image *ImageAccumulator, numWorkers, queueSize int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan ScanlineTask, queueSize),
		resultQueue: make(chan ScanlineResult, queueSize),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			renderer:    renderer,
			image:       image,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a scanline task to the worker pool
func (wp *WorkerPool) SubmitTask(task ScanlineTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed scanline result
func (wp *WorkerPool) GetResult() (ScanlineResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		sampler := core.NewSeededSampler(task.Seed)
		pixels := w.renderer.RenderScanline(task.Item, w.image, sampler)

		w.image.UpdateCompletion(func(prev float64) float64 {
			return min(1.0, prev+task.Fraction)
		})

		w.resultQueue <- ScanlineResult{
			Item:   task.Item,
			Pixels: pixels,
		}
	}
}
