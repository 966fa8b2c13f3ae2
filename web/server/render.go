package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/export"
	"github.com/df07/go-progressive-pathtracer/pkg/renderer"
	"github.com/df07/go-progressive-pathtracer/pkg/scene"
)

// Request limits
const (
	DefaultScene      = "spheres"
	MinImageSize      = 16
	MaxImageSize      = 2000
	MaxSamples        = 10000
	MaxDepth          = 1000
	DefaultIntervalMs = 500
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene      string `json:"scene"`      // Scene ID (e.g., "spheres", "json:three-spheres")
	Width      int    `json:"width"`      // Image width, 0 = scene default
	Height     int    `json:"height"`     // Image height, 0 = scene default
	Samples    int    `json:"samples"`    // Samples per pixel, 0 = scene default
	MaxDepth   int    `json:"maxDepth"`   // Maximum bounce depth, 0 = scene default
	Seed       int64  `json:"seed"`       // Sampling seed
	IntervalMs int    `json:"intervalMs"` // Time between progress snapshots
}

// ProgressUpdate is a snapshot of the image sent via SSE
type ProgressUpdate struct {
	Completion float64 `json:"completion"`
	ImageData  string  `json:"imageData"` // Base64 encoded PNG
	ElapsedMs  int64   `json:"elapsedMs"`
}

// PassUpdate reports a finished sample pass
type PassUpdate struct {
	Sample         int     `json:"sample"` // 1-based
	TotalSamples   int     `json:"totalSamples"`
	Completion     float64 `json:"completion"`
	PassMs         int64   `json:"passMs"`
	ElapsedMs      int64   `json:"elapsedMs"`
	PrimitiveCount int     `json:"primitiveCount"`
}

// SSEEvent is one server-sent event
type SSEEvent struct {
	Type string `json:"type"` // "console", "progress", "passComplete", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// RenderingPipeline contains the configured scene and tracer
type RenderingPipeline struct {
	Scene  *scene.Scene
	Tracer *renderer.Tracer
}

// handleRender streams periodic image snapshots of a render via SSE.
// Only this goroutine writes to w. A client disconnect ends the stream but the
// render itself runs to completion in the background.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)
	ctx := r.Context()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.writeSSEEvent(w, SSEEvent{Type: "error", Data: fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	consoleChan, webLogger := s.setupConsoleLogging()

	pipeline, err := s.setupRenderingPipeline(req, webLogger)
	if err != nil {
		s.writeSSEEvent(w, SSEEvent{Type: "error", Data: err.Error()})
		return
	}

	startTime := time.Now()
	passChan := pipeline.Tracer.RenderProgressive()

	ticker := time.NewTicker(time.Duration(req.IntervalMs) * time.Millisecond)
	defer ticker.Stop()

	for {
		var event SSEEvent
		select {
		case <-ctx.Done():
			// Client disconnected
			return

		case msg := <-consoleChan:
			data, err := json.Marshal(msg)
			if err != nil {
				log.Printf("Error marshaling console message: %v", err)
				continue
			}
			event = SSEEvent{Type: "console", Data: string(data)}

		case <-ticker.C:
			event, err = s.progressEvent(pipeline.Tracer.Image(), startTime)
			if err != nil {
				log.Printf("Error encoding snapshot: %v", err)
				continue
			}

		case pass, ok := <-passChan:
			if !ok {
				s.finishRender(w, pipeline.Tracer.Image(), consoleChan, startTime)
				return
			}
			event = s.passEvent(pass, pipeline, startTime)
		}

		if err := s.writeSSEEvent(w, event); err != nil {
			// Client disconnected during write
			return
		}
	}
}

// finishRender flushes pending console output, the final image and the completion event
func (s *Server) finishRender(w http.ResponseWriter, accumulator *renderer.ImageAccumulator, consoleChan chan ConsoleMessage, startTime time.Time) {
drain:
	for {
		select {
		case msg := <-consoleChan:
			if data, err := json.Marshal(msg); err == nil {
				s.writeSSEEvent(w, SSEEvent{Type: "console", Data: string(data)})
			}
		default:
			break drain
		}
	}

	event, err := s.progressEvent(accumulator, startTime)
	if err != nil {
		s.writeSSEEvent(w, SSEEvent{Type: "error", Data: fmt.Sprintf("Failed to encode image: %v", err)})
		return
	}
	s.writeSSEEvent(w, event)
	s.writeSSEEvent(w, SSEEvent{Type: "complete", Data: "Rendering completed"})
}

// progressEvent snapshots the accumulator into a progress event
func (s *Server) progressEvent(accumulator *renderer.ImageAccumulator, startTime time.Time) (SSEEvent, error) {
	completion := accumulator.GetCompletion()
	imageData, err := s.imageToBase64PNG(export.SnapshotRGBA(accumulator))
	if err != nil {
		return SSEEvent{}, err
	}

	data, err := json.Marshal(ProgressUpdate{
		Completion: completion,
		ImageData:  imageData,
		ElapsedMs:  time.Since(startTime).Milliseconds(),
	})
	if err != nil {
		return SSEEvent{}, err
	}
	return SSEEvent{Type: "progress", Data: string(data)}, nil
}

// passEvent builds the event for a finished sample pass
func (s *Server) passEvent(pass renderer.PassResult, pipeline *RenderingPipeline, startTime time.Time) SSEEvent {
	update := PassUpdate{
		Sample:         pass.Sample + 1,
		TotalSamples:   pipeline.Tracer.Config().Samples,
		Completion:     pass.Completion,
		PassMs:         pass.Duration.Milliseconds(),
		ElapsedMs:      time.Since(startTime).Milliseconds(),
		PrimitiveCount: pipeline.Scene.GetPrimitiveCount(),
	}

	data, err := json.Marshal(update)
	if err != nil {
		log.Printf("Error marshaling pass update: %v", err)
		return SSEEvent{Type: "passComplete", Data: "{}"}
	}
	return SSEEvent{Type: "passComplete", Data: string(data)}
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// writeSSEEvent writes and flushes one event
func (s *Server) writeSSEEvent(w http.ResponseWriter, event SSEEvent) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
		return err
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)
	return consoleChan, webLogger
}

// setupRenderingPipeline creates and configures the scene and tracer
func (s *Server) setupRenderingPipeline(req *RenderRequest, logger core.Logger) (*RenderingPipeline, error) {
	sceneObj, err := scene.Create(req.Scene, req.Seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}

	sceneObj.ApplySamplingOverrides(scene.SamplingConfig{
		Width:           req.Width,
		Height:          req.Height,
		SamplesPerPixel: req.Samples,
		MaxDepth:        req.MaxDepth,
	})

	sc := sceneObj.SamplingConfig
	tracer := renderer.NewTracer(
		sceneObj.Camera(),
		sceneObj.World,
		sc.Width, sc.Height,
		sceneObj.TracerConfig(0, req.Seed), // Auto-detect workers
		logger,
	)

	return &RenderingPipeline{
		Scene:  sceneObj,
		Tracer: tracer,
	}, nil
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = DefaultScene
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, MinImageSize, MaxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 0, MinImageSize, MaxImageSize); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 0, 1, MaxSamples); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "depth", 0, 1, MaxDepth); err != nil {
		return nil, err
	}
	if req.IntervalMs, err = parseIntParam(query, "interval", DefaultIntervalMs, 50, 60000); err != nil {
		return nil, err
	}
	if req.Seed, err = parseInt64Param(query, "seed", 0); err != nil {
		return nil, err
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
