package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-progressive-pathtracer/pkg/export"
	"github.com/df07/go-progressive-pathtracer/pkg/renderer"
	"github.com/df07/go-progressive-pathtracer/pkg/scene"
)

// Config holds all command line options
type Config struct {
	SceneType        string
	ConfigPath       string
	Width            int
	Height           int
	Samples          int
	MaxDepth         int
	NumWorkers       int
	Seed             int64
	Format           string
	Output           string
	ProgressInterval time.Duration
	List             bool
	Help             bool
}

func parseFlags(args []string) (Config, error) {
	var config Config

	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.StringVar(&config.SceneType, "scene", "spheres", "Scene: 'spheres', 'random', 'normals' or 'json:<name>' from scenes/")
	fs.StringVar(&config.ConfigPath, "config", "", "Path to a JSON scene file (overrides -scene)")
	fs.IntVar(&config.Width, "width", 0, "Image width (0 = scene default)")
	fs.IntVar(&config.Height, "height", 0, "Image height (0 = scene default)")
	fs.IntVar(&config.Samples, "samples", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&config.MaxDepth, "depth", 0, "Maximum bounce depth (0 = scene default)")
	fs.IntVar(&config.NumWorkers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	fs.Int64Var(&config.Seed, "seed", 0, "Random seed for sampling and the random scene")
	fs.StringVar(&config.Format, "format", "png", "Output format: 'png' or 'ppm'")
	fs.StringVar(&config.Output, "output", "", "Output file (default output/<scene>/render_<timestamp>.<format>)")
	fs.DurationVar(&config.ProgressInterval, "progress", time.Second, "Interval between progress reports (0 = off)")
	fs.BoolVar(&config.List, "list", false, "List available scenes and exit")
	fs.BoolVar(&config.Help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if config.Help {
		fmt.Println("Progressive Path Tracer")
		fmt.Println("Usage: pathtracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		fs.SetOutput(os.Stdout)
		fs.PrintDefaults()
		fmt.Println()
		fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.<format>")
	}

	return config, nil
}

func main() {
	config, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if config.Help {
		return
	}

	if config.List {
		listScenes()
		return
	}

	if err := run(config); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(config Config) error {
	format, err := export.ParseFormat(config.Format)
	if err != nil {
		return err
	}

	fmt.Println("Starting Progressive Path Tracer...")

	selectedScene, err := createScene(config.SceneType, config.ConfigPath, config.Seed)
	if err != nil {
		return err
	}
	selectedScene.ApplySamplingOverrides(scene.SamplingConfig{
		Width:           config.Width,
		Height:          config.Height,
		SamplesPerPixel: config.Samples,
		MaxDepth:        config.MaxDepth,
	})

	sc := selectedScene.SamplingConfig
	fmt.Printf("Scene %q: %d objects, %dx%d, %d samples, depth %d\n",
		selectedScene.Name, selectedScene.GetPrimitiveCount(), sc.Width, sc.Height, sc.SamplesPerPixel, sc.MaxDepth)

	tracer := renderer.NewTracer(
		selectedScene.Camera(),
		selectedScene.World,
		sc.Width, sc.Height,
		selectedScene.TracerConfig(config.NumWorkers, config.Seed),
		renderer.NewDefaultLogger(),
	)

	stats := renderWithProgress(tracer, config.ProgressInterval)
	fmt.Printf("Render completed in %v (%d rays, %d workers)\n", stats.Duration, stats.PixelSamples, stats.Workers)

	filename := config.Output
	if filename == "" {
		filename = outputFilename(createOutputDir(selectedScene.Name), format, time.Now())
	}

	if err := export.SaveFile(filename, tracer.Image(), format); err != nil {
		return fmt.Errorf("failed to save render: %w", err)
	}

	fmt.Printf("Render saved as %s\n", filename)
	return nil
}

// renderWithProgress runs the render while reporting completion at each interval
func renderWithProgress(tracer *renderer.Tracer, interval time.Duration) renderer.RenderStats {
	if interval <= 0 {
		return tracer.Render()
	}

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fmt.Printf("Progress: %.0f%%\n", tracer.Image().GetCompletion()*100)
			}
		}
	}()

	stats := tracer.Render()
	close(done)
	return stats
}

// createScene returns the scene named by sceneType, or the scene file at
// configPath when one is given
func createScene(sceneType, configPath string, seed int64) (*scene.Scene, error) {
	if configPath != "" {
		s, err := scene.NewJSONScene(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load scene file: %w", err)
		}
		return s, nil
	}

	if sceneType == "" {
		return nil, fmt.Errorf("scene name cannot be empty")
	}
	return scene.Create(sceneType, seed)
}

// createOutputDir returns output/<scene name> with unsafe characters replaced
func createOutputDir(sceneName string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '-'
	}, strings.ToLower(sceneName))

	if name == "" {
		name = "scene"
	}
	return filepath.Join("output", name)
}

func outputFilename(outputDir string, format export.Format, now time.Time) string {
	timestamp := now.Format("20060102_150405")
	return filepath.Join(outputDir, fmt.Sprintf("render_%s.%s", timestamp, format))
}

func listScenes() {
	response, err := scene.ListAllScenes()
	if err != nil {
		fmt.Printf("Error listing scenes: %v\n", err)
		return
	}

	for _, group := range response.Groups {
		fmt.Printf("%s:\n", group.Name)
		for _, s := range group.Scenes {
			fmt.Printf("  %-20s %s\n", s.ID, s.Description)
		}
	}
}
