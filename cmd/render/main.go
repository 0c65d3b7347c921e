package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"robot3d/internal/batch"
	"robot3d/internal/config"
	"robot3d/internal/raster"
	"robot3d/internal/scenario"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	scriptFile := flag.String("script", "", "Scenario script (\"-\" reads stdin)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	outputDir := flag.String("output", "", "Output directory (default: frames)")
	width := flag.Int("width", 0, "Frame width (default: 650)")
	height := flag.Int("height", 0, "Frame height (default: 500)")
	supersample := flag.Int("ss", 0, "Supersample factor (default: 2)")
	tick := flag.Int("tick", 0, "Timer interval in ms (default: 10)")
	ground := flag.String("ground", "", "Ground texture (TGA, PNG or JPEG)")
	every := flag.Int("every", 0, "While recording, capture every Nth redrawn tick")
	limit := flag.Int("test", 0, "Render only first N frames for testing")

	flag.Parse()

	if *scriptFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -script is required")
		os.Exit(2)
	}

	// Load config
	cfg, err := config.LoadOptional(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		OutputDir:     *outputDir,
		GroundTexture: *ground,
		Width:         *width,
		Height:        *height,
		Supersample:   *supersample,
		Workers:       *workers,
		TickMillis:    *tick,
	})
	if *every > 0 {
		cfg.CaptureEvery = *every
	}

	script, err := loadScript(*scriptFile, cfg.TickInterval())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading script: %v\n", err)
		os.Exit(1)
	}

	run := scenario.Run(script, scenario.Options{CaptureEvery: cfg.CaptureEvery})
	frames := run.Frames
	fmt.Printf("Scenario: %d steps, %d intervals, %d ticks, %d frames captured\n",
		len(script.Steps), run.Elapsed, run.Ticks, len(frames))

	// Limit for testing
	if *limit > 0 && *limit < len(frames) {
		frames = frames[:*limit]
	}

	if len(frames) == 0 {
		fmt.Println("No frames to render.")
		os.Exit(0)
	}

	renderer, groundTex, err := raster.FromConfig(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: ground texture: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("robot3d scenario → WebP")
	fmt.Printf("Frames: %d, Size: %dx%d (x%d), Workers: %d\n",
		len(frames), cfg.Width, cfg.Height, cfg.Supersample, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	// Run batch
	results := batch.Run(batch.Config{
		OutputDir:     cfg.OutputDir,
		Renderer:      renderer,
		GroundTexture: groundTex,
		Workers:       cfg.Workers,
		Progress: func(done, total int, rate float64) {
			fmt.Printf("  [%d/%d] %.1f frames/sec\n", done, total, rate)
		},
	}, frames)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	failed := batch.Failed(results)
	fmt.Printf("Rendered: %d/%d\n", len(results)-len(failed), len(frames))

	if len(failed) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(failed))
		shown := failed
		if len(shown) > 20 {
			shown = shown[:20]
		}
		for _, r := range shown {
			fmt.Printf("  %s: %s\n", r.Image, r.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, frames); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if len(failed) > 0 {
		os.Exit(1)
	}
}

func loadScript(path string, interval time.Duration) (*scenario.Script, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return scenario.Parse(r, interval)
}
