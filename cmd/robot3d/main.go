package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"robot3d/internal/config"
	"robot3d/internal/host"
	"robot3d/internal/raster"
	"robot3d/internal/remote"
	"robot3d/internal/viewer"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	width := flag.Int("width", 0, "Window width (default: 650)")
	height := flag.Int("height", 0, "Window height (default: 500)")
	supersample := flag.Int("ss", 0, "Supersample factor (default: 1 in the window)")
	tick := flag.Int("tick", 0, "Timer interval in ms (default: 10)")
	ground := flag.String("ground", "", "Ground texture (TGA, PNG or JPEG)")
	listen := flag.String("listen", "", "Serve the websocket remote on this address, e.g. :8080")
	broker := flag.String("mqtt", "", "Publish pose telemetry to this MQTT broker, e.g. tcp://localhost:1883")
	level := flag.String("log", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	logger := newLogger(*level)
	slog.SetDefault(logger)

	cfg, err := config.LoadOptional(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	// Interactive rendering defaults to no supersampling.
	if *supersample == 0 && cfg.Supersample == 0 {
		cfg.Supersample = 1
	}
	cfg.Resolve(config.Flags{
		GroundTexture: *ground,
		Width:         *width,
		Height:        *height,
		Supersample:   *supersample,
		TickMillis:    *tick,
		ListenAddr:    *listen,
		MQTTBroker:    *broker,
	})

	renderer, groundTex, err := raster.FromConfig(cfg)
	if err != nil {
		logger.Warn("drawing untextured ground", "error", err)
	}

	opts := host.Options{PublishEvery: cfg.PublishEvery, Logger: logger}

	var srv *http.Server
	if cfg.ListenAddr != "" {
		hub := remote.NewHub(logger, 256)
		opts.Remote = hub
		opts.Telemetry = append(opts.Telemetry, hub)

		mux := http.NewServeMux()
		mux.Handle("/ws", hub)
		srv = &http.Server{Addr: cfg.ListenAddr, Handler: mux}
		go func() {
			logger.Info("remote listening", "addr", cfg.ListenAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("remote server stopped", "error", err)
			}
		}()
	}

	var pub *remote.Publisher
	if cfg.MQTTBroker != "" {
		pub, err = remote.Dial(cfg.MQTTBroker, cfg.MQTTTopic)
		if err != nil {
			logger.Error("mqtt disabled", "error", err)
		} else {
			logger.Info("publishing telemetry", "broker", cfg.MQTTBroker, "topic", pub.Topic())
			opts.Telemetry = append(opts.Telemetry, pub)
		}
	}

	loop := host.New(opts)
	runErr := viewer.Run(loop, renderer, viewer.Options{
		Title:         "robot3d",
		Scale:         cfg.WindowScale,
		Interval:      cfg.TickInterval(),
		GroundTexture: groundTex,
		Logger:        logger,
	})

	loop.Close()
	if pub != nil {
		pub.Close()
	}
	if srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("remote server shutdown failed", "error", err)
		}
		cancel()
	}

	if runErr != nil {
		logger.Error("window closed with error", "error", runErr)
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
