package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Config holds all configurable paths, render settings and host settings.
type Config struct {
	// Paths
	BaseDir       string `json:"base_dir"`
	OutputDir     string `json:"output_dir"`
	TextureDir    string `json:"texture_dir"`
	GroundTexture string `json:"ground_texture"`

	// Render settings
	Width       int `json:"width"`
	Height      int `json:"height"`
	Supersample int `json:"supersample"`
	Workers     int `json:"workers"`

	// Animation
	TickMillis   int `json:"tick_ms"`
	CaptureEvery int `json:"capture_every"`

	// Window
	WindowScale float64 `json:"window_scale"`

	// Remote control and telemetry
	ListenAddr   string `json:"listen_addr"`
	MQTTBroker   string `json:"mqtt_broker"`
	MQTTTopic    string `json:"mqtt_topic"`
	PublishEvery int    `json:"publish_every"`
}

// Defaults for render and host settings.
const (
	DefaultWidth        = 650
	DefaultHeight       = 500
	DefaultSupersample  = 2
	DefaultTickMillis   = 10
	DefaultCaptureEvery = 1
	DefaultWindowScale  = 1
	DefaultMQTTTopic    = "robot3d/pose"
	DefaultPublishEvery = 10
)

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// LoadOptional is Load for an optional file: an empty path yields a zero
// Config.
func LoadOptional(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	return Load(path)
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.GroundTexture != "" {
		c.GroundTexture = flags.GroundTexture
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.TickMillis > 0 {
		c.TickMillis = flags.TickMillis
	}
	if flags.ListenAddr != "" {
		c.ListenAddr = flags.ListenAddr
	}
	if flags.MQTTBroker != "" {
		c.MQTTBroker = flags.MQTTBroker
	}

	// Resolve relative paths against base dir
	if c.BaseDir != "" {
		c.OutputDir = under(c.BaseDir, c.OutputDir)
		c.TextureDir = under(c.BaseDir, c.TextureDir)
	}
	if c.OutputDir == "" {
		c.OutputDir = "frames"
	}
	if c.TextureDir == "" && c.GroundTexture != "" {
		c.TextureDir = filepath.Dir(c.GroundTexture)
	}

	// Defaults for render settings
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.Supersample <= 0 {
		c.Supersample = DefaultSupersample
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.TickMillis <= 0 {
		c.TickMillis = DefaultTickMillis
	}
	if c.CaptureEvery <= 0 {
		c.CaptureEvery = DefaultCaptureEvery
	}
	if c.WindowScale <= 0 {
		c.WindowScale = DefaultWindowScale
	}
	if c.MQTTTopic == "" {
		c.MQTTTopic = DefaultMQTTTopic
	}
	if c.PublishEvery <= 0 {
		c.PublishEvery = DefaultPublishEvery
	}
}

// TickInterval is the animation timer period.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.TickMillis) * time.Millisecond
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	OutputDir     string
	GroundTexture string
	Width         int
	Height        int
	Supersample   int
	Workers       int
	TickMillis    int
	ListenAddr    string
	MQTTBroker    string
}

func under(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
