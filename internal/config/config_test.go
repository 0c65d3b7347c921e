package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func TestResolveDefaults(t *testing.T) {
	var c Config
	c.Resolve(Flags{})

	if c.Width != DefaultWidth || c.Height != DefaultHeight {
		t.Errorf("size = %dx%d", c.Width, c.Height)
	}
	if c.Supersample != DefaultSupersample {
		t.Errorf("supersample = %d", c.Supersample)
	}
	if c.Workers != runtime.NumCPU() {
		t.Errorf("workers = %d", c.Workers)
	}
	if c.TickInterval() != 10*time.Millisecond {
		t.Errorf("tick = %v", c.TickInterval())
	}
	if c.OutputDir != "frames" || c.MQTTTopic != DefaultMQTTTopic {
		t.Errorf("output %q topic %q", c.OutputDir, c.MQTTTopic)
	}
}

func TestFlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "robot3d.json")
	data := `{"base_dir": "/srv/robot", "output_dir": "out", "width": 320, "tick_ms": 20, "mqtt_topic": "lab/robot"}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	c.Resolve(Flags{Width: 800, Workers: 3})

	if c.Width != 800 {
		t.Errorf("width = %d, want flag value 800", c.Width)
	}
	if c.Height != DefaultHeight {
		t.Errorf("height = %d", c.Height)
	}
	if c.TickMillis != 20 || c.Workers != 3 {
		t.Errorf("tick %d workers %d", c.TickMillis, c.Workers)
	}
	if want := filepath.Join("/srv/robot", "out"); c.OutputDir != want {
		t.Errorf("output = %q, want %q", c.OutputDir, want)
	}
	if c.MQTTTopic != "lab/robot" {
		t.Errorf("topic = %q", c.MQTTTopic)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected an error for a missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(path, []byte("{"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("expected a parse error")
	}

	c, err := LoadOptional("")
	if err != nil || c != (Config{}) {
		t.Errorf("LoadOptional(\"\") = %+v, %v", c, err)
	}
}
