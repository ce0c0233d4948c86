package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, exists, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Error("Expected missing file to be reported")
	}
	if cfg.Script.FramesPerSecond != 60 || cfg.Script.Duration != 5 {
		t.Errorf("Unexpected defaults %+v", cfg.Script)
	}
	if cfg.Export.Workers < 1 {
		t.Errorf("Expected at least one worker, got %d", cfg.Export.Workers)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "animator.toml")
	data := `
[script]
fps = 24.0

[export]
workers = 2
show_stats = true

[stream]
broker = "tcp://localhost:1883"
qos = 1
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Error("Expected file to exist")
	}
	if cfg.Script.FramesPerSecond != 24 {
		t.Errorf("Expected fps 24, got %v", cfg.Script.FramesPerSecond)
	}
	if cfg.Script.Duration != 5 {
		t.Errorf("Expected default duration kept, got %v", cfg.Script.Duration)
	}
	if cfg.Export.Workers != 2 || !cfg.Export.ShowStats {
		t.Errorf("Unexpected export section %+v", cfg.Export)
	}
	if cfg.Stream.Topic != "animator/frames" || cfg.Stream.QoS != 1 {
		t.Errorf("Unexpected stream section %+v", cfg.Stream)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero fps", func(c *Config) { c.Script.FramesPerSecond = 0 }, "script.fps"},
		{"negative duration", func(c *Config) { c.Script.Duration = -1 }, "script.duration"},
		{"no workers", func(c *Config) { c.Export.Workers = 0 }, "export.workers"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"bad qos", func(c *Config) { c.Stream.QoS = 3 }, "stream.qos"},
		{"bad scheme", func(c *Config) { c.Stream.Broker = "http://x" }, "stream.broker"},
		{"no topic", func(c *Config) { c.Stream.Broker = "tcp://x:1883"; c.Stream.Topic = "" }, "stream.topic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "animator.toml")
	if err := os.WriteFile(path, []byte("[script]\nframes = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Load(path); err == nil {
		t.Error("Expected unknown key to fail")
	}
}

func TestSampleConfigLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "animator.toml")
	if err := CreateSample(path); err != nil {
		t.Fatal(err)
	}
	cfg, _, err := Load(path)
	if err != nil {
		t.Fatalf("Sample config should load: %v", err)
	}
	if cfg.Export.Workers != 4 {
		t.Errorf("Expected 4 workers from sample, got %d", cfg.Export.Workers)
	}
}
