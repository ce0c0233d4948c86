package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Script holds defaults for scripts created by the CLI.
type Script struct {
	Path            string  `toml:"path"`
	Title           string  `toml:"title"`
	Duration        float64 `toml:"duration"`
	FramesPerSecond float64 `toml:"fps"`
}

// Scene locates the state file actions are evaluated against.
type Scene struct {
	Path string `toml:"path"`
}

// Export contains frame baking settings.
type Export struct {
	Path      string `toml:"path"`
	Workers   int    `toml:"workers"`
	ShowStats bool   `toml:"show_stats"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Stream contains MQTT playback settings.
type Stream struct {
	Broker   string `toml:"broker"`
	Topic    string `toml:"topic"`
	ClientID string `toml:"client_id"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	QoS      int    `toml:"qos"`
	Loop     bool   `toml:"loop"`
}

// Config encapsulates all configuration values for the animator.
type Config struct {
	Script  Script  `toml:"script"`
	Scene   Scene   `toml:"scene"`
	Export  Export  `toml:"export"`
	Logging Logging `toml:"logging"`
	Stream  Stream  `toml:"stream"`
}

// Load parses and validates a configuration file on top of the defaults. A
// missing file yields the defaults; the bool reports whether it existed.
func Load(path string) (*Config, bool, error) {
	cfg := Default()

	exists := false
	if path != "" {
		file, err := os.Open(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, false, fmt.Errorf("open config: %w", err)
		default:
			defer file.Close()
			exists = true
			decoder := toml.NewDecoder(file)
			decoder.DisallowUnknownFields()
			if err := decoder.Decode(&cfg); err != nil {
				return nil, false, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, exists, err
	}
	return &cfg, exists, nil
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
