package config

import "runtime"

const (
	DefaultPath = "animator.toml"

	defaultScriptPath  = "animation.json"
	defaultScenePath   = "scene.yaml"
	defaultExportPath  = "frames.yaml"
	defaultLogLevel    = "info"
	defaultStreamTopic = "animator/frames"
	defaultClientID    = "animator"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Script: Script{
			Path:            defaultScriptPath,
			Title:           "Slicer Animation",
			Duration:        5,
			FramesPerSecond: 60,
		},
		Scene: Scene{
			Path: defaultScenePath,
		},
		Export: Export{
			Path:    defaultExportPath,
			Workers: runtime.NumCPU(),
		},
		Logging: Logging{
			Level: defaultLogLevel,
		},
		Stream: Stream{
			Topic:    defaultStreamTopic,
			ClientID: defaultClientID,
		},
	}
}
