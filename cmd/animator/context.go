package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/ivlev/animator/internal/config"
	"github.com/ivlev/animator/internal/logging"
	"github.com/ivlev/animator/internal/script"
	"github.com/ivlev/animator/internal/state"
)

type globalFlags struct {
	config   string
	script   string
	scene    string
	logLevel string
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) configPath() string {
	if p := strings.TrimSpace(c.flags.config); p != "" {
		return p
	}
	return config.DefaultPath
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		c.config, _, c.configErr = config.Load(c.configPath())
	})
	return c.config, c.configErr
}

func (c *commandContext) log() *slog.Logger {
	c.loggerOnce.Do(func() {
		opts := logging.Options{Level: c.flags.logLevel}
		if cfg, err := c.ensureConfig(); err == nil {
			if opts.Level == "" {
				opts.Level = cfg.Logging.Level
			}
			opts.Format = cfg.Logging.Format
		}
		logger, err := logging.New(opts)
		if err != nil {
			logger = logging.Discard()
		}
		c.logger = logger
	})
	return c.logger
}

// scriptPath resolves the script flag. A directory selects its newest script.
func (c *commandContext) scriptPath() (string, error) {
	path := strings.TrimSpace(c.flags.script)
	if path == "" {
		cfg, err := c.ensureConfig()
		if err != nil {
			return "", err
		}
		path = cfg.Script.Path
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		latest, err := script.FindLatest(path)
		if err != nil {
			return "", err
		}
		return latest, nil
	}
	return path, nil
}

func (c *commandContext) scenePath() (string, error) {
	if path := strings.TrimSpace(c.flags.scene); path != "" {
		return path, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	return cfg.Scene.Path, nil
}

func (c *commandContext) loadScript() (*script.Script, string, error) {
	path, err := c.scriptPath()
	if err != nil {
		return nil, "", err
	}
	s, err := script.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, path, fmt.Errorf("script %s not found; create it with `animator init`", path)
	}
	if err != nil {
		return nil, path, fmt.Errorf("load script: %w", err)
	}
	return s, path, nil
}

func (c *commandContext) loadScene() (*state.Memory, string, error) {
	path, err := c.scenePath()
	if err != nil {
		return nil, "", err
	}
	sc, err := state.ReadScene(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, path, fmt.Errorf("scene %s not found; create it with `animator init`", path)
	}
	if err != nil {
		return nil, path, fmt.Errorf("load scene: %w", err)
	}
	return state.NewMemoryFromScene(sc), path, nil
}
