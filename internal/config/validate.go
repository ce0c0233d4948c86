package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateScript(); err != nil {
		return err
	}
	if c.Export.Workers < 1 {
		return errors.New("export.workers must be at least 1")
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateStream()
}

func (c *Config) validateScript() error {
	if strings.TrimSpace(c.Script.Path) == "" {
		return errors.New("script.path must be set")
	}
	if !(c.Script.Duration > 0) {
		return fmt.Errorf("script.duration must be positive, got %g", c.Script.Duration)
	}
	if !(c.Script.FramesPerSecond > 0) {
		return fmt.Errorf("script.fps must be positive, got %g", c.Script.FramesPerSecond)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format %q must be console or json", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateStream() error {
	if c.Stream.QoS < 0 || c.Stream.QoS > 2 {
		return fmt.Errorf("stream.qos must be 0, 1 or 2, got %d", c.Stream.QoS)
	}
	if c.Stream.Broker == "" {
		return nil
	}
	u, err := url.Parse(c.Stream.Broker)
	if err != nil {
		return fmt.Errorf("stream.broker: %w", err)
	}
	switch u.Scheme {
	case "tcp", "ssl", "tls", "ws", "wss", "mqtt", "mqtts":
	default:
		return fmt.Errorf("stream.broker scheme %q is not supported", u.Scheme)
	}
	if strings.TrimSpace(c.Stream.Topic) == "" {
		return errors.New("stream.topic must be set when stream.broker is set")
	}
	return nil
}
