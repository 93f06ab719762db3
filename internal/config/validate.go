package config

import (
	"errors"
	"fmt"

	"md5tap/internal/digest"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateObserver(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	return c.validateWatch()
}

func (c *Config) validateObserver() error {
	if _, err := digest.ParseAlgorithm(c.Observer.Algorithm); err != nil {
		return fmt.Errorf("observer.algorithm: %w", err)
	}
	if c.Observer.ChunkSize < 0 {
		return errors.New("observer.chunk_size must be positive")
	}
	if c.Observer.ChunkSize > 0 && c.Observer.ChunkSize < 512 {
		return errors.New("observer.chunk_size below 512 bytes produces excessive observations")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateHistory() error {
	if c.History.RetentionDays < 0 {
		return errors.New("history.retention_days must not be negative")
	}
	return nil
}

func (c *Config) validateWatch() error {
	if c.Watch.SettleSeconds < 0 {
		return errors.New("watch.settle_seconds must not be negative")
	}
	return nil
}
