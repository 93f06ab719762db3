package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeObserver()
	c.normalizeLogging()
	return c.normalizeWatch()
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeObserver() {
	c.Observer.Algorithm = strings.ToLower(strings.TrimSpace(c.Observer.Algorithm))
	if c.Observer.Algorithm == "" {
		c.Observer.Algorithm = defaultAlgorithm
	}
	if c.Observer.ChunkSize == 0 {
		c.Observer.ChunkSize = defaultChunkSize
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
}

func (c *Config) normalizeWatch() error {
	if c.Watch.SettleSeconds == 0 {
		c.Watch.SettleSeconds = defaultWatchSettleSeconds
	}
	if strings.TrimSpace(c.Watch.Dir) == "" {
		return nil
	}
	expanded, err := expandPath(c.Watch.Dir)
	if err != nil {
		return fmt.Errorf("watch.dir: %w", err)
	}
	c.Watch.Dir = expanded
	return nil
}
