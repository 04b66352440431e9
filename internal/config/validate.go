package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateOrganize(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateOrganize() error {
	dir := c.Organize.FallbackDir
	if dir == "." || dir == ".." || strings.ContainsAny(dir, `/\`) || filepath.Base(dir) != dir {
		return fmt.Errorf("organize.fallback_dir must be a single folder name, got %q", dir)
	}
	switch c.Organize.ReportFormat {
	case "json", "yaml":
	default:
		return fmt.Errorf("organize.report_format: unsupported value %q (use json or yaml)", c.Organize.ReportFormat)
	}
	if len(c.Organize.Extensions) == 0 {
		return errors.New("organize.extensions must not be empty")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
