package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeExiv2()
	c.normalizeOrganize()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.AuditLog) == "" {
		c.Paths.AuditLog = defaultAuditLog
	}
	if c.Paths.AuditLog, err = ExpandPath(c.Paths.AuditLog); err != nil {
		return fmt.Errorf("paths.audit_log: %w", err)
	}
	if strings.TrimSpace(c.Paths.JournalDB) == "" {
		c.Paths.JournalDB = defaultJournalDB
	}
	if c.Paths.JournalDB, err = ExpandPath(c.Paths.JournalDB); err != nil {
		return fmt.Errorf("paths.journal_db: %w", err)
	}
	return nil
}

func (c *Config) normalizeExiv2() {
	c.Exiv2.Binary = strings.TrimSpace(c.Exiv2.Binary)
	if c.Exiv2.Binary == "" {
		if value, ok := os.LookupEnv(exiv2EnvVar); ok {
			c.Exiv2.Binary = strings.TrimSpace(value)
		}
	}
	if c.Exiv2.Binary == "" {
		c.Exiv2.Binary = defaultExiv2Binary
	}
}

func (c *Config) normalizeOrganize() {
	exts := make([]string, 0, len(c.Organize.Extensions))
	seen := make(map[string]struct{}, len(c.Organize.Extensions))
	for _, ext := range c.Organize.Extensions {
		normalized := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		exts = append(exts, normalized)
	}
	if len(exts) == 0 {
		exts = defaultExtensions()
	}
	c.Organize.Extensions = exts

	ignore := c.Organize.Ignore[:0]
	for _, pattern := range c.Organize.Ignore {
		if pattern = strings.TrimSpace(pattern); pattern != "" {
			ignore = append(ignore, pattern)
		}
	}
	c.Organize.Ignore = ignore

	c.Organize.FallbackDir = strings.TrimSpace(c.Organize.FallbackDir)
	if c.Organize.FallbackDir == "" {
		c.Organize.FallbackDir = defaultFallbackDir
	}
	c.Organize.ReportFormat = strings.ToLower(strings.TrimSpace(c.Organize.ReportFormat))
	if c.Organize.ReportFormat == "" {
		c.Organize.ReportFormat = defaultReportFormat
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
