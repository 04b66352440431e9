package testsupport

import (
	"path/filepath"
	"testing"

	"photorganiser/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose audit log and journal live in a unique
// temp directory per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.AuditLog = filepath.Join(base, "photOrganiser.log")
	cfgVal.Paths.JournalDB = filepath.Join(base, "state", "journal.db")
	cfgVal.Exiv2.Binary = filepath.Join(base, "bin", "missing-exiv2")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithExiv2 installs a stub exiv2 answering with the given cases and points
// the config at it.
func WithExiv2(cases ...Exiv2Case) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Exiv2.Binary = WriteExiv2Stub(b.t, filepath.Join(b.baseDir, "bin"), cases...)
	}
}

// WithJournal toggles the run journal.
func WithJournal(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Journal.Enabled = enabled
	}
}

// WithReportFormat overrides the audit log record format.
func WithReportFormat(format string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Organize.ReportFormat = format
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.AuditLog)
}
