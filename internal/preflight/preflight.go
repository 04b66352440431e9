package preflight

import (
	"fmt"
	"path/filepath"

	"photorganiser/internal/config"
	"photorganiser/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every check that applies to cfg. root may be empty.
func RunAll(cfg *config.Config, root string) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	for _, status := range CheckSystemDeps(cfg) {
		results = append(results, fromStatus(status))
	}

	if root != "" {
		results = append(results, CheckDirectoryAccess("Photo directory", root))
	}
	results = append(results, CheckDirectoryAccess("Audit log directory", filepath.Dir(cfg.Paths.AuditLog)))
	if cfg.Journal.Enabled {
		results = append(results, CheckDirectoryAccess("Journal directory", filepath.Dir(cfg.Paths.JournalDB)))
	}
	return results
}

// RequireExiv2 fails when the configured exiv2 binary cannot be resolved.
func RequireExiv2(cfg *config.Config) error {
	missing := deps.MissingRequired(CheckSystemDeps(cfg))
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%s: %s", missing[0].Name, missing[0].Detail)
}

func fromStatus(status deps.Status) Result {
	result := Result{Name: status.Name, Passed: status.Available}
	switch {
	case status.Available:
		result.Detail = status.Resolved
	case status.Optional:
		result.Passed = true
		result.Detail = status.Detail + " (optional)"
	default:
		result.Detail = status.Detail
	}
	return result
}
