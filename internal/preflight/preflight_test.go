package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"photorganiser/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func testConfig(t *testing.T, binary string) *config.Config {
	t.Helper()
	cfg := config.Default()
	dir := t.TempDir()
	cfg.Paths.AuditLog = filepath.Join(dir, "photOrganiser.log")
	cfg.Paths.JournalDB = filepath.Join(dir, "journal.db")
	cfg.Exiv2.Binary = binary
	return &cfg
}

func writeStub(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "exiv2")
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestRequireExiv2(t *testing.T) {
	if err := RequireExiv2(testConfig(t, writeStub(t))); err != nil {
		t.Fatalf("expected stub to satisfy requirement: %v", err)
	}

	err := RequireExiv2(testConfig(t, "definitely-not-exiv2"))
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	if !strings.Contains(err.Error(), "definitely-not-exiv2") {
		t.Fatalf("error should name the binary: %v", err)
	}
}

func TestRunAll(t *testing.T) {
	cfg := testConfig(t, writeStub(t))
	root := t.TempDir()

	results := RunAll(cfg, root)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d: %#v", len(results), results)
	}
	for _, r := range results {
		if !r.Passed {
			t.Fatalf("check %q failed: %s", r.Name, r.Detail)
		}
	}

	cfg.Journal.Enabled = false
	if got := len(RunAll(cfg, "")); got != 2 {
		t.Fatalf("expected 2 results without root and journal, got %d", got)
	}
}

func TestRunAllNilConfig(t *testing.T) {
	if results := RunAll(nil, "/tmp"); results != nil {
		t.Fatalf("expected nil results, got %#v", results)
	}
}
