package exiv2

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeStub(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "exiv2")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestParseTags(t *testing.T) {
	stdout := "Iptc.Application2.Keywords                  String     14  DATE: 1984 Paris\n" +
		"Iptc.Application2.Keywords                  String      6  family\n" +
		"Iptc.Envelope.CharacterSet\n"

	got := ParseTags(stdout)
	want := []string{"DATE: 1984 Paris", "family", ""}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseTags() = %#v, want %#v", got, want)
	}
}

func TestParseTagsEmpty(t *testing.T) {
	if got := ParseTags(""); len(got) != 0 {
		t.Fatalf("expected no tags, got %#v", got)
	}
}

func TestRunCapturesOutput(t *testing.T) {
	stub := writeStub(t, `echo "Iptc.Application2.Keywords String 10 DATE: 2001"
echo "warning: something" >&2
`)
	out, err := Run(context.Background(), stub, "/tmp/a.jpg")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := ParseTags(out.Stdout); !reflect.DeepEqual(got, []string{"DATE: 2001"}) {
		t.Fatalf("unexpected tags %#v", got)
	}
	if out.Stderr != "warning: something\n" {
		t.Fatalf("stderr = %q", out.Stderr)
	}
}

func TestRunPassesIPTCArgs(t *testing.T) {
	stub := writeStub(t, `echo "$1 $2"`)
	out, err := Run(context.Background(), stub, "/photos/x.png")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Stdout != "-PI /photos/x.png\n" {
		t.Fatalf("stdout = %q", out.Stdout)
	}
}

func TestRunNonZeroExit(t *testing.T) {
	stub := writeStub(t, `echo "No IPTC data found in the file" >&2
exit 253
`)
	out, err := Run(context.Background(), stub, "/tmp/b.jpg")
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	if out.ExitCode != 253 {
		t.Fatalf("exit code = %d, want 253", out.ExitCode)
	}
	if out.Stderr == "" {
		t.Fatal("expected stderr to be captured")
	}
}

func TestRunMissingBinary(t *testing.T) {
	_, err := Run(context.Background(), filepath.Join(t.TempDir(), "nope"), "/tmp/a.jpg")
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
}

func TestRunEmptyPath(t *testing.T) {
	if _, err := Run(context.Background(), "exiv2", " "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
