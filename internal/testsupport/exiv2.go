package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Exiv2Case is the canned answer of a stub exiv2 for one file base name.
type Exiv2Case struct {
	Name   string
	Stdout string
	Stderr string
	Exit   int
}

// KeywordLine formats a keyword the way `exiv2 -PI` prints it.
func KeywordLine(value string) string {
	return fmt.Sprintf("Iptc.Application2.Keywords                   String     %d  %s\n", len(value), value)
}

// WriteExiv2Stub writes an executable shell script named exiv2 into dir.
// Files with no matching case produce no output and exit 0.
func WriteExiv2Stub(t testing.TB, dir string, cases ...Exiv2Case) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	b.WriteString("if [ \"$1\" != \"-PI\" ]; then echo \"unexpected args: $*\" >&2; exit 2; fi\n")
	b.WriteString("case \"$(basename \"$2\")\" in\n")
	for _, c := range cases {
		fmt.Fprintf(&b, "  %s)\n", shellQuote(c.Name))
		if c.Stdout != "" {
			fmt.Fprintf(&b, "    printf '%%s' %s\n", shellQuote(c.Stdout))
		}
		if c.Stderr != "" {
			fmt.Fprintf(&b, "    printf '%%s' %s >&2\n", shellQuote(c.Stderr))
		}
		fmt.Fprintf(&b, "    exit %d\n    ;;\n", c.Exit)
	}
	b.WriteString("esac\nexit 0\n")

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir stub dir: %v", err)
	}
	path := filepath.Join(dir, "exiv2")
	if err := os.WriteFile(path, []byte(b.String()), 0o755); err != nil {
		t.Fatalf("write exiv2 stub: %v", err)
	}
	return path
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
