package exiv2

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultBinary is the executable looked up on PATH when none is configured.
const DefaultBinary = "exiv2"

// valueColumn is the zero-based column where the printed value begins.
const valueColumn = 3

// Output captures one exiv2 invocation.
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// IPTCArgs returns the arguments that print all IPTC data for path.
func IPTCArgs(path string) []string {
	return []string{"-PI", path}
}

// Run executes exiv2 against path. A non-zero exit still returns the captured
// output alongside an error wrapping *exec.ExitError.
func Run(ctx context.Context, binary, path string) (Output, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = DefaultBinary
	}
	if strings.TrimSpace(path) == "" {
		return Output{}, errors.New("exiv2: empty path")
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, IPTCArgs(path)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	out := Output{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.ExitCode = exitErr.ExitCode()
		}
		return out, fmt.Errorf("exiv2 %s: %w", path, err)
	}
	return out, nil
}

// ParseTags returns one entry per output line: the text from the value column
// onward, with runs of whitespace collapsed to single spaces. Lines with fewer
// columns produce an empty entry so the count matches the printed lines.
func ParseTags(stdout string) []string {
	if stdout == "" {
		return nil
	}
	lines := strings.Split(strings.TrimRight(stdout, "\r\n"), "\n")
	tags := make([]string, 0, len(lines))
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) <= valueColumn {
			tags = append(tags, "")
			continue
		}
		tags = append(tags, strings.Join(fields[valueColumn:], " "))
	}
	return tags
}
