package metadata

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photorganiser/internal/discovery"
	"photorganiser/internal/exiv2"
	"photorganiser/internal/failure"
	"photorganiser/internal/modes"
	"photorganiser/internal/progress"
)

type countingReporter struct {
	stage string
	total int
	steps []int
	done  bool
}

func (c *countingReporter) Start(stage string, total int) { c.stage, c.total = stage, total }
func (c *countingReporter) Step(done int)                 { c.steps = append(c.steps, done) }
func (c *countingReporter) Done()                         { c.done = true }

func records(paths ...string) []discovery.FileRecord {
	out := make([]discovery.FileRecord, len(paths))
	for i, p := range paths {
		out[i] = discovery.FileRecord{Path: p, Class: discovery.Supported}
	}
	return out
}

func TestResolveKnownCombination(t *testing.T) {
	reader, err := Resolve(modes.MetaIPTC, modes.TagKeywords, Options{Binary: "exiv2"})
	require.NoError(t, err)
	assert.IsType(t, &IPTCKeywordsReader{}, reader)
}

func TestResolveUnsupportedCombination(t *testing.T) {
	_, err := Resolve(modes.MetaType("XMP"), modes.TagKeywords, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedCombination))
}

func TestReadOneResultPerFile(t *testing.T) {
	reader := NewIPTCKeywordsReader(Options{})
	reader.run = func(_ context.Context, _ string, path string) (exiv2.Output, error) {
		switch filepath.Base(path) {
		case "a.jpg":
			return exiv2.Output{Stdout: "Iptc.Application2.Keywords String 16 Location DATE: 1984 Paris\n"}, nil
		case "bad.jpg":
			return exiv2.Output{Stderr: "bad.jpg: No IPTC data found in the file\n", ExitCode: 253}, errors.New("exit status 253")
		default:
			return exiv2.Output{}, nil
		}
	}

	rep := &countingReporter{}
	results := reader.Read(context.Background(), records("/p/a.jpg", "/p/bad.jpg", "/p/c.png"), rep)

	require.Len(t, results, 3)
	assert.Equal(t, "/p/a.jpg", results[0].Path)
	assert.Equal(t, []string{"Location DATE: 1984 Paris"}, results[0].Tags)
	assert.NoError(t, results[0].Err)

	assert.Equal(t, "/p/bad.jpg", results[1].Path)
	assert.Equal(t, failure.KindToolInvocation, failure.KindOf(results[1].Err))
	assert.Contains(t, results[1].Stderr, "No IPTC data")
	var toolErr *failure.ToolInvocationError
	require.True(t, errors.As(results[1].Err, &toolErr))
	assert.Equal(t, 253, toolErr.ExitCode)

	assert.Empty(t, results[2].Tags)
	assert.NoError(t, results[2].Err)

	assert.Equal(t, StageName, rep.stage)
	assert.Equal(t, 3, rep.total)
	assert.Equal(t, []int{1, 2, 3}, rep.steps)
	assert.True(t, rep.done)
}

func TestReadStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	reader := NewIPTCKeywordsReader(Options{})
	calls := 0
	reader.run = func(context.Context, string, string) (exiv2.Output, error) {
		calls++
		cancel()
		return exiv2.Output{}, nil
	}

	results := reader.Read(ctx, records("/a.jpg", "/b.jpg"), progress.Nop{})
	assert.Len(t, results, 1)
	assert.Equal(t, 1, calls)
}

func TestReadWithStubBinary(t *testing.T) {
	stub := filepath.Join(t.TempDir(), "exiv2")
	script := "#!/bin/sh\necho \"Iptc.Application2.Keywords String 10 DATE: 2003\"\n"
	require.NoError(t, os.WriteFile(stub, []byte(script), 0o755))

	reader, err := Resolve(modes.MetaIPTC, modes.TagKeywords, Options{Binary: stub})
	require.NoError(t, err)
	results := reader.Read(context.Background(), records("/x/a.jpg"), nil)
	require.Len(t, results, 1)
	assert.Equal(t, []string{"DATE: 2003"}, results[0].Tags)
	assert.NoError(t, results[0].Err)
}
