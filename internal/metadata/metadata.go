// Package metadata reads tag text from image files.
//
// A Reader is chosen once per run from the (meta type, tag type) pair given
// on the command line. Each supported file yields exactly one TagReadResult;
// tool failures are recorded on the result and never stop the batch.
package metadata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"photorganiser/internal/discovery"
	"photorganiser/internal/exiv2"
	"photorganiser/internal/failure"
	"photorganiser/internal/logging"
	"photorganiser/internal/modes"
	"photorganiser/internal/progress"
)

// ErrUnsupportedCombination reports a (meta type, tag type) pair with no reader.
var ErrUnsupportedCombination = errors.New("unsupported metadata/tag combination")

// StageName labels progress output for the read stage.
const StageName = "Reading tags"

// TagReadResult holds the tag lines extracted from one file.
type TagReadResult struct {
	Path   string
	Tags   []string
	Stderr string
	Err    error
}

// Reader extracts tag text from a batch of files.
type Reader interface {
	Read(ctx context.Context, files []discovery.FileRecord, p progress.Reporter) []TagReadResult
}

// Options configures reader construction.
type Options struct {
	Binary string
	Logger *slog.Logger
}

type combination struct {
	meta modes.MetaType
	tag  modes.TagType
}

var readers = map[combination]func(Options) Reader{
	{modes.MetaIPTC, modes.TagKeywords}: func(opts Options) Reader { return NewIPTCKeywordsReader(opts) },
}

// Resolve returns the reader registered for meta and tag.
func Resolve(meta modes.MetaType, tag modes.TagType, opts Options) (Reader, error) {
	factory, ok := readers[combination{meta: meta, tag: tag}]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrUnsupportedCombination, meta, tag)
	}
	return factory(opts), nil
}

type runFunc func(ctx context.Context, binary, path string) (exiv2.Output, error)

// IPTCKeywordsReader reads IPTC data by running exiv2 once per file.
type IPTCKeywordsReader struct {
	binary string
	logger *slog.Logger
	run    runFunc
}

// NewIPTCKeywordsReader constructs a reader backed by the exiv2 binary.
func NewIPTCKeywordsReader(opts Options) *IPTCKeywordsReader {
	binary := opts.Binary
	if binary == "" {
		binary = exiv2.DefaultBinary
	}
	return &IPTCKeywordsReader{
		binary: binary,
		logger: logging.NewComponentLogger(opts.Logger, "metadata"),
		run:    exiv2.Run,
	}
}

// Read runs exiv2 for each file in order. It stops early only when ctx is
// cancelled; callers must check ctx.Err() before using a short result.
func (r *IPTCKeywordsReader) Read(ctx context.Context, files []discovery.FileRecord, p progress.Reporter) []TagReadResult {
	if p == nil {
		p = progress.Nop{}
	}
	results := make([]TagReadResult, 0, len(files))
	p.Start(StageName, len(files))
	for i, file := range files {
		if ctx.Err() != nil {
			break
		}
		results = append(results, r.readOne(ctx, file.Path))
		p.Step(i + 1)
	}
	p.Done()
	return results
}

func (r *IPTCKeywordsReader) readOne(ctx context.Context, path string) TagReadResult {
	out, err := r.run(ctx, r.binary, path)
	result := TagReadResult{
		Path:   path,
		Tags:   exiv2.ParseTags(out.Stdout),
		Stderr: out.Stderr,
	}
	if err != nil {
		result.Err = &failure.ToolInvocationError{
			Path:     path,
			Tool:     r.binary,
			ExitCode: out.ExitCode,
			Stderr:   out.Stderr,
			Err:      err,
		}
		r.logger.Debug("metadata read failed", logging.Path(path), logging.Error(result.Err))
		return result
	}
	r.logger.Debug("metadata read", logging.Path(path), logging.Int("tags", len(result.Tags)))
	return result
}
