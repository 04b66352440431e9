// Package discovery walks a root directory and partitions its regular files
// into the image types the organiser handles and everything else.
package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"golang.org/x/text/cases"
)

var (
	// ErrNotFound reports a root directory that does not exist.
	ErrNotFound = errors.New("root directory not found")
	// ErrNotDirectory reports a root path that is not a directory.
	ErrNotDirectory = errors.New("root path is not a directory")
)

// DefaultExtensions is the allow-list of image types, without dots.
var DefaultExtensions = []string{"jpg", "jpeg", "tif", "tiff", "png"}

// Classification is the closed set of discovery outcomes for a regular file.
type Classification int

const (
	Supported Classification = iota
	Unsupported
	Ignored
)

func (c Classification) String() string {
	switch c {
	case Supported:
		return "supported"
	case Unsupported:
		return "unsupported"
	case Ignored:
		return "ignored"
	default:
		return "unknown"
	}
}

// FileRecord is one regular file found under the root.
type FileRecord struct {
	Path  string
	Class Classification
}

// Result partitions every regular file under the root. Included holds the
// Supported records; Excluded holds the rest.
type Result struct {
	Included []FileRecord
	Excluded []FileRecord
}

// Options tunes classification. Zero value uses DefaultExtensions and no ignores.
type Options struct {
	Extensions []string
	// Ignore holds glob patterns matched against the root-relative, slash
	// separated path of each file.
	Ignore []string
}

type classifier struct {
	extensions map[string]struct{}
	ignore     []glob.Glob
	fold       cases.Caser
}

func newClassifier(opts Options) (*classifier, error) {
	c := &classifier{
		extensions: make(map[string]struct{}),
		fold:       cases.Fold(),
	}
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	for _, ext := range exts {
		ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
		if ext == "" {
			continue
		}
		c.extensions[c.fold.String(ext)] = struct{}{}
	}
	for _, pattern := range opts.Ignore {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("compile ignore pattern %q: %w", pattern, err)
		}
		c.ignore = append(c.ignore, g)
	}
	return c, nil
}

func (c *classifier) classify(rel string) Classification {
	slashed := filepath.ToSlash(rel)
	for _, g := range c.ignore {
		if g.Match(slashed) {
			return Ignored
		}
	}
	ext := strings.TrimPrefix(filepath.Ext(rel), ".")
	if ext == "" {
		return Unsupported
	}
	if _, ok := c.extensions[c.fold.String(ext)]; ok {
		return Supported
	}
	return Unsupported
}

// Walk enumerates every regular file under root. Paths in the result are
// absolute and sorted.
func Walk(root string, opts Options) (Result, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return Result{}, fmt.Errorf("resolve root %q: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{}, fmt.Errorf("%w: %s", ErrNotFound, abs)
		}
		return Result{}, fmt.Errorf("stat root %q: %w", abs, err)
	}
	if !info.IsDir() {
		return Result{}, fmt.Errorf("%w: %s", ErrNotDirectory, abs)
	}

	c, err := newClassifier(opts)
	if err != nil {
		return Result{}, err
	}

	var result Result
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(abs, path)
		if err != nil {
			return err
		}
		record := FileRecord{Path: path, Class: c.classify(rel)}
		if record.Class == Supported {
			result.Included = append(result.Included, record)
		} else {
			result.Excluded = append(result.Excluded, record)
		}
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("walk %s: %w", abs, err)
	}

	sortRecords(result.Included)
	sortRecords(result.Excluded)
	return result, nil
}

func sortRecords(records []FileRecord) {
	sort.Slice(records, func(i, j int) bool { return records[i].Path < records[j].Path })
}

// Paths returns the path of each record in order.
func Paths(records []FileRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Path
	}
	return out
}
