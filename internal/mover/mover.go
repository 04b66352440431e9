// Package mover relocates matched images into year folders under the root.
//
// Every MatchResult produces exactly one MoveOutcome. Failures are typed
// (see package failure), recorded on the outcome, and never abort the batch.
package mover

import (
	"cmp"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/google/uuid"
	"golang.org/x/sys/unix"

	"photorganiser/internal/failure"
	"photorganiser/internal/fileutil"
	"photorganiser/internal/logging"
	"photorganiser/internal/progress"
	"photorganiser/internal/tagmatch"
)

// DefaultFallbackDir receives files without a token.
const DefaultFallbackDir = "unorganised"

// StageName labels progress output for the move stage.
const StageName = "Moving images"

// Options configures a Mover.
type Options struct {
	Root        string
	Rename      bool
	FallbackDir string
	// NewName returns the base name, without extension, for renamed files.
	// Defaults to a random UUID.
	NewName func() string
}

// MoveOutcome records one attempted move. Err is nil on success.
type MoveOutcome struct {
	// Seq is the position of the match in the batch.
	Seq     int
	OldPath string
	NewPath string
	Token   string
	Err     error
}

// Succeeded reports whether the file was moved.
func (o MoveOutcome) Succeeded() bool { return o.Err == nil }

// Outcomes partitions the results of a batch.
type Outcomes struct {
	Moved  []MoveOutcome
	Failed []MoveOutcome
}

// Total returns the number of attempted moves.
func (o Outcomes) Total() int { return len(o.Moved) + len(o.Failed) }

// InOrder merges both partitions back into batch order.
func (o Outcomes) InOrder() []MoveOutcome {
	all := make([]MoveOutcome, 0, o.Total())
	all = append(all, o.Moved...)
	all = append(all, o.Failed...)
	slices.SortStableFunc(all, func(a, b MoveOutcome) int { return cmp.Compare(a.Seq, b.Seq) })
	return all
}

// Mover moves files under a single root.
type Mover struct {
	opts   Options
	logger *slog.Logger
	rename func(src, dst string) error
}

// New constructs a Mover.
func New(opts Options, logger *slog.Logger) *Mover {
	if opts.FallbackDir == "" {
		opts.FallbackDir = DefaultFallbackDir
	}
	if opts.NewName == nil {
		opts.NewName = uuid.NewString
	}
	return &Mover{
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "mover"),
		rename: os.Rename,
	}
}

// TargetDir returns the folder a match is routed to.
func (m *Mover) TargetDir(match tagmatch.MatchResult) string {
	if match.Found && match.Token != "" {
		return filepath.Join(m.opts.Root, match.Token)
	}
	return filepath.Join(m.opts.Root, m.opts.FallbackDir)
}

func (m *Mover) targetName(src string) string {
	if !m.opts.Rename {
		return filepath.Base(src)
	}
	return m.opts.NewName() + filepath.Ext(src)
}

// Move processes matches in order. It stops early only when ctx is cancelled;
// files not yet visited are left untouched and get no outcome.
func (m *Mover) Move(ctx context.Context, matches []tagmatch.MatchResult, p progress.Reporter) Outcomes {
	if p == nil {
		p = progress.Nop{}
	}
	var out Outcomes
	p.Start(StageName, len(matches))
	for i, match := range matches {
		if ctx.Err() != nil {
			break
		}
		outcome := m.moveOne(match)
		outcome.Seq = i
		if outcome.Succeeded() {
			out.Moved = append(out.Moved, outcome)
		} else {
			out.Failed = append(out.Failed, outcome)
		}
		p.Step(i + 1)
	}
	p.Done()
	return out
}

func (m *Mover) moveOne(match tagmatch.MatchResult) MoveOutcome {
	outcome := MoveOutcome{OldPath: match.Path, Token: match.Token}

	dir := m.TargetDir(match)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		outcome.Err = classify(dir, "mkdir", err)
		m.logger.Warn("create target directory failed", logging.Path(match.Path), logging.Error(outcome.Err))
		return outcome
	}

	dst := filepath.Join(dir, m.targetName(match.Path))
	if _, err := os.Lstat(dst); err == nil {
		outcome.Err = &failure.CollisionError{Source: match.Path, Destination: dst}
		m.logger.Warn("file already exists at this path, not moving",
			logging.Path(match.Path), logging.String("destination", dst))
		return outcome
	} else if !errors.Is(err, fs.ErrNotExist) {
		outcome.Err = classify(dst, "stat", err)
		return outcome
	}

	if err := m.moveFile(match.Path, dst); err != nil {
		outcome.Err = err
		m.logger.Warn("move failed", logging.Path(match.Path), logging.Error(err))
		return outcome
	}
	outcome.NewPath = dst
	m.logger.Debug("moved", logging.Path(match.Path), logging.String("destination", dst))
	return outcome
}

// moveFile renames src to dst, copying and removing across filesystems.
func (m *Mover) moveFile(src, dst string) error {
	err := m.rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, unix.EXDEV) {
		return classify(src, "rename", err)
	}
	if err := fileutil.CopyFileVerified(src, dst); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return &failure.CollisionError{Source: src, Destination: dst}
		}
		return classify(dst, "copy", err)
	}
	if err := os.Remove(src); err != nil {
		_ = os.Remove(dst)
		return classify(src, "remove", err)
	}
	return nil
}

func classify(path, op string, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return &failure.PermissionError{Path: path, Op: op, Err: err}
	}
	return &failure.IOError{Path: path, Op: op, Err: err}
}
