// Package progress reports per-file progress for each pipeline stage.
package progress

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"photorganiser/internal/logging"
)

// Reporter receives progress for one stage at a time.
type Reporter interface {
	Start(stage string, total int)
	Step(done int)
	Done()
}

// New returns a Reporter that redraws a single line when w is a terminal and
// falls back to sampled log lines otherwise.
func New(w io.Writer, logger *slog.Logger) Reporter {
	if IsTerminal(w) {
		return NewTerminal(w)
	}
	return &sampled{
		logger:  logging.NewComponentLogger(logger, "progress"),
		sampler: newBucketSampler(logBucketPercent),
	}
}

// IsTerminal reports whether w is a terminal file.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Percent returns the floored completion percentage. An empty stage is complete.
func Percent(done, total int) int {
	if total <= 0 {
		return 100
	}
	return done * 100 / total
}

// Line formats the progress indicator.
func Line(done, total int) string {
	return fmt.Sprintf("Progress: [%d/%d][%d%%]", done, total, Percent(done, total))
}

type terminal struct {
	w     io.Writer
	total int
}

// NewTerminal returns a Reporter that rewrites one progress line per file
// between the stage banner and "Task complete.".
func NewTerminal(w io.Writer) Reporter {
	return &terminal{w: w}
}

func (t *terminal) Start(stage string, total int) {
	t.total = total
	fmt.Fprintf(t.w, "%s...\n", stage)
}

func (t *terminal) Step(done int) {
	fmt.Fprintf(t.w, "\r%s", Line(done, t.total))
}

func (t *terminal) Done() {
	fmt.Fprint(t.w, "\nTask complete.\n\n")
}

type sampled struct {
	logger  *slog.Logger
	sampler *bucketSampler
	stage   string
	total   int
}

func (s *sampled) Start(stage string, total int) {
	s.stage = stage
	s.total = total
	s.sampler.reset()
	s.logger.Info("stage started", logging.String(logging.FieldStage, stage), logging.Int("files", total))
}

// Step logs every file at debug and the first file of each bucket at info.
func (s *sampled) Step(done int) {
	level := slog.LevelDebug
	if s.sampler.admit(Percent(done, s.total)) {
		level = slog.LevelInfo
	}
	s.logger.Log(context.Background(), level, Line(done, s.total), logging.String(logging.FieldStage, s.stage))
}

func (s *sampled) Done() {
	s.logger.Info("stage complete", logging.String(logging.FieldStage, s.stage))
}

// Nop discards progress.
type Nop struct{}

func (Nop) Start(string, int) {}
func (Nop) Step(int)          {}
func (Nop) Done()             {}
