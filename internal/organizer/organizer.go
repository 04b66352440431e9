package organizer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"photorganiser/internal/auditlog"
	"photorganiser/internal/discovery"
	"photorganiser/internal/failure"
	"photorganiser/internal/journal"
	"photorganiser/internal/logging"
	"photorganiser/internal/metadata"
	"photorganiser/internal/modes"
	"photorganiser/internal/mover"
	"photorganiser/internal/progress"
	"photorganiser/internal/report"
	"photorganiser/internal/tagmatch"
)

// Request describes one organise pass.
type Request struct {
	Root        string
	Verbose     bool
	Rename      bool
	MetaType    modes.MetaType
	TagType     modes.TagType
	Search      modes.SearchMode
	Format      report.Format
	FallbackDir string
	Extensions  []string
	Ignore      []string
}

// Dependencies are the collaborators a pass writes through.
type Dependencies struct {
	Logger       *slog.Logger
	AuditLogPath string
	// Console receives "Starting process..." and, when verbose, every report section.
	Console  io.Writer
	Progress progress.Reporter
	// Journal is optional.
	Journal     *journal.Store
	Exiv2Binary string
	// Reader overrides the reader resolved from the request modes.
	Reader  metadata.Reader
	NewName func() string
	Now     func() time.Time
}

// Result is the outcome of a pass.
type Result struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Cancelled  bool
	report.Run
}

// ResolveRoot returns the absolute, symlink-free form of root. It fails with
// discovery.ErrNotFound or discovery.ErrNotDirectory.
func ResolveRoot(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve root %q: %w", root, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", discovery.ErrNotFound, abs)
		}
		return "", fmt.Errorf("resolve root %q: %w", abs, err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("stat root %q: %w", resolved, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", discovery.ErrNotDirectory, resolved)
	}
	return resolved, nil
}

// Run executes the pass. A returned error with a nil Result means nothing was
// touched, the audit log included. When ctx is cancelled mid-run, Run returns
// the partial Result together with ctx.Err().
func Run(ctx context.Context, req Request, deps Dependencies) (*Result, error) {
	root, err := ResolveRoot(req.Root)
	if err != nil {
		return nil, err
	}
	req = withDefaultModes(req)

	reader := deps.Reader
	if reader == nil {
		reader, err = metadata.Resolve(req.MetaType, req.TagType, metadata.Options{
			Binary: deps.Exiv2Binary,
			Logger: deps.Logger,
		})
		if err != nil {
			return nil, err
		}
	}
	if _, _, err := tagmatch.Extract(nil, req.Search); err != nil {
		return nil, err
	}
	format := req.Format
	if format == "" {
		format = report.FormatJSON
	}

	now := deps.Now
	if now == nil {
		now = time.Now
	}
	console := deps.Console
	if console == nil {
		console = io.Discard
	}
	p := deps.Progress
	if p == nil {
		p = progress.Nop{}
	}

	result := &Result{ID: uuid.NewString(), StartedAt: now()}
	result.Root = root
	logger := logging.NewComponentLogger(deps.Logger, "organizer").With(logging.String(logging.FieldRunID, result.ID))
	logger.Info("organise started", logging.Path(root), logging.Bool("rename", req.Rename))

	fmt.Fprint(console, "Starting process...\n\n")

	found, err := discovery.Walk(root, discovery.Options{Extensions: req.Extensions, Ignore: req.Ignore})
	if err != nil {
		return nil, err
	}
	result.Included = found.Included
	result.Excluded = found.Excluded
	logger.Debug("discovery complete",
		logging.Int("included", len(found.Included)),
		logging.Int("excluded", len(found.Excluded)))

	// Opened after the walk so a failed walk leaves the log untouched.
	var echo io.Writer
	if req.Verbose {
		echo = console
	}
	audit, err := auditlog.Open(deps.AuditLogPath, auditlog.Options{Echo: echo, Now: now})
	if err != nil {
		return nil, err
	}
	defer audit.Close()

	result.Tags = reader.Read(ctx, found.Included, p)
	result.Matches, err = tagmatch.Match(result.Tags, req.Search)
	if err != nil {
		return nil, err
	}

	m := mover.New(mover.Options{
		Root:        root,
		Rename:      req.Rename,
		FallbackDir: req.FallbackDir,
		NewName:     deps.NewName,
	}, deps.Logger)
	result.Outcomes = m.Move(ctx, result.Matches, p)
	result.Cancelled = ctx.Err() != nil
	result.FinishedAt = now()

	if err := writeReport(audit, result, format); err != nil {
		return result, err
	}

	if deps.Journal != nil {
		if err := recordRun(context.WithoutCancel(ctx), deps.Journal, req, result); err != nil {
			logger.Warn("journal write failed", logging.Error(err))
		}
	}

	logger.Info("organise finished",
		logging.Int("moved", len(result.Outcomes.Moved)),
		logging.Int("failed", len(result.Outcomes.Failed)),
		logging.Duration("elapsed", result.FinishedAt.Sub(result.StartedAt)),
		logging.Bool("cancelled", result.Cancelled))

	if result.Cancelled {
		return result, ctx.Err()
	}
	return result, nil
}

func withDefaultModes(req Request) Request {
	if req.MetaType == "" {
		req.MetaType = modes.MetaIPTC
	}
	if req.TagType == "" {
		req.TagType = modes.TagKeywords
	}
	if req.Search == "" {
		req.Search = modes.SearchYear
	}
	return req
}

func writeReport(audit *auditlog.Log, result *Result, format report.Format) error {
	for _, o := range result.Outcomes.Failed {
		var collision *failure.CollisionError
		if errors.As(o.Err, &collision) {
			if err := audit.Write(fmt.Sprintf("File already exists at %s. Not moving.", collision.Destination)); err != nil {
				return err
			}
		}
	}
	if result.Cancelled {
		if err := audit.Write("Run interrupted. Files not yet visited were left in place."); err != nil {
			return err
		}
	}

	sections, err := report.Sections(result.Run, format)
	if err != nil {
		return err
	}
	for _, section := range sections {
		if err := audit.Write(section); err != nil {
			return err
		}
	}
	return nil
}

func recordRun(ctx context.Context, store *journal.Store, req Request, result *Result) error {
	return store.RecordRun(ctx, journal.RunRecord{
		ID:          result.ID,
		Root:        result.Root,
		StartedAt:   result.StartedAt,
		FinishedAt:  result.FinishedAt,
		RenameFiles: req.Rename,
		Found:       len(result.Included),
		Excluded:    len(result.Excluded),
		Cancelled:   result.Cancelled,
		Outcomes:    result.Outcomes,
	})
}
