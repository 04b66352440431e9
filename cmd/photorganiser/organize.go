package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"photorganiser/internal/discovery"
	"photorganiser/internal/journal"
	"photorganiser/internal/logging"
	"photorganiser/internal/organizer"
	"photorganiser/internal/preflight"
	"photorganiser/internal/progress"
	"photorganiser/internal/report"
)

const (
	msgAborting       = "Aborting."
	msgInvalidRoot    = "Invalid root path. Aborting attempt."
	msgRootNotFound   = "Root directory was not found. Aborting attempt."
	msgRootNotDir     = "Root path is not a directory. Aborting attempt."
	msgRunInterrupted = "Interrupted. Files already moved were left in their new folders."
)

func runOrganize(cmd *cobra.Command, cmdCtx *commandContext, flags organizeFlags) error {
	out := cmd.OutOrStdout()

	confirmed, err := confirm(cmd.InOrStdin(), out, flags.directory)
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Fprintln(out, msgAborting)
		return nil
	}
	if strings.HasPrefix(strings.TrimSpace(flags.directory), ".") {
		fmt.Fprintln(out, msgInvalidRoot)
		return nil
	}

	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return err
	}
	if err := preflight.RequireExiv2(cfg); err != nil {
		return fmt.Errorf("preflight: %w", err)
	}
	format, err := report.ParseFormat(cfg.Organize.ReportFormat)
	if err != nil {
		return err
	}

	logger, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr(), flags.verbose)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// The root is checked before the journal is opened so a bad path leaves
	// the filesystem untouched.
	root, err := organizer.ResolveRoot(flags.directory)
	if err != nil {
		if msg, ok := rootMessage(err); ok {
			fmt.Fprintln(out, msg)
			return nil
		}
		return err
	}

	var store *journal.Store
	if cfg.Journal.Enabled {
		store, err = journal.Open(ctx, cfg.Paths.JournalDB)
		if err != nil {
			logger.Warn("run journal unavailable", logging.Error(err))
			store = nil
		} else {
			defer store.Close()
		}
	}

	rename := cfg.Organize.RenameFiles
	if cmd.Flags().Changed("rename-files") {
		rename = flags.renameFiles
	}

	req := organizer.Request{
		Root:        root,
		Verbose:     flags.verbose,
		Rename:      rename,
		MetaType:    flags.metaType,
		TagType:     flags.tagType,
		Search:      flags.tagSearch,
		Format:      format,
		FallbackDir: cfg.Organize.FallbackDir,
		Extensions:  cfg.Organize.Extensions,
		Ignore:      cfg.Organize.Ignore,
	}
	deps := organizer.Dependencies{
		Logger:       logger,
		AuditLogPath: cfg.Paths.AuditLog,
		Console:      out,
		Progress:     progress.New(out, logger),
		Journal:      store,
		Exiv2Binary:  cfg.Exiv2Binary(),
	}

	result, err := organizer.Run(ctx, req, deps)
	if result == nil {
		if msg, ok := rootMessage(err); ok {
			fmt.Fprintln(out, msg)
			return nil
		}
		return err
	}

	fmt.Fprintln(out, report.SummaryTable(result.Run))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(out, msgRunInterrupted)
		}
		return err
	}
	return nil
}

func rootMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, discovery.ErrNotFound):
		return msgRootNotFound, true
	case errors.Is(err, discovery.ErrNotDirectory):
		return msgRootNotDir, true
	default:
		return "", false
	}
}

// confirm asks the user to approve dir. Only y or yes, in any case, approves.
func confirm(in io.Reader, out io.Writer, dir string) (bool, error) {
	fmt.Fprintf(out, "Your selected directory was %s.\nPlease confirm (Y)es, (N)o: ", dir)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
