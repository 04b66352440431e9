package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"photorganiser/internal/journal"
	"photorganiser/internal/report"
)

type historyRun struct {
	ID          string    `json:"id"`
	Root        string    `json:"root"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	RenameFiles bool      `json:"rename_files"`
	Found       int       `json:"found"`
	Excluded    int       `json:"excluded"`
	Moved       int       `json:"moved"`
	Failed      int       `json:"failed"`
	Cancelled   bool      `json:"cancelled"`
}

type historyMove struct {
	OldPath   string `json:"old_path"`
	NewPath   string `json:"new_path,omitempty"`
	Token     string `json:"token,omitempty"`
	ErrorKind string `json:"error_kind,omitempty"`
	Error     string `json:"error,omitempty"`
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var runID string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent organise runs from the journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openJournal(cmd.Context())
			if err != nil {
				if errors.Is(err, errJournalDisabled) {
					fmt.Fprintln(cmd.OutOrStdout(), err)
					return nil
				}
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			if runID != "" {
				return showRunMoves(cmd, store, runID, asJSON)
			}
			return showRecentRuns(cmd, store, limit, asJSON)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show")
	cmd.Flags().StringVar(&runID, "run", "", "Show the moves of a single run")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func showRecentRuns(cmd *cobra.Command, store *journal.Store, limit int, asJSON bool) error {
	runs, err := store.RecentRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if asJSON {
		views := make([]historyRun, 0, len(runs))
		for _, r := range runs {
			views = append(views, historyRun(r))
		}
		return writeJSON(cmd, views)
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded")
		return nil
	}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			shortID(r.ID),
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Root,
			strconv.Itoa(r.Found),
			strconv.Itoa(r.Moved),
			strconv.Itoa(r.Failed),
			yesNo(r.Cancelled),
		})
	}
	fmt.Fprintln(out, report.RenderTable(
		[]string{"Run", "Started", "Root", "Found", "Moved", "Failed", "Interrupted"},
		rows,
		[]report.Alignment{report.AlignLeft, report.AlignLeft, report.AlignLeft, report.AlignRight, report.AlignRight, report.AlignRight, report.AlignLeft},
	))
	return nil
}

func showRunMoves(cmd *cobra.Command, store *journal.Store, runID string, asJSON bool) error {
	moves, err := store.Moves(cmd.Context(), runID)
	if err != nil {
		return err
	}
	if asJSON {
		views := make([]historyMove, 0, len(moves))
		for _, m := range moves {
			views = append(views, historyMove(m))
		}
		return writeJSON(cmd, views)
	}

	out := cmd.OutOrStdout()
	if len(moves) == 0 {
		fmt.Fprintf(out, "No moves recorded for run %s\n", runID)
		return nil
	}
	rows := make([][]string, 0, len(moves))
	for _, m := range moves {
		result := m.NewPath
		if m.ErrorKind != "" {
			result = m.ErrorKind + ": " + m.Error
		}
		rows = append(rows, []string{m.OldPath, result})
	}
	fmt.Fprintln(out, report.RenderTable([]string{"File", "Result"}, rows, nil))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "    ")
	return enc.Encode(v)
}
