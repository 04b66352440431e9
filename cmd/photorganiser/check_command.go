package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"photorganiser/internal/preflight"
	"photorganiser/internal/report"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var directory string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check external tools and directory access",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}
			results := preflight.RunAll(cfg, directory)

			rows := make([][]string, 0, len(results))
			failed := 0
			for _, r := range results {
				status := "ok"
				if !r.Passed {
					status = "FAIL"
					failed++
				}
				rows = append(rows, []string{r.Name, status, r.Detail})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, report.RenderTable(
				[]string{"Check", "Status", "Detail"},
				rows,
				[]report.Alignment{report.AlignLeft, report.AlignLeft, report.AlignLeft},
			))
			if failed > 0 {
				return fmt.Errorf("%d check(s) failed", failed)
			}
			fmt.Fprintln(out, "All checks passed")
			return nil
		},
	}

	cmd.Flags().StringVarP(&directory, "directory", "d", "", "Photo directory to check for read/write access")
	return cmd
}
