package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"autopost/internal/runlog"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show past runs and their outcomes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := runlog.Open(cfg)
			if err != nil {
				return fmt.Errorf("open run journal: %w", err)
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				records, err := store.RunRows(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if len(records) == 0 {
					fmt.Fprintf(out, "No rows recorded for run %s.\n", args[0])
					return nil
				}
				headers := []string{"Row", "Section", "Title", "Outcome", "Post", "Detail"}
				rows := make([][]string, 0, len(records))
				for _, record := range records {
					post := record.PostLink
					if post == "" && record.PostID != 0 {
						post = fmt.Sprintf("#%d", record.PostID)
					}
					rows = append(rows, []string{
						fmt.Sprintf("%d", record.Row),
						record.Section,
						record.Title,
						record.Outcome,
						post,
						record.Detail,
					})
				}
				fmt.Fprintln(out, renderTable(headers, rows, []columnAlignment{alignRight}))
				return nil
			}

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet.")
				return nil
			}
			headers := []string{"Started", "Run", "Published", "Draft", "Skipped", "Failed"}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.StartedAt.Local().Format(time.DateTime),
					run.ID,
					fmt.Sprintf("%d", run.Published),
					fmt.Sprintf("%d", run.Drafted),
					fmt.Sprintf("%d", run.Skipped),
					fmt.Sprintf("%d", run.Failed),
				})
			}
			aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight}
			fmt.Fprintln(out, renderTable(headers, rows, aligns))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of runs to list")
	return cmd
}
