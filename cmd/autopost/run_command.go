package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"autopost/internal/media"
	"autopost/internal/pipeline"
	"autopost/internal/report"
	"autopost/internal/runlog"
	"autopost/internal/sheet"
	"autopost/internal/taxonomy"
	"autopost/internal/terminal"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [spreadsheet]",
		Short: "Process ready rows interactively and create posts",
		Long: `Scans the spreadsheet for rows marked ready but not yet online and walks
through them one at a time. Each row needs a confirmation keystroke before
anything is created. The spreadsheet argument may be a Google Sheets URL or
ID, or a local .xlsx export; it defaults to sheet.spreadsheet from the
config.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}

			lock := flock.New(filepath.Join(cfg.Paths.DataDir, "autopost.lock"))
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire run lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("another autopost run is already in progress")
			}
			defer lock.Unlock()

			ref := ""
			if len(args) > 0 {
				ref = args[0]
			}
			grid, spreadsheetID, err := ctx.loadGrid(cmd.Context(), ref)
			if err != nil {
				return err
			}

			candidates := sheet.NewScanner(cfg, logger).Scan(grid)
			out := cmd.OutOrStdout()
			if len(candidates) == 0 {
				fmt.Fprintln(out, "No rows are ready to publish.")
				return nil
			}
			fmt.Fprintf(out, "Found %d row(s) ready to publish.\n", len(candidates))

			google, err := ctx.googleClient()
			if err != nil {
				return err
			}
			wp, err := ctx.wordpressClient()
			if err != nil {
				return err
			}

			categories, err := wp.ListCategories(cmd.Context())
			if err != nil {
				return fmt.Errorf("load site categories: %w", err)
			}

			store, err := runlog.Open(cfg)
			if err != nil {
				return fmt.Errorf("open run journal: %w", err)
			}
			defer store.Close()

			decisions := terminal.New(os.Stdin, out)
			runner := pipeline.New(cfg, spreadsheetID, pipeline.Deps{
				Documents:  google,
				Sheet:      google,
				Publisher:  wp,
				Authors:    taxonomy.NewResolver(wp, cfg.WordPress.AuthorRole, cfg.WordPress.EmailDomains, logger),
				Categories: taxonomy.NewMatcher(categories, logger),
				Images:     media.NewProcessor(google, wp, decisions, cfg.Media, logger),
				Decisions:  decisions,
				Logger:     logger,
			})

			runID, err := store.BeginRun(cmd.Context(), spreadsheetID)
			if err != nil {
				return fmt.Errorf("record run start: %w", err)
			}

			results, err := runner.Run(cmd.Context(), candidates)
			if err != nil {
				return err
			}
			for _, status := range results {
				if err := store.RecordRow(cmd.Context(), runID, status); err != nil {
					logger.Warn("row outcome not journaled", "row", status.Row, "error", err)
				}
			}
			if err := store.FinishRun(cmd.Context(), runID, results); err != nil {
				logger.Warn("run not finalized in journal", "error", err)
			}

			fmt.Fprintln(out)
			fmt.Fprint(out, report.Render(results))
			return nil
		},
	}
	return cmd
}
