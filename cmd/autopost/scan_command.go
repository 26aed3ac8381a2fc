package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"autopost/internal/sheet"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan [spreadsheet]",
		Short: "List rows that are ready to publish without creating anything",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}

			ref := ""
			if len(args) > 0 {
				ref = args[0]
			}
			grid, _, err := ctx.loadGrid(cmd.Context(), ref)
			if err != nil {
				return err
			}

			candidates := sheet.NewScanner(cfg, logger).Scan(grid)
			out := cmd.OutOrStdout()
			if len(candidates) == 0 {
				fmt.Fprintln(out, "No rows are ready to publish.")
				return nil
			}

			headers := []string{"Row", "Section", "Authors", "Categories", "Image", "Story"}
			rows := make([][]string, 0, len(candidates))
			for _, candidate := range candidates {
				image := ""
				if candidate.ImageURL != "" {
					image = "yes"
				}
				rows = append(rows, []string{
					fmt.Sprintf("%d", candidate.Row),
					candidate.Section,
					strings.Join(candidate.Authors, ", "),
					strings.Join(candidate.Categories, ", "),
					image,
					candidate.StoryURL,
				})
			}
			fmt.Fprintln(out, renderTable(headers, rows, []columnAlignment{alignRight}))
			fmt.Fprintf(out, "%d row(s) ready.\n", len(candidates))
			return nil
		},
	}
}
