package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"listingscope/internal/testkit"
)

func newGenerateCmd() *cobra.Command {
	cfg := testkit.DefaultListingsConfig()
	var (
		out    string
		format string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic listings table for demos and tests",
		Long: `Write a deterministic synthetic listings table with the same columns as the
cleaned Airbnb export, so the dashboard can run without the real data.

Example: listingscope generate --out data/Airbnb_Cleaned.csv --rows 2000 --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Rows <= 0 {
				return fmt.Errorf("rows must be > 0")
			}
			if cfg.MissingRate < 0 || cfg.MissingRate >= 1 {
				return fmt.Errorf("missing-rate must be in [0, 1)")
			}

			fmtName := strings.ToLower(strings.TrimSpace(format))
			if fmtName == "" {
				fmtName = testkit.FormatFor(out)
			}

			records := testkit.NewListingsGenerator(cfg).Records()
			if err := testkit.WriteRecords(out, fmtName, records); err != nil {
				return fmt.Errorf("error writing %s: %w", fmtName, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", infoStyle.Render("Wrote"), out)
			fmt.Fprintf(cmd.OutOrStdout(), "Total Columns: %d | Total Rows: %s\n",
				len(records[0]), printer.Sprintf("%d", len(records)-1))
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "listings.csv", "output file path")
	cmd.Flags().StringVar(&format, "format", "", "output format: csv or xlsx (default inferred from --out)")
	cmd.Flags().IntVar(&cfg.Rows, "rows", cfg.Rows, "number of listings")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "RNG seed (deterministic)")
	cmd.Flags().Float64Var(&cfg.MissingRate, "missing-rate", cfg.MissingRate, "share of blank cells in the nullable columns")
	return cmd
}
