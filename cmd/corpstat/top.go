package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/corpstat/internal/stats"
)

const defaultTopLimit = 10

var topLimit int

func newTopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show top sentence starts, ends and transitions from the database",
		Args:  cobra.NoArgs,
		RunE:  runTopCmd,
	}
	cmd.Flags().IntVar(&topLimit, "limit", defaultTopLimit, "rows per section")
	return cmd
}

func runTopCmd(cmd *cobra.Command, _ []string) error {
	if topLimit <= 0 {
		return fmt.Errorf("--limit must be > 0")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeStore(st)

	report, err := stats.BuildReport(cmd.Context(), st, topLimit)
	if err != nil {
		return fmt.Errorf("failed to load report: %w", err)
	}
	if err := stats.RenderReport(cmd.OutOrStdout(), report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
