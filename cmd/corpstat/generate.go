package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/corpstat/internal/config"
	"github.com/verte-zerg/corpstat/internal/generator"
)

const (
	defaultGenerateCount    = 5
	defaultGenerateMaxWords = 25
)

var (
	generateFrom     string
	generateCount    int
	generateMaxWords int
	generateSeed     int64
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate sentences from collected statistics",
		Args:  cobra.NoArgs,
		RunE:  runGenerateCmd,
	}
	cmd.Flags().StringVar(&generateFrom, "from", "", "parse this file instead of reading the database")
	cmd.Flags().IntVar(&generateCount, "count", defaultGenerateCount, "number of sentences")
	cmd.Flags().IntVar(&generateMaxWords, "max-words", defaultGenerateMaxWords, "maximum words per sentence (0 = unlimited)")
	cmd.Flags().Int64Var(&generateSeed, "seed", 0, "random seed (default: time based)")
	return cmd
}

func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	if generateCount <= 0 {
		return fmt.Errorf("--count must be > 0")
	}
	if generateMaxWords < 0 {
		return fmt.Errorf("--max-words must be >= 0")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	chain, err := loadChain(cmd, cfg)
	if err != nil {
		return err
	}

	gen := generator.New()
	if flagChanged(cmd, "seed") {
		gen = generator.NewSeeded(generateSeed)
	}
	sentences, err := gen.Sentences(chain, generateCount, generateMaxWords)
	if err != nil {
		return err
	}
	for _, s := range sentences {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), s); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func loadChain(cmd *cobra.Command, cfg *config.Config) (*generator.Chain, error) {
	if generateFrom != "" {
		// Reading a single file must not touch the database.
		local := *cfg
		local.Database.Enabled = false
		local.Parse.Progress = config.ProgressNever
		s, err := parseInput(cmd.Context(), &local, generateFrom)
		if err != nil {
			return nil, err
		}
		return generator.FromStatistics(s), nil
	}

	st, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return nil, err
	}
	defer closeStore(st)
	words, err := st.Words(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to load words: %w", err)
	}
	transitions, err := st.Transitions(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to load transitions: %w", err)
	}
	return generator.FromRows(words, transitions), nil
}
