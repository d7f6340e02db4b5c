// Package main provides the CLI entrypoint for corpstat.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/corpstat/internal/app"
	"github.com/verte-zerg/corpstat/internal/config"
	"github.com/verte-zerg/corpstat/internal/corpus"
	"github.com/verte-zerg/corpstat/internal/model"
	"github.com/verte-zerg/corpstat/internal/stats"
	"github.com/verte-zerg/corpstat/internal/store"
	"github.com/verte-zerg/corpstat/internal/tui"
)

var (
	configPath string
	logLevel   string

	parseOut      string
	parseNoJSON   bool
	parseDB       bool
	parseProgress string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "corpstat <file>",
		Short:         "Corpus statistics for plain text files",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          exactlyOneFile,
		RunE:          runParseCmd,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/corpstat/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.Flags().StringVarP(&parseOut, "out", "o", "", "JSON output path (default: output/parse_result.json)")
	rootCmd.Flags().BoolVar(&parseNoJSON, "no-json", false, "do not write the JSON document")
	rootCmd.Flags().BoolVar(&parseDB, "db", false, "persist counts to the configured database")
	rootCmd.Flags().StringVar(&parseProgress, "progress", "", "progress bar: auto, always, never")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newTopCmd())
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newBrowseCmd())

	return rootCmd
}

// exactlyOneFile prints usage before rejecting a wrong argument count,
// since the root command silences usage for every other error.
func exactlyOneFile(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return nil
	}
	if err := cmd.Usage(); err != nil {
		return err
	}
	return fmt.Errorf("expected exactly one input file, got %d arguments", len(args))
}

func runParseCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := parseInput(cmd.Context(), cfg, args[0])
	if err != nil {
		return err
	}
	return reportResult(cmd, cfg, s)
}

// loadConfig reads the config file and environment, then applies any flag
// the user set explicitly, and installs the logger.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringFlag(cmd, "log-level", &cfg.Log.Level, logLevel)
	applyStringFlag(cmd, "out", &cfg.Parse.Output, parseOut)
	applyStringFlag(cmd, "progress", &cfg.Parse.Progress, parseProgress)
	if flagChanged(cmd, "db") {
		cfg.Database.Enabled = parseDB
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	app.NewLogger(os.Stderr, cfg.Log)
	return cfg, nil
}

func parseInput(ctx context.Context, cfg *config.Config, path string) (model.Statistics, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	opts := corpus.Options{Logger: slog.Default()}
	if cfg.Database.Enabled {
		st, err := openStore(ctx, cfg)
		if err != nil {
			return model.Statistics{}, err
		}
		defer closeStore(st)
		opts.Store = st
	}

	if !showProgress(cfg.Parse.Progress) {
		return corpus.NewParser(opts).ParseFile(ctx, path)
	}
	return tui.Run(ctx, path, os.Stderr, func(ctx context.Context, onProgress func(corpus.Progress)) (model.Statistics, error) {
		opts.OnProgress = onProgress
		return corpus.NewParser(opts).ParseFile(ctx, path)
	})
}

func reportResult(cmd *cobra.Command, cfg *config.Config, s model.Statistics) error {
	if err := stats.RenderSummary(cmd.OutOrStdout(), s); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	if cfg.Database.Enabled {
		slog.Info("import committed", slog.String("file", s.SourceName()), slog.String("driver", cfg.Database.Driver))
	}
	if parseNoJSON {
		return nil
	}
	if err := stats.WriteJSONFile(cfg.Parse.Output, s); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	slog.Info("statistics written", slog.String("path", cfg.Parse.Output))
	return nil
}

func showProgress(mode string) bool {
	switch mode {
	case config.ProgressAlways:
		return true
	case config.ProgressNever:
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}

func openStore(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	st, err := store.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		slog.Warn("failed to close db", slog.Any("err", cerr))
	}
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

func applyStringFlag(cmd *cobra.Command, name string, target *string, value string) {
	if flagChanged(cmd, name) {
		*target = value
	}
}
