package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/corpstat/internal/generator"
	"github.com/verte-zerg/corpstat/internal/statsui"
)

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <file>",
		Short: "Parse a file and browse its statistics",
		Args:  cobra.ExactArgs(1),
		RunE:  runBrowseCmd,
	}
}

func runBrowseCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := parseInput(cmd.Context(), cfg, args[0])
	if err != nil {
		return err
	}

	model := statsui.NewModel(s, generator.New())
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}
