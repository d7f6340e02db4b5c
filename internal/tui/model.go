// Package tui provides the Bubble Tea progress display for a parse.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/corpstat/internal/corpus"
	"github.com/verte-zerg/corpstat/internal/model"
)

// ErrInterrupted is returned by Run when the user quits before the parse
// finishes.
var ErrInterrupted = errors.New("parse interrupted")

const (
	defaultBarWidth = 40
	maxBarWidth     = 60
)

// ProgressMsg reports parse progress.
type ProgressMsg corpus.Progress

// DoneMsg carries the parse outcome.
type DoneMsg struct {
	Stats model.Statistics
	Err   error
}

// Model implements the Bubble Tea progress UI.
type Model struct {
	source   string
	progress corpus.Progress
	width    int

	done        bool
	interrupted bool
	stats       model.Statistics
	err         error
}

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	filledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5A5A5A"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a progress model for source.
func NewModel(source string) *Model {
	return &Model{source: source}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.interrupted = true
			return m, tea.Quit
		}
		return m, nil
	case ProgressMsg:
		m.progress = corpus.Progress(msg)
		return m, nil
	case DoneMsg:
		m.done = true
		m.stats = msg.Stats
		m.err = msg.Err
		return m, tea.Quit
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.done || m.interrupted {
		return ""
	}
	barWidth := defaultBarWidth
	if m.width > 0 {
		barWidth = max(10, min(maxBarWidth, m.width-10))
	}
	lines := []string{
		titleStyle.Render("Parsing " + m.source),
		renderBar(m.progress.Fraction(), barWidth),
		m.renderFooter(),
	}
	return strings.Join(lines, "\n") + "\n"
}

// Result returns the parse outcome once a DoneMsg was received.
func (m *Model) Result() (model.Statistics, error) {
	return m.stats, m.err
}

func (m *Model) renderFooter() string {
	segments := []string{
		fmt.Sprintf("Progress %d%%", int(m.progress.Fraction()*100)),
		fmt.Sprintf("%d tokens", m.progress.Tokens),
	}
	if m.progress.TotalBytes > 0 {
		segments = append(segments, fmt.Sprintf("%s / %s", formatBytes(m.progress.BytesRead), formatBytes(m.progress.TotalBytes)))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func renderBar(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	fraction = max(0, min(1, fraction))
	filled := int(fraction * float64(width))
	return filledStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", width-filled))
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// ParseFunc runs a parse, reporting progress through onProgress.
type ParseFunc func(ctx context.Context, onProgress func(corpus.Progress)) (model.Statistics, error)

// Run shows the progress UI on out while parse runs in its own goroutine.
// Quitting early cancels ctx for the parse and returns ErrInterrupted.
func Run(ctx context.Context, source string, out io.Writer, parse ParseFunc) (model.Statistics, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := NewModel(source)
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithOutput(out))

	go func() {
		stats, err := parse(ctx, func(pr corpus.Progress) {
			p.Send(ProgressMsg(pr))
		})
		p.Send(DoneMsg{Stats: stats, Err: err})
	}()

	if _, err := p.Run(); err != nil {
		return model.Statistics{}, fmt.Errorf("progress ui: %w", err)
	}
	if m.interrupted {
		return model.Statistics{}, ErrInterrupted
	}
	return m.Result()
}
