// Package statsui provides the Bubble Tea browser for one parse result.
package statsui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/corpstat/internal/generator"
	"github.com/verte-zerg/corpstat/internal/model"
	"github.com/verte-zerg/corpstat/internal/stats"
)

const (
	tabOverview = iota
	tabWords
	tabTransitions
	tabSample
)

const (
	overviewTop     = 10
	sampleSentences = 8
	sampleMaxWords  = 20
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea stats browser.
type Model struct {
	stats model.Statistics
	chain *generator.Chain
	gen   *generator.Generator

	tabs      []string
	activeTab int
	viewports []viewport.Model
	tables    map[int]*table.Model
	sample    []string
	errMsg    string

	width  int
	height int
}

// NewModel constructs a browser for s. gen drives the Sample tab.
func NewModel(s model.Statistics, gen *generator.Generator) *Model {
	m := &Model{
		stats: s,
		chain: generator.FromStatistics(s),
		gen:   gen,
		tabs:  []string{"Overview", "Words", "Transitions", "Sample"},
	}
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	words := newTable(wordColumns(), wordRows(s))
	transitions := newTable(transitionColumns(), transitionRows(s))
	fitWordColumns(&words, 1)
	fitWordColumns(&transitions, 1, 2)
	m.tables = map[int]*table.Model{tabWords: &words, tabTransitions: &transitions}
	m.regenerate()
	m.renderTabContents()
	return m
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
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		tbl := m.tables[m.activeTab]
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "r":
			if m.activeTab == tabSample {
				m.regenerate()
				m.renderTabContents()
			}
			return m, nil
		case "g", "home":
			if tbl != nil {
				tbl.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if tbl != nil {
				tbl.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			var cmd tea.Cmd
			if tbl != nil {
				*tbl, cmd = tbl.Update(msg)
				return m, cmd
			}
			m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := max(1, lipgloss.Height(activeNavStyle.Render("X")))
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = max(1, m.height-headerHeight-footerHeight)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	for _, tbl := range m.tables {
		tbl.SetWidth(m.width)
		// One line goes to the header border.
		tbl.SetHeight(max(1, bodyHeight-1))
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	m.activeTab = (m.activeTab + delta + count) % count
	for tab, tbl := range m.tables {
		if tab == m.activeTab {
			tbl.Focus()
		} else {
			tbl.Blur()
		}
	}
}

func (m *Model) regenerate() {
	sentences, err := m.gen.Sentences(m.chain, sampleSentences, sampleMaxWords)
	if err != nil {
		m.sample = nil
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.sample = sentences
}

func (m *Model) renderTabContents() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.stats, width))
	m.viewports[tabSample].SetContent(renderSample(m.sample))
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	meta := m.stats.Meta()
	line := fmt.Sprintf("File: %s  imported %s", meta.FileName, meta.ImportedAt.UTC().Format("2006-01-02 15:04:05"))
	return padLines(m.renderTabs(), m.width) + "\n" + headerStyle.Render(truncateLine(line, m.width))
}

func (m *Model) renderBody() string {
	if tbl := m.tables[m.activeTab]; tbl != nil {
		if len(tbl.Rows()) == 0 {
			return "No entries found."
		}
		return tableMutedStyle.Render(tbl.View())
	}
	return m.viewports[m.activeTab].View()
}

func (m *Model) renderFooter() string {
	help := "Nav: left/right  Scroll: up/down/pgup/pgdn  Top/bottom: g/G  Quit: q"
	if m.activeTab == tabSample {
		help = "Nav: left/right  Regenerate: r  Quit: q"
	}
	help = headerStyle.Render(help)
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func renderOverview(s model.Statistics, width int) string {
	if s.TotalWords() == 0 {
		return "No words found."
	}
	cards := []string{
		metricCard("Words", fmt.Sprintf("%d", s.TotalWords())),
		metricCard("Unique", fmt.Sprintf("%d", s.WordCounts().Len())),
		metricCard("Sentences", fmt.Sprintf("%d", s.TotalSentences())),
		metricCard("Paragraphs", fmt.Sprintf("%d", s.TotalParagraphs())),
		metricCard("Avg length", fmt.Sprintf("%.2f", s.AverageWordLength())),
	}
	var summary string
	if width < 80 {
		summary = strings.Join(cards, "\n")
	} else {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4])
		summary = lipgloss.JoinVertical(lipgloss.Left, row1, row2)
	}

	var b strings.Builder
	b.WriteString(summary)
	b.WriteString("\n\n")
	if hist := stats.WordLengthHistogram(s); len(hist) > 1 {
		b.WriteString(headerStyle.Render(fmt.Sprintf("Word lengths 1..%d  [%s]", len(hist), stats.Sparkline(hist))))
		b.WriteString("\n\n")
	}
	if err := stats.RenderTopWords(&b, "Sentence starts", stats.TopWords(s.SentenceStartCounts(), overviewTop)); err != nil {
		return fmt.Sprintf("Failed to render overview: %v", err)
	}
	if err := stats.RenderTopWords(&b, "Sentence ends", stats.TopWords(s.SentenceEndCounts(), overviewTop)); err != nil {
		return fmt.Sprintf("Failed to render overview: %v", err)
	}
	return strings.TrimRight(b.String(), "\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderSample(sentences []string) string {
	if len(sentences) == 0 {
		return "No sentences to sample."
	}
	return strings.Join(sentences, "\n\n")
}
