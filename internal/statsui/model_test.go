package statsui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/corpstat/internal/generator"
	"github.com/verte-zerg/corpstat/internal/model"
)

func sampleStats() model.Statistics {
	b := model.NewBuilder()
	sentences := [][]string{
		{"the", "cat", "sat"},
		{"the", "dog", "sat", "down"},
	}
	for _, sent := range sentences {
		for i, w := range sent {
			b.AddWord(w)
			if i == 0 {
				b.AddSentenceStart(w)
			} else {
				b.AddTransition(sent[i-1], w)
			}
		}
		b.AddSentenceEnd(sent[len(sent)-1])
	}
	b.SetParagraphs(1)
	return b.Build("pets.txt", time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC))
}

func sized(t *testing.T, m *Model) *Model {
	t.Helper()
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func TestOverviewShowsTotals(t *testing.T) {
	m := sized(t, NewModel(sampleStats(), generator.NewSeeded(1)))
	view := m.View()
	for _, want := range []string{"Overview", "pets.txt", "Words", "Sentence starts", "the"} {
		if !strings.Contains(view, want) {
			t.Fatalf("overview missing %q:\n%s", want, view)
		}
	}
	if lines := strings.Count(view, "\n") + 1; lines != 30 {
		t.Fatalf("expected view to fill 30 lines, got %d", lines)
	}
}

func TestTabsCycle(t *testing.T) {
	m := sized(t, NewModel(sampleStats(), generator.NewSeeded(1)))
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.activeTab != tabSample {
		t.Fatalf("expected wrap to last tab, got %d", m.activeTab)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabWords {
		t.Fatalf("expected words tab, got %d", m.activeTab)
	}
	if !m.tables[tabWords].Focused() {
		t.Fatalf("words table should be focused")
	}
	if !strings.Contains(m.View(), "Starts") {
		t.Fatalf("words tab should show the table header")
	}
}

func TestWordRowsRankedByCount(t *testing.T) {
	rows := wordRows(sampleStats())
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}
	if rows[0][1] != "the" || rows[0][2] != "2" || rows[0][3] != "2" || rows[0][4] != "0" {
		t.Fatalf("unexpected first row %v", rows[0])
	}
	if rows[1][1] != "sat" || rows[1][4] != "1" {
		t.Fatalf("unexpected second row %v", rows[1])
	}
}

func TestTransitionRows(t *testing.T) {
	rows := transitionRows(sampleStats())
	if len(rows) != 5 {
		t.Fatalf("expected 5 transitions, got %d", len(rows))
	}
	if rows[0][1] != "the" || rows[0][2] != "cat" || rows[0][3] != "1" {
		t.Fatalf("unexpected first row %v", rows[0])
	}
}

func TestSampleRegenerates(t *testing.T) {
	m := sized(t, NewModel(sampleStats(), generator.NewSeeded(1)))
	if len(m.sample) != sampleSentences {
		t.Fatalf("expected %d sentences, got %d", sampleSentences, len(m.sample))
	}
	for _, s := range m.sample {
		if !strings.HasPrefix(s, "The ") || !strings.HasSuffix(s, ".") {
			t.Fatalf("unexpected sentence %q", s)
		}
	}
	m.activeTab = tabSample
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if len(m.sample) != sampleSentences || m.errMsg != "" {
		t.Fatalf("regenerate failed: %v %q", m.sample, m.errMsg)
	}
}

func TestEmptyStatistics(t *testing.T) {
	m := sized(t, NewModel(model.NewBuilder().Build("empty.txt", time.Time{}), generator.NewSeeded(1)))
	if m.errMsg == "" {
		t.Fatalf("expected an error message for an empty chain")
	}
	if !strings.Contains(m.View(), "No words found.") {
		t.Fatalf("expected empty overview")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if !strings.Contains(m.View(), "No entries found.") {
		t.Fatalf("expected empty table notice")
	}
}

func TestQuit(t *testing.T) {
	m := NewModel(sampleStats(), generator.NewSeeded(1))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestWordColumnWidth(t *testing.T) {
	if got := wordColumnWidth([]string{"a"}); got != minWordColumn {
		t.Fatalf("expected min width, got %d", got)
	}
	if got := wordColumnWidth([]string{strings.Repeat("x", 50)}); got != maxWordColumn {
		t.Fatalf("expected max width, got %d", got)
	}
	if got := wordColumnWidth([]string{"internationalization"}); got != 20 {
		t.Fatalf("expected 20, got %d", got)
	}
}
