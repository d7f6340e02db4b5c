package statsui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/corpstat/internal/model"
	"github.com/verte-zerg/corpstat/internal/stats"
)

const (
	minWordColumn = 12
	maxWordColumn = 32
)

func newTable(cols []table.Column, rows []table.Row) table.Model {
	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithHeight(1),
	)
	t.SetStyles(tableStyles())
	return t
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

// wordColumnWidth fits the widest word, within bounds.
func wordColumnWidth(words []string) int {
	width := minWordColumn
	for _, w := range words {
		width = max(width, runewidth.StringWidth(w))
	}
	return min(width, maxWordColumn)
}

func wordColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 6},
		{Title: "Word", Width: minWordColumn},
		{Title: "Count", Width: 8},
		{Title: "Starts", Width: 8},
		{Title: "Ends", Width: 8},
	}
}

func wordRows(s model.Statistics) []table.Row {
	ranked := stats.TopWords(s.WordCounts(), s.WordCounts().Len())
	rows := make([]table.Row, 0, len(ranked))
	for i, r := range ranked {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			runewidth.Truncate(r.Word, maxWordColumn, "…"),
			fmt.Sprintf("%d", r.Count),
			fmt.Sprintf("%d", s.SentenceStartCounts().Get(r.Word)),
			fmt.Sprintf("%d", s.SentenceEndCounts().Get(r.Word)),
		})
	}
	return rows
}

func transitionColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 6},
		{Title: "From", Width: minWordColumn},
		{Title: "To", Width: minWordColumn},
		{Title: "Count", Width: 8},
	}
}

func transitionRows(s model.Statistics) []table.Row {
	next := s.NextWordCounts()
	total := 0
	for _, followers := range next.All() {
		total += followers.Len()
	}
	ranked := stats.TopTransitions(next, total)
	rows := make([]table.Row, 0, len(ranked))
	for i, p := range ranked {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			runewidth.Truncate(p.From, maxWordColumn, "…"),
			runewidth.Truncate(p.To, maxWordColumn, "…"),
			fmt.Sprintf("%d", p.Count),
		})
	}
	return rows
}

// fitWordColumns widens the word columns of t to the longest word in rows.
func fitWordColumns(t *table.Model, wordCols ...int) {
	cols := t.Columns()
	for _, c := range wordCols {
		words := make([]string, 0, len(t.Rows()))
		for _, row := range t.Rows() {
			words = append(words, row[c])
		}
		cols[c].Width = wordColumnWidth(words)
	}
	t.SetColumns(cols)
}
