// Package stats renders corpus statistics as text and JSON.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/verte-zerg/corpstat/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// WordLengthHistogram returns occurrence counts indexed by word length in
// runes minus one, up to the longest word seen.
func WordLengthHistogram(s model.Statistics) []float64 {
	var hist []float64
	for word, n := range s.WordCounts().All() {
		l := utf8.RuneCountInString(word)
		for len(hist) < l {
			hist = append(hist, 0)
		}
		hist[l-1] += float64(n)
	}
	return hist
}

// RenderSummary prints the totals of one parse.
func RenderSummary(w io.Writer, s model.Statistics) error {
	lines := []string{
		"Summary",
		fmt.Sprintf("File: %s", s.SourceName()),
		fmt.Sprintf("Imported at: %s", s.ImportedAt().UTC().Format(time.RFC3339)),
		fmt.Sprintf("Total words: %d", s.TotalWords()),
		fmt.Sprintf("Total sentences: %d", s.TotalSentences()),
		fmt.Sprintf("Total paragraphs: %d", s.TotalParagraphs()),
		fmt.Sprintf("Unique words: %d", s.WordCounts().Len()),
		fmt.Sprintf("Avg word length: %.2f", s.AverageWordLength()),
	}
	if hist := WordLengthHistogram(s); len(hist) > 1 {
		lines = append(lines, fmt.Sprintf("Word lengths: [%s] 1..%d", Sparkline(hist), len(hist)))
	}
	lines = append(lines, "")
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderTopWords prints a ranked word table under title.
func RenderTopWords(w io.Writer, title string, words []Ranked) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	if len(words) == 0 {
		_, err := fmt.Fprint(w, "No words found.\n\n")
		return err
	}
	rows := make([][]string, 0, len(words))
	for i, r := range words {
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), r.Word, fmt.Sprintf("%d", r.Count)})
	}
	return writeTable(w, []string{"#", "Word", "Count"}, rows, map[int]bool{0: true, 2: true})
}

// RenderTopTransitions prints a ranked transition table under title.
func RenderTopTransitions(w io.Writer, title string, pairs []RankedPair) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	if len(pairs) == 0 {
		_, err := fmt.Fprint(w, "No transitions found.\n\n")
		return err
	}
	rows := make([][]string, 0, len(pairs))
	for i, p := range pairs {
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), p.From, p.To, fmt.Sprintf("%d", p.Count)})
	}
	return writeTable(w, []string{"#", "From", "To", "Count"}, rows, map[int]bool{0: true, 3: true})
}

func writeTable(w io.Writer, headers []string, rows [][]string, rightAlign map[int]bool) error {
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
