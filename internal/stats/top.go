package stats

import (
	"slices"

	"github.com/verte-zerg/corpstat/internal/model"
)

// Ranked is a word with its count.
type Ranked struct {
	Word  string
	Count int
}

// RankedPair is a transition with its count.
type RankedPair struct {
	From  string
	To    string
	Count int
}

// TopWords returns the n most frequent entries of counts. Ties keep
// first-seen order.
func TopWords(counts model.Counts, n int) []Ranked {
	if n <= 0 || counts.Len() == 0 {
		return nil
	}
	items := make([]Ranked, 0, counts.Len())
	for word, c := range counts.All() {
		items = append(items, Ranked{Word: word, Count: c})
	}
	slices.SortStableFunc(items, func(a, b Ranked) int {
		return b.Count - a.Count
	})
	return items[:min(n, len(items))]
}

// TopTransitions returns the n most frequent word pairs. Ties keep
// first-seen order of the source word, then of the follower.
func TopTransitions(next model.Transitions, n int) []RankedPair {
	if n <= 0 || next.Len() == 0 {
		return nil
	}
	var items []RankedPair
	for from, followers := range next.All() {
		for to, c := range followers.All() {
			items = append(items, RankedPair{From: from, To: to, Count: c})
		}
	}
	slices.SortStableFunc(items, func(a, b RankedPair) int {
		return b.Count - a.Count
	})
	return items[:min(n, len(items))]
}
