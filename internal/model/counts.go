package model

import "iter"

// Counts is a word counter that remembers first-seen key order.
type Counts struct {
	keys []string
	m    map[string]int
}

func (c *Counts) inc(word string) {
	if c.m == nil {
		c.m = map[string]int{}
	}
	if _, ok := c.m[word]; !ok {
		c.keys = append(c.keys, word)
	}
	c.m[word]++
}

// Get returns the count for word, zero when absent.
func (c Counts) Get(word string) int {
	return c.m[word]
}

// Len returns the number of distinct words.
func (c Counts) Len() int {
	return len(c.keys)
}

// Sum returns the total of all counts.
func (c Counts) Sum() int {
	total := 0
	for _, n := range c.m {
		total += n
	}
	return total
}

// Keys returns the words in first-seen order.
func (c Counts) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// All iterates words and counts in first-seen order.
func (c Counts) All() iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		for _, k := range c.keys {
			if !yield(k, c.m[k]) {
				return
			}
		}
	}
}

// Transitions maps a word to the counts of the words that follow it.
type Transitions struct {
	keys []string
	m    map[string]*Counts
}

func (t *Transitions) inc(from, to string) {
	if t.m == nil {
		t.m = map[string]*Counts{}
	}
	next, ok := t.m[from]
	if !ok {
		next = &Counts{}
		t.m[from] = next
		t.keys = append(t.keys, from)
	}
	next.inc(to)
}

// Get returns how often to directly followed from within a sentence.
func (t Transitions) Get(from, to string) int {
	next, ok := t.m[from]
	if !ok {
		return 0
	}
	return next.Get(to)
}

// Next returns the followers of from; the zero Counts when none.
func (t Transitions) Next(from string) Counts {
	next, ok := t.m[from]
	if !ok {
		return Counts{}
	}
	return *next
}

// Len returns the number of distinct source words.
func (t Transitions) Len() int {
	return len(t.keys)
}

// Keys returns the source words in first-seen order.
func (t Transitions) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// All iterates source words and their followers in first-seen order.
func (t Transitions) All() iter.Seq2[string, Counts] {
	return func(yield func(string, Counts) bool) {
		for _, k := range t.keys {
			if !yield(k, *t.m[k]) {
				return
			}
		}
	}
}
