// Package generator synthesizes sentences from corpus statistics with a
// first-order Markov chain.
package generator

import (
	"errors"
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/verte-zerg/corpstat/internal/model"
)

// ErrEmptyChain is returned when the chain has no sentence starts.
var ErrEmptyChain = errors.New("generator: chain has no sentence starts")

// weighted is an insertion-ordered weighted choice.
type weighted struct {
	index   map[string]int
	words   []string
	weights []float64
	total   float64
}

func (w *weighted) add(word string, n float64) {
	if n <= 0 {
		return
	}
	if w.index == nil {
		w.index = map[string]int{}
	}
	i, ok := w.index[word]
	if !ok {
		i = len(w.words)
		w.index[word] = i
		w.words = append(w.words, word)
		w.weights = append(w.weights, 0)
	}
	w.weights[i] += n
	w.total += n
}

func (w *weighted) pick(rnd *rand.Rand) string {
	r := rnd.Float64() * w.total
	acc := 0.0
	for i, weight := range w.weights {
		acc += weight
		if r < acc {
			return w.words[i]
		}
	}
	return w.words[len(w.words)-1]
}

// Chain holds sentence starts, sentence ends and transitions.
type Chain struct {
	starts weighted
	ends   map[string]float64
	next   map[string]*weighted
}

// NewChain returns an empty Chain.
func NewChain() *Chain {
	return &Chain{ends: map[string]float64{}, next: map[string]*weighted{}}
}

// AddStart adds n sentence starts for word.
func (c *Chain) AddStart(word string, n int) {
	c.starts.add(word, float64(n))
}

// AddEnd adds n sentence ends for word.
func (c *Chain) AddEnd(word string, n int) {
	if n > 0 {
		c.ends[word] += float64(n)
	}
}

// AddTransition adds n occurrences of from followed by to.
func (c *Chain) AddTransition(from, to string, n int) {
	w, ok := c.next[from]
	if !ok {
		w = &weighted{}
		c.next[from] = w
	}
	w.add(to, float64(n))
}

// Empty reports whether no sentence can be generated.
func (c *Chain) Empty() bool {
	return c.starts.total == 0
}

// FromStatistics builds a Chain from one parse.
func FromStatistics(s model.Statistics) *Chain {
	c := NewChain()
	for word, n := range s.SentenceStartCounts().All() {
		c.AddStart(word, n)
	}
	for word, n := range s.SentenceEndCounts().All() {
		c.AddEnd(word, n)
	}
	for from, followers := range s.NextWordCounts().All() {
		for to, n := range followers.All() {
			c.AddTransition(from, to, n)
		}
	}
	return c
}

// FromRows builds a Chain from persisted words and transitions.
func FromRows(words []model.WordRow, transitions []model.TransitionRow) *Chain {
	c := NewChain()
	for _, w := range words {
		c.AddStart(w.Text, w.StartCount)
		c.AddEnd(w.Text, w.EndCount)
	}
	for _, t := range transitions {
		c.AddTransition(t.From, t.To, t.Count)
	}
	return c
}

// Generator walks a Chain with its own random source.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator whose output is fixed by seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Words returns the words of one sentence. After each word the walk stops
// with probability end(w) / (end(w) + out(w)), when w has no followers, or
// after maxWords words when maxWords > 0.
func (g *Generator) Words(c *Chain, maxWords int) ([]string, error) {
	if c.Empty() {
		return nil, ErrEmptyChain
	}
	word := c.starts.pick(g.rnd)
	out := []string{word}
	for maxWords <= 0 || len(out) < maxWords {
		followers, ok := c.next[word]
		if !ok || followers.total == 0 {
			break
		}
		if end := c.ends[word]; end > 0 && g.rnd.Float64()*(end+followers.total) < end {
			break
		}
		word = followers.pick(g.rnd)
		out = append(out, word)
	}
	return out, nil
}

// Sentence returns one capitalized sentence ending with a period.
func (g *Generator) Sentence(c *Chain, maxWords int) (string, error) {
	words, err := g.Words(c, maxWords)
	if err != nil {
		return "", err
	}
	words[0] = applyCaps(words[0])
	return strings.Join(words, " ") + ".", nil
}

// Sentences returns count sentences.
func (g *Generator) Sentences(c *Chain, count, maxWords int) ([]string, error) {
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		s, err := g.Sentence(c, maxWords)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, nil
}

func applyCaps(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
