package model

import (
	"time"
	"unicode/utf8"
)

// Statistics is the read-only result of one parse. Values are produced by
// Builder.Build and are never mutated afterwards.
type Statistics struct {
	sourceName string
	importedAt time.Time

	words  Counts
	starts Counts
	ends   Counts
	next   Transitions

	totalWords      int
	totalSentences  int
	totalParagraphs int
	totalCharacters int
}

// SourceName is the base name of the parsed input.
func (s Statistics) SourceName() string { return s.sourceName }

// ImportedAt is the time the parse started.
func (s Statistics) ImportedAt() time.Time { return s.importedAt }

// WordCounts counts every canonical word.
func (s Statistics) WordCounts() Counts { return s.words }

// SentenceStartCounts counts words that opened a sentence.
func (s Statistics) SentenceStartCounts() Counts { return s.starts }

// SentenceEndCounts counts words that closed a sentence.
func (s Statistics) SentenceEndCounts() Counts { return s.ends }

// NextWordCounts counts adjacent word pairs within a sentence.
func (s Statistics) NextWordCounts() Transitions { return s.next }

func (s Statistics) TotalWords() int      { return s.totalWords }
func (s Statistics) TotalSentences() int  { return s.totalSentences }
func (s Statistics) TotalParagraphs() int { return s.totalParagraphs }

// TotalCharacters is the summed rune length of all counted words.
func (s Statistics) TotalCharacters() int { return s.totalCharacters }

// AverageWordLength returns TotalCharacters/TotalWords, or 0 with no words.
func (s Statistics) AverageWordLength() float64 {
	if s.totalWords == 0 {
		return 0
	}
	return float64(s.totalCharacters) / float64(s.totalWords)
}

// Meta returns the file-level summary.
func (s Statistics) Meta() FileMeta {
	return FileMeta{
		FileName:        s.sourceName,
		TotalWords:      s.totalWords,
		TotalSentences:  s.totalSentences,
		TotalParagraphs: s.totalParagraphs,
		ImportedAt:      s.importedAt,
	}
}

// Builder accumulates Statistics during a single pass. It must not be used
// after Build.
type Builder struct {
	s      Statistics
	sealed bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) mutable() *Statistics {
	if b.sealed {
		panic("model: Builder used after Build")
	}
	return &b.s
}

// AddWord counts one occurrence of word and its characters.
func (b *Builder) AddWord(word string) {
	s := b.mutable()
	s.words.inc(word)
	s.totalWords++
	s.totalCharacters += utf8.RuneCountInString(word)
}

// AddSentenceStart records word as the first word of a sentence.
func (b *Builder) AddSentenceStart(word string) {
	b.mutable().starts.inc(word)
}

// AddSentenceEnd records word as the last word of a sentence and counts the
// sentence.
func (b *Builder) AddSentenceEnd(word string) {
	s := b.mutable()
	s.ends.inc(word)
	s.totalSentences++
}

// AddTransition records that to directly followed from.
func (b *Builder) AddTransition(from, to string) {
	b.mutable().next.inc(from, to)
}

// SetParagraphs sets the paragraph total.
func (b *Builder) SetParagraphs(n int) {
	b.mutable().totalParagraphs = n
}

// Build seals the builder and returns the finished snapshot.
func (b *Builder) Build(sourceName string, importedAt time.Time) Statistics {
	s := b.mutable()
	s.sourceName = sourceName
	s.importedAt = importedAt
	b.sealed = true
	out := *s
	b.s = Statistics{}
	return out
}
