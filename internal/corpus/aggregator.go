// Package corpus turns a token stream into corpus statistics.
package corpus

import (
	"context"
	"fmt"
	"time"

	"github.com/verte-zerg/corpstat/internal/model"
	"github.com/verte-zerg/corpstat/internal/normalize"
	"github.com/verte-zerg/corpstat/internal/tokenize"
)

type wordID struct {
	id  int64
	set bool
}

func (w wordID) is(other wordID) bool {
	return w.set && other.set && w.id == other.id
}

// Aggregator is the sentence-scoped state machine. It consumes tokens in
// order, counts words, sentence starts and ends, and within-sentence
// transitions. It is owned by a single goroutine for the whole pass.
type Aggregator struct {
	norm    *normalize.Normalizer
	builder *model.Builder
	rec     Recorder

	expectingSentenceStart bool
	sentenceHasWords       bool
	previousWord           string
	lastWordInSentence     string

	prevID     wordID
	startID    wordID
	lastID     wordID
	lastFromID wordID
	lastToID   wordID
}

// NewAggregator returns an Aggregator. rec may be nil.
func NewAggregator(rec Recorder) *Aggregator {
	return &Aggregator{
		norm:                   normalize.New(),
		builder:                model.NewBuilder(),
		rec:                    rec,
		expectingSentenceStart: true,
	}
}

// Add processes one token.
func (a *Aggregator) Add(ctx context.Context, tok tokenize.Token) error {
	if tokenize.IsBoundaryToken(tok) {
		return a.endSentence(ctx)
	}
	word := a.norm.Normalize(tok.Text)
	if word == "" {
		return nil
	}
	return a.addWord(ctx, word)
}

// Finish handles end of input as an implicit boundary, so an unterminated
// final sentence is still counted.
func (a *Aggregator) Finish(ctx context.Context) error {
	return a.endSentence(ctx)
}

// Statistics seals the accumulated counts into a snapshot.
func (a *Aggregator) Statistics(sourceName string, importedAt time.Time, paragraphs int) model.Statistics {
	a.builder.SetParagraphs(paragraphs)
	return a.builder.Build(sourceName, importedAt)
}

func (a *Aggregator) addWord(ctx context.Context, word string) error {
	var id wordID
	if a.rec != nil {
		n, err := a.rec.GetOrCreateWordID(ctx, word)
		if err != nil {
			return persistErr("get or create word id", err)
		}
		id = wordID{id: n, set: true}
	}

	a.builder.AddWord(word)

	if a.expectingSentenceStart {
		a.builder.AddSentenceStart(word)
		a.expectingSentenceStart = false
		if a.rec != nil {
			if err := a.rec.IncrementStartCount(ctx, id.id); err != nil {
				return persistErr("increment start count", err)
			}
			a.startID = id
		}
	}

	if a.previousWord != "" {
		a.builder.AddTransition(a.previousWord, word)
	}
	if a.rec != nil && a.prevID.set {
		followsStart := a.prevID.is(a.startID)
		if err := a.rec.UpsertTransition(ctx, a.prevID.id, id.id, followsStart, false); err != nil {
			return persistErr("upsert transition", err)
		}
		a.lastFromID = a.prevID
		a.lastToID = id
	}

	a.previousWord = word
	a.lastWordInSentence = word
	a.sentenceHasWords = true
	a.prevID = id
	a.lastID = id
	return nil
}

func (a *Aggregator) endSentence(ctx context.Context) error {
	if a.sentenceHasWords {
		a.builder.AddSentenceEnd(a.lastWordInSentence)
		if a.rec != nil {
			if a.lastID.set {
				if err := a.rec.IncrementEndCount(ctx, a.lastID.id); err != nil {
					return persistErr("increment end count", err)
				}
			}
			if a.lastFromID.set && a.lastToID.set {
				if err := a.rec.MarkPrecedesSentenceEnd(ctx, a.lastFromID.id, a.lastToID.id); err != nil {
					return persistErr("mark sentence end", err)
				}
			}
		}
	}

	a.expectingSentenceStart = true
	a.sentenceHasWords = false
	a.previousWord = ""
	a.lastWordInSentence = ""
	a.prevID = wordID{}
	a.startID = wordID{}
	a.lastID = wordID{}
	a.lastFromID = wordID{}
	a.lastToID = wordID{}
	return nil
}

func persistErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}
