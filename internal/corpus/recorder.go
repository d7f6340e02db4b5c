package corpus

import (
	"context"

	"github.com/verte-zerg/corpstat/internal/model"
)

// Recorder mirrors aggregation events into an external store. Every call
// made during one parse belongs to the same transaction.
type Recorder interface {
	// GetOrCreateWordID returns the id for word, inserting it when new.
	// It must be safe against concurrent inserts of the same word.
	GetOrCreateWordID(ctx context.Context, word string) (int64, error)
	IncrementStartCount(ctx context.Context, wordID int64) error
	IncrementEndCount(ctx context.Context, wordID int64) error
	// UpsertTransition increments the from->to counter. On conflict the
	// boolean flags are OR-ed into the stored ones.
	UpsertTransition(ctx context.Context, fromID, toID int64, followsSentenceStart, precedesSentenceEnd bool) error
	// MarkPrecedesSentenceEnd flags the final transition of a sentence.
	MarkPrecedesSentenceEnd(ctx context.Context, fromID, toID int64) error
}

// ImportRecorder is implemented by recorders that also keep a log of
// completed imports.
type ImportRecorder interface {
	RecordImport(ctx context.Context, stats model.Statistics) error
}

// Store opens one all-or-nothing transaction per parsed input. If fn
// returns an error nothing written through rec survives.
type Store interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, rec Recorder) error) error
}
