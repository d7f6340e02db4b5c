package store

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/verte-zerg/corpstat/internal/corpus"
	"github.com/verte-zerg/corpstat/internal/model"
)

const upsertTransitionSuffix = `ON CONFLICT (from_word_id, to_word_id) DO UPDATE SET
	transition_count = next_word.transition_count + 1,
	follows_sentence_start = next_word.follows_sentence_start OR excluded.follows_sentence_start,
	precedes_sentence_end = next_word.precedes_sentence_end OR excluded.precedes_sentence_end`

// txRecorder mirrors aggregation events into one open transaction.
type txRecorder struct {
	q   querier
	sq  squirrel.StatementBuilderType
	ids map[string]int64
}

var (
	_ corpus.Recorder       = (*txRecorder)(nil)
	_ corpus.ImportRecorder = (*txRecorder)(nil)
)

func (r *txRecorder) exec(ctx context.Context, op string, b squirrel.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("store: %s: build query: %w", op, err)
	}
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("store: %s: %w", op, err)
	}
	return nil
}

// GetOrCreateWordID inserts word unless it exists and returns its id. The
// insert ignores conflicts, so a concurrent writer inserting the same word
// is resolved by the follow-up select.
func (r *txRecorder) GetOrCreateWordID(ctx context.Context, word string) (int64, error) {
	if id, ok := r.ids[word]; ok {
		return id, nil
	}

	insert := r.sq.Insert("words").
		Columns("word_text").
		Values(word).
		Suffix("ON CONFLICT (word_text) DO NOTHING")
	if err := r.exec(ctx, "insert word", insert); err != nil {
		return 0, err
	}

	query, args, err := r.sq.Select("word_id").
		From("words").
		Where(squirrel.Eq{"word_text": word}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("store: select word: build query: %w", err)
	}
	var id int64
	if err := r.q.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("store: select word %q: %w", word, err)
	}
	r.ids[word] = id
	return id, nil
}

func (r *txRecorder) IncrementStartCount(ctx context.Context, wordID int64) error {
	return r.exec(ctx, "increment start count", r.sq.Update("words").
		Set("start_count", squirrel.Expr("start_count + 1")).
		Where(squirrel.Eq{"word_id": wordID}))
}

func (r *txRecorder) IncrementEndCount(ctx context.Context, wordID int64) error {
	return r.exec(ctx, "increment end count", r.sq.Update("words").
		Set("end_count", squirrel.Expr("end_count + 1")).
		Where(squirrel.Eq{"word_id": wordID}))
}

func (r *txRecorder) UpsertTransition(ctx context.Context, fromID, toID int64, followsSentenceStart, precedesSentenceEnd bool) error {
	return r.exec(ctx, "upsert transition", r.sq.Insert("next_word").
		Columns("from_word_id", "to_word_id", "transition_count", "follows_sentence_start", "precedes_sentence_end").
		Values(fromID, toID, 1, followsSentenceStart, precedesSentenceEnd).
		Suffix(upsertTransitionSuffix))
}

func (r *txRecorder) MarkPrecedesSentenceEnd(ctx context.Context, fromID, toID int64) error {
	return r.exec(ctx, "mark sentence end", r.sq.Update("next_word").
		Set("precedes_sentence_end", true).
		Where(squirrel.Eq{"from_word_id": fromID, "to_word_id": toID}))
}

// RecordImport stores the totals of a finished parse.
func (r *txRecorder) RecordImport(ctx context.Context, stats model.Statistics) error {
	return r.exec(ctx, "record import", r.sq.Insert("imports").
		Columns("id", "file_name", "imported_at", "total_words", "total_sentences", "total_paragraphs", "total_characters").
		Values(
			uuid.New(),
			stats.SourceName(),
			stats.ImportedAt().UTC(),
			stats.TotalWords(),
			stats.TotalSentences(),
			stats.TotalParagraphs(),
			stats.TotalCharacters(),
		))
}
