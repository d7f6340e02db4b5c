package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/verte-zerg/corpstat/internal/model"
)

// WordRank selects the counter words are ranked by.
type WordRank int

const (
	RankStart WordRank = iota
	RankEnd
)

func (r WordRank) column() string {
	if r == RankEnd {
		return "end_count"
	}
	return "start_count"
}

func queryRows[T any](ctx context.Context, q querier, b squirrel.SelectBuilder, scan func(*sql.Rows) (T, error)) ([]T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort close after reading rows.
			_ = cerr
		}
	}()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanWord(rows *sql.Rows) (model.WordRow, error) {
	var w model.WordRow
	err := rows.Scan(&w.ID, &w.Text, &w.StartCount, &w.EndCount)
	return w, err
}

func scanTransition(rows *sql.Rows) (model.TransitionRow, error) {
	var t model.TransitionRow
	err := rows.Scan(&t.From, &t.To, &t.Count, &t.FollowsSentenceStart, &t.PrecedesSentenceEnd)
	return t, err
}

func (s *Store) wordsQuery() squirrel.SelectBuilder {
	return s.d.sq.Select("word_id", "word_text", "start_count", "end_count").From("words")
}

func (s *Store) transitionsQuery() squirrel.SelectBuilder {
	return s.d.sq.Select(
		"f.word_text", "t.word_text", "n.transition_count",
		"n.follows_sentence_start", "n.precedes_sentence_end",
	).
		From("next_word n").
		Join("words f ON f.word_id = n.from_word_id").
		Join("words t ON t.word_id = n.to_word_id")
}

// Words returns every stored word in id order.
func (s *Store) Words(ctx context.Context) ([]model.WordRow, error) {
	out, err := queryRows(ctx, s.db, s.wordsQuery().OrderBy("word_id"), scanWord)
	if err != nil {
		return nil, fmt.Errorf("store: list words: %w", err)
	}
	return out, nil
}

// TopWords returns up to limit words with a non-zero counter for rank,
// highest first.
func (s *Store) TopWords(ctx context.Context, rank WordRank, limit int) ([]model.WordRow, error) {
	col := rank.column()
	b := s.wordsQuery().
		Where(squirrel.Gt{col: 0}).
		OrderBy(col+" DESC", "word_text").
		Limit(uint64(max(limit, 0)))
	out, err := queryRows(ctx, s.db, b, scanWord)
	if err != nil {
		return nil, fmt.Errorf("store: top words: %w", err)
	}
	return out, nil
}

// Transitions returns every stored transition ordered by source word id.
func (s *Store) Transitions(ctx context.Context) ([]model.TransitionRow, error) {
	b := s.transitionsQuery().OrderBy("n.from_word_id", "n.to_word_id")
	out, err := queryRows(ctx, s.db, b, scanTransition)
	if err != nil {
		return nil, fmt.Errorf("store: list transitions: %w", err)
	}
	return out, nil
}

// TopTransitions returns up to limit transitions, most frequent first.
func (s *Store) TopTransitions(ctx context.Context, limit int) ([]model.TransitionRow, error) {
	b := s.transitionsQuery().
		OrderBy("n.transition_count DESC", "f.word_text", "t.word_text").
		Limit(uint64(max(limit, 0)))
	out, err := queryRows(ctx, s.db, b, scanTransition)
	if err != nil {
		return nil, fmt.Errorf("store: top transitions: %w", err)
	}
	return out, nil
}

// Imports returns up to limit import runs, most recent first.
func (s *Store) Imports(ctx context.Context, limit int) ([]model.ImportRow, error) {
	b := s.d.sq.Select(
		"id", "file_name", "imported_at", "total_words",
		"total_sentences", "total_paragraphs", "total_characters",
	).
		From("imports").
		OrderBy("imported_at DESC").
		Limit(uint64(max(limit, 0)))
	out, err := queryRows(ctx, s.db, b, func(rows *sql.Rows) (model.ImportRow, error) {
		var (
			r  model.ImportRow
			id uuid.UUID
		)
		if err := rows.Scan(&id, &r.FileName, &r.ImportedAt, &r.TotalWords,
			&r.TotalSentences, &r.TotalParagraphs, &r.TotalCharacters); err != nil {
			return r, err
		}
		r.ID = id.String()
		r.ImportedAt = r.ImportedAt.UTC()
		return r, nil
	})
	if err != nil {
		return nil, fmt.Errorf("store: list imports: %w", err)
	}
	return out, nil
}
