// Package model defines shared data structures.
package model

import "time"

// FileMeta summarizes one parsed input.
type FileMeta struct {
	FileName        string
	TotalWords      int
	TotalSentences  int
	TotalParagraphs int
	ImportedAt      time.Time
}

// WordRow is a persisted word with its sentence position counters.
type WordRow struct {
	ID         int64
	Text       string
	StartCount int
	EndCount   int
}

// TransitionRow is a persisted word-to-word transition.
type TransitionRow struct {
	From                 string
	To                   string
	Count                int
	FollowsSentenceStart bool
	PrecedesSentenceEnd  bool
}

// ImportRow records one committed import run.
type ImportRow struct {
	ID              string
	FileName        string
	ImportedAt      time.Time
	TotalWords      int
	TotalSentences  int
	TotalParagraphs int
	TotalCharacters int
}
