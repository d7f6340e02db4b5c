// Package normalize maps raw word tokens to their canonical form.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/verte-zerg/corpstat/internal/tokenize"
)

// Normalizer trims non-word characters from both ends of a token and
// lowercases it without regard to locale. A Normalizer is not safe for
// concurrent use.
type Normalizer struct {
	lower cases.Caser
}

// New returns a Normalizer.
func New() *Normalizer {
	return &Normalizer{lower: cases.Lower(language.Und)}
}

// Normalize returns the canonical form of raw, or "" when nothing but
// punctuation remains after trimming.
func (n *Normalizer) Normalize(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	trimmed := strings.TrimFunc(raw, isStripChar)
	if trimmed == "" {
		return ""
	}
	return n.lower.String(trimmed)
}

// Token normalizes a word token. Boundary tokens pass through unchanged.
func (n *Normalizer) Token(t tokenize.Token) tokenize.Token {
	if tokenize.IsBoundaryToken(t) {
		return t
	}
	return tokenize.Word(n.Normalize(t.Text))
}

func isStripChar(r rune) bool {
	return !tokenize.IsWordChar(r)
}
