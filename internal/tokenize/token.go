// Package tokenize splits text into word tokens and sentence boundary markers.
package tokenize

import "fmt"

// BoundaryMarker is the display form of the boundary token.
const BoundaryMarker = "<SENTENCE_BOUNDARY>"

// Kind distinguishes word tokens from boundary markers.
type Kind uint8

const (
	KindWord Kind = iota
	KindBoundary
)

func (k Kind) String() string {
	switch k {
	case KindWord:
		return "word"
	case KindBoundary:
		return "boundary"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Token is either a raw word or the sentence boundary sentinel.
type Token struct {
	Kind Kind
	Text string
}

// Boundary is the single boundary token value.
var Boundary = Token{Kind: KindBoundary, Text: BoundaryMarker}

// Word returns a word token carrying the raw text.
func Word(text string) Token {
	return Token{Kind: KindWord, Text: text}
}

func (t Token) String() string {
	if t.Kind == KindBoundary {
		return BoundaryMarker
	}
	return t.Text
}
