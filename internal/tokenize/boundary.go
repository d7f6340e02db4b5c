package tokenize

import "unicode"

// IsSentenceEndingChar reports whether r terminates a sentence.
func IsSentenceEndingChar(r rune) bool {
	switch r {
	case '.', '!', '?':
		return true
	}
	return false
}

// IsBoundaryToken reports whether t is the boundary sentinel. A word whose
// text happens to equal BoundaryMarker is still a word.
func IsBoundaryToken(t Token) bool {
	return t.Kind == KindBoundary
}

// IsWordChar reports whether r can be part of a word: letters, digits,
// apostrophes and hyphens.
func IsWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '-'
}
