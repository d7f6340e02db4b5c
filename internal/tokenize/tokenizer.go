package tokenize

import (
	"strings"
	"unicode"
)

// machine is the character-at-a-time state shared by Tokenize and Scanner,
// so both paths emit identical token sequences.
type machine struct {
	word          strings.Builder
	inBoundaryRun bool

	paragraphs   int
	afterNewline bool
}

func newMachine() machine {
	return machine{paragraphs: 1}
}

func (m *machine) step(r rune, emit func(Token)) {
	if r == '\n' {
		if m.afterNewline {
			m.paragraphs++
		}
		m.afterNewline = true
		m.flush(emit)
		return
	}
	if unicode.IsSpace(r) {
		m.flush(emit)
		return
	}
	m.afterNewline = false

	if IsWordChar(r) {
		m.word.WriteRune(r)
		m.inBoundaryRun = false
		return
	}

	m.flush(emit)
	if IsSentenceEndingChar(r) {
		if !m.inBoundaryRun {
			emit(Boundary)
			m.inBoundaryRun = true
		}
		return
	}
	m.inBoundaryRun = false
}

func (m *machine) flush(emit func(Token)) {
	if m.word.Len() == 0 {
		return
	}
	emit(Word(m.word.String()))
	m.word.Reset()
}

// Tokenize converts text into words and boundary markers. Runs of sentence
// terminators separated only by whitespace collapse into one Boundary.
func Tokenize(text string) []Token {
	var tokens []Token
	if text == "" {
		return tokens
	}
	emit := func(t Token) {
		tokens = append(tokens, t)
	}
	m := newMachine()
	for _, r := range text {
		m.step(r, emit)
	}
	m.flush(emit)
	return tokens
}
