package tokenize

import (
	"bufio"
	"errors"
	"io"
)

// Scanner tokenizes a reader incrementally, one rune at a time, and counts
// paragraphs along the way. It follows the bufio.Scanner calling pattern.
type Scanner struct {
	r       *bufio.Reader
	m       machine
	pending []Token
	tok     Token
	err     error
	done    bool
	read    int64
	emitted int
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{
		r: bufio.NewReader(r),
		m: newMachine(),
	}
}

// Scan advances to the next token. It returns false at end of input or on a
// read error; Err distinguishes the two.
func (s *Scanner) Scan() bool {
	for len(s.pending) == 0 {
		if s.done {
			return false
		}
		r, size, err := s.r.ReadRune()
		if err != nil {
			s.done = true
			if !errors.Is(err, io.EOF) {
				s.err = err
				return false
			}
			s.m.flush(s.push)
			continue
		}
		s.read += int64(size)
		s.m.step(r, s.push)
	}
	s.tok = s.pending[0]
	s.pending = s.pending[1:]
	s.emitted++
	return true
}

func (s *Scanner) push(t Token) {
	s.pending = append(s.pending, t)
}

// Token returns the token produced by the last successful Scan.
func (s *Scanner) Token() Token {
	return s.tok
}

// Err returns the first non-EOF read error.
func (s *Scanner) Err() error {
	return s.err
}

// Paragraphs returns the paragraph count seen so far: one plus the number of
// newlines that directly follow a newline, ignoring other whitespace between.
func (s *Scanner) Paragraphs() int {
	return s.m.paragraphs
}

// BytesRead returns the number of input bytes consumed.
func (s *Scanner) BytesRead() int64 {
	return s.read
}

// Tokens returns the number of tokens emitted so far.
func (s *Scanner) Tokens() int {
	return s.emitted
}
