// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jtok

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"go4.org/mem"
)

// Sentinel errors wrapped by a [*LexError], for use with errors.Is.
var (
	ErrUnexpectedCharacter = errors.New("unexpected character")
	ErrUnterminatedString  = errors.New("unterminated string")
	ErrUnknownKeyword      = errors.New("unknown keyword")
)

// A LexError is the concrete type of errors reported by the scanner.
type LexError struct {
	Location LineCol
	Message  string

	err error
}

// Error satisfies the error interface.
func (e *LexError) Error() string {
	return fmt.Sprintf("at %s: %s", e.Location, e.Message)
}

// Unwrap supports error wrapping.
func (e *LexError) Unwrap() error { return e.err }

// A Scanner reads lexical tokens from an input stream. Each call to Next
// advances the scanner to the next token, or reports an error.
//
// The scanner makes a single left-to-right pass with one rune of lookahead.
// It recognizes the minimal JSON grammar: punctuation, undecoded strings,
// unsigned numbers with an optional fraction, and the constants true, false,
// and null. Escape sequences are not interpreted, and signs and exponents are
// not part of the number lexeme.
type Scanner struct {
	r   *bufio.Reader
	buf bytes.Buffer // text of current token
	tok Kind
	err error

	pos, end int // start and end offsets of current token
	last     int // size in bytes of last-read input rune

	// Apparent line and column offsets (0-based)
	pline, pcol int
	eline, ecol int
}

// NewScanner constructs a new lexical scanner that consumes input from r.
func NewScanner(r io.Reader) *Scanner {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Scanner{r: br}
}

// Tokenize consumes all the input from r and returns the complete sequence of
// tokens it produces, in document order. If the input contains a lexical
// error, Tokenize reports it and returns no tokens. An input consisting only
// of whitespace yields an empty sequence.
//
// In case of error, the concrete type of the result is [*LexError].
func Tokenize(r io.Reader) ([]Token, error) {
	s := NewScanner(r)
	var toks []Token
	for {
		if err := s.Next(); err == io.EOF {
			return toks, nil
		} else if err != nil {
			return nil, err
		}
		toks = append(toks, s.Token())
	}
}

// Next advances s to the next token of the input, or reports an error.
// At the end of the input, Next returns io.EOF.
func (s *Scanner) Next() error {
	s.buf.Reset()
	s.err = nil
	s.tok = Invalid
	s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol

	for {
		ch, err := s.rune()
		if err == io.EOF {
			return s.setErr(err)
		} else if err != nil {
			return s.fail(err, err.Error())
		}

		// Discard whitespace.
		if isSpace(ch) {
			if ch == '\n' {
				s.eline++
				s.ecol = 0
			}
			s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol
			continue
		}

		// Handle punctuation.
		if t, ok := selfDelim(ch); ok {
			s.buf.WriteRune(ch)
			s.tok = t
			return nil
		}

		// Handle numbers.
		if isDigit(ch) {
			return s.scanNumber(ch)
		}

		// Handle string values.
		if ch == '"' {
			return s.scanString()
		}

		// Handle keywords: true, false, null
		if isAlpha(ch) {
			return s.scanKeyword(ch)
		}

		return s.failf(ErrUnexpectedCharacter, "unexpected character %q", ch)
	}
}

// Token returns the current token. The result is valid until the next call of
// Next, and is not modified by the scanner thereafter.
func (s *Scanner) Token() Token {
	return Token{Kind: s.tok, Text: s.buf.String(), Loc: s.Location()}
}

// Kind returns the kind of the current token.
func (s *Scanner) Kind() Kind { return s.tok }

// Err returns the last error reported by Next.
func (s *Scanner) Err() error { return s.err }

// Text returns the lexeme of the current token. The return value is only
// valid until the next call of Next. The caller must copy the contents of the
// returned slice if it is needed beyond that.
func (s *Scanner) Text() []byte { return s.buf.Bytes() }

// Span returns the location span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.pos, End: s.end} }

// Location returns the complete location of the current token.
func (s *Scanner) Location() Location {
	return Location{
		Span:  s.Span(),
		First: LineCol{Line: s.pline + 1, Column: s.pcol},
		Last:  LineCol{Line: s.eline + 1, Column: s.ecol},
	}
}

// scanString scans the remainder of a string whose opening quote has been
// consumed. The quotes do not contribute to the token text, and the contents
// are not unescaped; a quotation mark always ends the string, even when
// preceded by a backslash.
func (s *Scanner) scanString() error {
	for {
		ch, err := s.rune()
		if err == io.EOF {
			return s.failf(ErrUnterminatedString, "unterminated string")
		} else if err != nil {
			return s.fail(err, err.Error())
		} else if ch == '"' {
			s.tok = StringLit
			return nil
		}
		s.buf.WriteRune(ch)
	}
}

// scanNumber scans the remainder of a number beginning with start, which must
// be a decimal digit. The lexeme is a run of digits with at most one decimal
// point; signs and exponents are not recognized.
func (s *Scanner) scanNumber(start rune) error {
	s.buf.WriteRune(start)

	_, ch, err := s.readWhile(isDigit)
	if err == io.EOF {
		s.tok = NumberLit
		return nil
	} else if err != nil {
		return s.fail(err, err.Error())
	}

	// If a decimal point follows, consume a fractional part. The digit run
	// after the point may be empty; the value parser accepts that form.
	if ch == '.' {
		s.buf.WriteRune(ch)
		if _, _, err := s.readWhile(isDigit); err == io.EOF {
			s.tok = NumberLit
			return nil
		} else if err != nil {
			return s.fail(err, err.Error())
		}
	}
	s.unrune()
	s.tok = NumberLit
	return nil
}

// scanKeyword scans the maximal run of letters beginning with first and
// requires it to spell one of the constants true, false, or null.
func (s *Scanner) scanKeyword(first rune) error {
	s.buf.WriteRune(first)
	if _, _, err := s.readWhile(isAlpha); err == nil {
		s.unrune()
	} else if err != io.EOF {
		return s.fail(err, err.Error())
	}

	got := mem.B(s.buf.Bytes())
	switch {
	case got.Equal(mem.S("true")):
		s.tok = True
	case got.Equal(mem.S("false")):
		s.tok = False
	case got.Equal(mem.S("null")):
		s.tok = Null
	default:
		return s.failf(ErrUnknownKeyword, "unknown keyword %q", got.StringCopy())
	}
	return nil
}

func (s *Scanner) rune() (rune, error) {
	ch, nb, err := s.r.ReadRune()
	s.last = nb
	s.end += nb
	s.ecol += nb
	return ch, err
}

func (s *Scanner) unrune() {
	s.end -= s.last
	s.ecol -= s.last
	s.last = 0
	s.r.UnreadRune()
}

// readWhile consumes runes matching f from the input until EOF or until a
// rune not matching f is found. The first non-matching rune (if any) is
// returned. It is the caller's responsibility to unread this rune, if
// desired. The int reports the number of runes consumed.
func (s *Scanner) readWhile(f func(rune) bool) (int, rune, error) {
	var nr int
	for {
		ch, err := s.rune()
		if err != nil {
			return nr, 0, err
		} else if !f(ch) {
			return nr, ch, nil
		}
		s.buf.WriteRune(ch)
		nr++
	}
}

func (s *Scanner) setErr(err error) error {
	s.err = err
	return err
}

func (s *Scanner) fail(base error, msg string) error {
	return s.setErr(&LexError{
		Location: LineCol{Line: s.eline + 1, Column: s.ecol},
		Message:  msg,
		err:      base,
	})
}

func (s *Scanner) failf(base error, msg string, args ...any) error {
	return s.fail(base, fmt.Sprintf(msg, args...))
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isDigit(ch rune) bool { return '0' <= ch && ch <= '9' }

func isAlpha(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

var self = [...]Kind{OpenObject, CloseObject, OpenArray, CloseArray, Comma, Colon}

func selfDelim(ch rune) (Kind, bool) {
	i := strings.IndexRune("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}
