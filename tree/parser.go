// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package tree

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/creachadair/jtok"
)

// Sentinel errors wrapped by a [*SyntaxError], for use with errors.Is.
var (
	ErrEndOfInput                 = errors.New("unexpected end of input")
	ErrUnexpectedToken            = errors.New("unexpected token")
	ErrExpectedStringKey          = errors.New("expected string key")
	ErrExpectedColon              = errors.New("expected colon")
	ErrExpectedCommaOrCloseObject = errors.New(`expected "," or "}"`)
	ErrExpectedCommaOrCloseArray  = errors.New(`expected "," or "]"`)
	ErrTrailingComma              = errors.New("trailing comma")
	ErrInvalidNumber              = errors.New("invalid number")
)

// A SyntaxError is the concrete type of errors reported by the builder.
// Offset is the index of the offending token in the input sequence, or the
// length of the sequence if the input ended early.
type SyntaxError struct {
	Offset  int
	Message string

	err error
}

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("at token %d: %s", e.Offset, e.Message)
}

// Unwrap supports error wrapping.
func (e *SyntaxError) Unwrap() error { return e.err }

// Build constructs the syntax tree of a single value from the front of
// tokens. The grammar is applied with one token of lookahead; recursion depth
// is bounded by the nesting depth of the input.
//
// Build neither requires nor rejects tokens remaining after a complete value.
// A caller that wants strict single-document behavior must check for
// leftovers itself, or use [ParseSingle]. In case of error the concrete type
// of the result is [*SyntaxError], and no partial tree is returned.
func Build(tokens []jtok.Token) (Value, error) {
	b := &builder{toks: tokens}
	return b.parseValue()
}

// Parse tokenizes the input from r and builds the tree of the first value on
// it, composing [jtok.Tokenize] and [Build]. The error is a [*jtok.LexError]
// or a [*SyntaxError] depending on the stage that failed.
func Parse(r io.Reader) (Value, error) {
	toks, err := jtok.Tokenize(r)
	if err != nil {
		return nil, err
	}
	return Build(toks)
}

// ParseSingle parses a single value comprising the entire input from r.
// Unlike Parse, it reports an error if the input contains any tokens after
// the first value.
func ParseSingle(r io.Reader) (Value, error) {
	toks, err := jtok.Tokenize(r)
	if err != nil {
		return nil, err
	}
	b := &builder{toks: toks}
	v, err := b.parseValue()
	if err != nil {
		return nil, err
	}
	if tok, ok := b.peek(); ok {
		return nil, b.failf(ErrUnexpectedToken, "trailing %v after value", tok)
	}
	return v, nil
}

// A builder is a cursor over a token sequence. The token at offset pos is the
// lookahead; tokens before it have been consumed.
type builder struct {
	toks []jtok.Token
	pos  int
}

// peek reports the lookahead token without consuming it.
func (b *builder) peek() (jtok.Token, bool) {
	if b.pos < len(b.toks) {
		return b.toks[b.pos], true
	}
	return jtok.Token{}, false
}

// parseValue parses a single value of any type.
func (b *builder) parseValue() (Value, error) {
	tok, ok := b.peek()
	if !ok {
		return nil, b.failf(ErrEndOfInput, "unexpected end of input")
	}
	switch tok.Kind {
	case jtok.OpenObject:
		return b.parseObject()
	case jtok.OpenArray:
		return b.parseArray()
	case jtok.StringLit, jtok.NumberLit, jtok.True, jtok.False, jtok.Null:
		return b.parseLeaf()
	default:
		return nil, b.failf(ErrUnexpectedToken, "unexpected %v in value position", tok)
	}
}

// parseLeaf consumes a single token and returns the corresponding leaf value.
// Precondition: the lookahead is a string, number, or constant.
func (b *builder) parseLeaf() (Value, error) {
	tok, _ := b.peek()
	b.pos++
	switch tok.Kind {
	case jtok.True:
		return Bool(true), nil
	case jtok.False:
		return Bool(false), nil
	case jtok.Null:
		return Null{}, nil
	case jtok.StringLit:
		return String(tok.Text), nil
	default:
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			b.pos--
			return nil, b.failf(ErrInvalidNumber, "invalid number %q", tok.Text)
		}
		return Number(v), nil
	}
}

// parseObject parses an object.
// Precondition: the lookahead is OpenObject.
func (b *builder) parseObject() (Value, error) {
	b.pos++ // consume "{"

	obj := Object{}
	if tok, ok := b.peek(); ok && tok.Kind == jtok.CloseObject {
		b.pos++
		return obj, nil // empty object
	}
	for {
		// Parse a single member: "key": value
		key, ok := b.peek()
		if !ok {
			return nil, b.failf(ErrEndOfInput, "unexpected end of input in object")
		} else if key.Kind != jtok.StringLit {
			return nil, b.failf(ErrExpectedStringKey, "expected string key, got %v", key)
		}
		b.pos++
		if c, ok := b.peek(); !ok {
			return nil, b.failf(ErrEndOfInput, "unexpected end of input in object")
		} else if c.Kind != jtok.Colon {
			return nil, b.failf(ErrExpectedColon, `expected ":", got %v`, c)
		}
		b.pos++
		val, err := b.parseValue()
		if err != nil {
			return nil, err
		}
		obj = append(obj, &Member{Key: key.Text, Value: val})

		// Check whether we have more members (",") or are done ("}").
		sep, ok := b.peek()
		if !ok {
			return nil, b.failf(ErrEndOfInput, "unexpected end of input in object")
		}
		switch sep.Kind {
		case jtok.CloseObject:
			b.pos++
			return obj, nil // end of object
		case jtok.Comma:
			b.pos++
			if tok, ok := b.peek(); ok && tok.Kind == jtok.CloseObject {
				return nil, b.failf(ErrTrailingComma, "trailing comma before %v", tok)
			}
		default:
			return nil, b.failf(ErrExpectedCommaOrCloseObject, `expected "," or "}", got %v`, sep)
		}
	}
}

// parseArray parses an array.
// Precondition: the lookahead is OpenArray.
func (b *builder) parseArray() (Value, error) {
	b.pos++ // consume "["

	arr := Array{}
	if tok, ok := b.peek(); ok && tok.Kind == jtok.CloseArray {
		b.pos++
		return arr, nil // empty array
	}
	for {
		val, err := b.parseValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)

		// Check whether we have more elements (",") or are done ("]").
		sep, ok := b.peek()
		if !ok {
			return nil, b.failf(ErrEndOfInput, "unexpected end of input in array")
		}
		switch sep.Kind {
		case jtok.CloseArray:
			b.pos++
			return arr, nil // end of array
		case jtok.Comma:
			b.pos++
			if tok, ok := b.peek(); ok && tok.Kind == jtok.CloseArray {
				return nil, b.failf(ErrTrailingComma, "trailing comma before %v", tok)
			}
		default:
			return nil, b.failf(ErrExpectedCommaOrCloseArray, `expected "," or "]", got %v`, sep)
		}
	}
}

func (b *builder) failf(base error, msg string, args ...any) error {
	return &SyntaxError{
		Offset:  b.pos,
		Message: fmt.Sprintf(msg, args...),
		err:     base,
	}
}
