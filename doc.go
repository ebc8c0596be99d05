// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package jtok implements a lexical scanner for a minimal JSON grammar.
//
// # Scanning
//
// The Scanner type implements a lexical scanner. Construct a scanner from an
// io.Reader and call its Next method to iterate over the stream. Next
// advances to the next input token and returns nil, or reports an error:
//
//	s := jtok.NewScanner(input)
//	for s.Next() == nil {
//	   log.Printf("Next token: %v", s.Token())
//	}
//
// Next returns io.EOF when the input has been fully consumed. Any other error
// indicates an I/O or lexical error in the input, and has concrete type
// [*LexError] when it is lexical:
//
//	if s.Err() != io.EOF {
//	   log.Fatalf("Scanning failed: %v", s.Err())
//	}
//
// To materialize the whole token sequence at once, use Tokenize:
//
//	toks, err := jtok.Tokenize(input)
//
// Tokenize is all-or-nothing: the first error abandons the pass and no
// partial sequence is returned.
//
// # Grammar
//
// The grammar recognized here is deliberately smaller than RFC 8259 JSON.
// Strings are taken verbatim between quotation marks with no escape
// processing, and numbers are unsigned digit runs with an optional fraction,
// with no exponent. Inputs that need either are outside the scope of this
// package.
//
// Tokens carry their kind, lexeme, and source location. A token sequence is
// exclusively owned by its caller: the scanner keeps no state across calls to
// Tokenize, and separate documents may be scanned concurrently with separate
// scanners.
//
// The tree subpackage consumes a token sequence and builds a syntax tree.
package jtok
