// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package jtok

import "fmt"

// Kind is the type of a lexical token in the JSON grammar.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid     Kind = iota // invalid token
	OpenObject              // open brace "{"
	CloseObject             // close brace "}"
	OpenArray               // open bracket "["
	CloseArray              // close bracket "]"
	StringLit               // quoted string
	NumberLit               // number: digits with optional fraction
	True                    // constant: true
	False                   // constant: false
	Null                    // constant: null
	Colon                   // colon ":"
	Comma                   // comma ","
)

var kindStr = [...]string{
	Invalid:     "invalid token",
	OpenObject:  `"{"`,
	CloseObject: `"}"`,
	OpenArray:   `"["`,
	CloseArray:  `"]"`,
	StringLit:   "string",
	NumberLit:   "number",
	True:        "true",
	False:       "false",
	Null:        "null",
	Colon:       `":"`,
	Comma:       `","`,
}

func (k Kind) String() string {
	v := int(k)
	if v >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[v]
}

// A Token is a single lexical unit of the input. Tokens are produced by the
// scanner in document order and are not modified once emitted.
//
// Text holds the exact lexeme matched: for StringLit the contents between the
// quotation marks, undecoded; for NumberLit the digit text; for the remaining
// kinds the literal spelling of the token.
type Token struct {
	Kind Kind
	Text string
	Loc  Location
}

func (t Token) String() string {
	switch t.Kind {
	case StringLit:
		return fmt.Sprintf("string %q", t.Text)
	case NumberLit:
		return "number " + t.Text
	}
	return t.Kind.String()
}
