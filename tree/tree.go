// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package tree defines a syntax tree for JSON values, and a builder that
// constructs trees from the token sequences produced by the jtok scanner.
package tree

import (
	"fmt"
	"strconv"
)

// A Value is an arbitrary JSON value.
//
// The concrete types of a Value are [Object], [Array], [String], [Number],
// [Bool], and [Null]. A value is fully constructed before it is returned by
// the builder, contains no cycles, and is exclusively owned by its caller;
// nothing in this package retains or modifies a value after returning it.
type Value interface {
	String() string
}

// An Object is an ordered collection of key-value members.
//
// Keys are not required to be unique; duplicates are preserved in document
// order rather than merged or rejected.
type Object []*Member

// Find returns the first member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	for _, m := range o {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// Len returns the number of members of o.
func (o Object) Len() int { return len(o) }

func (o Object) String() string { return fmt.Sprintf("Object(len=%d)", len(o)) }

// A Member is a single key-value pair belonging to an Object. The key is the
// undecoded text of the string token it was built from.
type Member struct {
	Key   string
	Value Value
}

func (m *Member) String() string { return fmt.Sprintf("Member(key=%q)", m.Key) }

// An Array is an ordered sequence of values.
type Array []Value

// Len returns the number of elements of a.
func (a Array) Len() int { return len(a) }

func (a Array) String() string { return fmt.Sprintf("Array(len=%d)", len(a)) }

// A String is a string value. Its content is the token lexeme, verbatim; no
// escape sequences are interpreted.
type String string

func (s String) String() string { return strconv.Quote(string(s)) }

// Len returns the length of the string in bytes.
func (s String) Len() int { return len(s) }

// A Number is a numeric value, stored in double precision.
type Number float64

func (n Number) String() string { return strconv.FormatFloat(float64(n), 'g', -1, 64) }

// A Bool is a Boolean constant, true or false.
type Bool bool

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Null represents the JSON null constant.
type Null struct{}

func (Null) String() string { return "null" }

// ToValue converts a plain Go value into a tree Value. It panics if v does
// not have one of the supported types:
//
//	nil           Null
//	bool          Bool
//	string        String
//	int, float64  Number
//	Value         itself
func ToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null{}
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case int:
		return Number(t)
	case float64:
		return Number(t)
	case Value:
		return t
	}
	panic(fmt.Sprintf("invalid value %T", v))
}

// Field constructs an object member with the given key and value.
// The value must be a type supported by [ToValue].
func Field(key string, value any) *Member {
	return &Member{Key: key, Value: ToValue(value)}
}
