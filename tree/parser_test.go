// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package tree_test

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/creachadair/jtok"
	"github.com/creachadair/jtok/tree"
	"github.com/google/go-cmp/cmp"
)

func mustTokenize(t *testing.T, input string) []jtok.Token {
	t.Helper()
	toks, err := jtok.Tokenize(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Tokenize(%#q): unexpected error: %v", input, err)
	}
	return toks
}

func TestBuild(t *testing.T) {
	tests := []struct {
		input string
		want  tree.Value
	}{
		// Leaves
		{`true`, tree.Bool(true)},
		{`false`, tree.Bool(false)},
		{`null`, tree.Null{}},
		{`"hello"`, tree.String("hello")},
		{`15`, tree.Number(15)},
		{`1.25`, tree.Number(1.25)},

		// Empty collections
		{`{}`, tree.Object{}},
		{`[]`, tree.Array{}},
		{`[[[]]]`, tree.Array{tree.Array{tree.Array{}}}},

		// Composite values
		{`["a", 2, true]`, tree.Array{tree.String("a"), tree.Number(2), tree.Bool(true)}},
		{`{"a": 1, "b": [true, false, null]}`, tree.Object{
			tree.Field("a", 1),
			tree.Field("b", tree.Array{tree.Bool(true), tree.Bool(false), tree.Null{}}),
		}},
		{`{"out": {"in": [{}]}}`, tree.Object{
			tree.Field("out", tree.Object{
				tree.Field("in", tree.Array{tree.Object{}}),
			}),
		}},

		// Duplicate keys are preserved in order, not merged.
		{`{"a": 1, "a": 2}`, tree.Object{
			tree.Field("a", 1),
			tree.Field("a", 2),
		}},
	}

	for _, test := range tests {
		got, err := tree.Build(mustTokenize(t, test.input))
		if err != nil {
			t.Errorf("Build(%#q): unexpected error: %v", test.input, err)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTree: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestBuild_errors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{``, tree.ErrEndOfInput},
		{`   `, tree.ErrEndOfInput},
		{`{"a":`, tree.ErrEndOfInput},
		{`{"a": 1`, tree.ErrEndOfInput},
		{`[1, 2`, tree.ErrEndOfInput},
		{`[1,`, tree.ErrEndOfInput},
		{`{`, tree.ErrEndOfInput},

		{`,`, tree.ErrUnexpectedToken},
		{`:`, tree.ErrUnexpectedToken},
		{`}`, tree.ErrUnexpectedToken},
		{`]`, tree.ErrUnexpectedToken},
		{`{"a": }`, tree.ErrUnexpectedToken},
		{`[,]`, tree.ErrUnexpectedToken},

		{`{1: 2}`, tree.ErrExpectedStringKey},
		{`{true: 2}`, tree.ErrExpectedStringKey},
		{`{"a" 1}`, tree.ErrExpectedColon},
		{`{"a", 1}`, tree.ErrExpectedColon},
		{`{"a": 1 "b": 2}`, tree.ErrExpectedCommaOrCloseObject},
		{`{"a": 1 : 2}`, tree.ErrExpectedCommaOrCloseObject},
		{`[1 2]`, tree.ErrExpectedCommaOrCloseArray},
		{`["a" : 2]`, tree.ErrExpectedCommaOrCloseArray},

		// The strict separator rule applies to objects and arrays alike.
		{`{"a": 1,}`, tree.ErrTrailingComma},
		{`[1, 2,]`, tree.ErrTrailingComma},
		{`{"a": [1,], "b": 2}`, tree.ErrTrailingComma},
	}

	for _, test := range tests {
		got, err := tree.Build(mustTokenize(t, test.input))
		if !errors.Is(err, test.want) {
			t.Errorf("Build(%#q): got error %v, want %v", test.input, err, test.want)
		}
		if got != nil {
			t.Errorf("Build(%#q): got %v, want nil", test.input, got)
		}
		var serr *tree.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("Build(%#q): error has type %T, want *SyntaxError", test.input, err)
		}
	}
}

func TestBuild_invalidNumber(t *testing.T) {
	// The scanner never emits a number lexeme that fails to parse, so
	// construct one by hand to exercise the check.
	toks := []jtok.Token{{Kind: jtok.NumberLit, Text: "1.2.3"}}
	got, err := tree.Build(toks)
	if !errors.Is(err, tree.ErrInvalidNumber) {
		t.Errorf("Build: got error %v, want %v", err, tree.ErrInvalidNumber)
	}
	if got != nil {
		t.Errorf("Build: got %v, want nil", got)
	}
}

func TestBuild_trailingTokens(t *testing.T) {
	// Build takes one value off the front of the sequence and leaves the rest
	// alone; strictness about leftovers belongs to the caller.
	toks := mustTokenize(t, `[1, 2] "extra"`)
	got, err := tree.Build(toks)
	if err != nil {
		t.Fatalf("Build: unexpected error: %v", err)
	}
	want := tree.Array{tree.Number(1), tree.Number(2)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tree: (-want, +got)\n%s", diff)
	}
}

func TestParseSingle(t *testing.T) {
	if v, err := tree.ParseSingle(strings.NewReader(`{"a": [1]}  `)); err != nil {
		t.Errorf("ParseSingle: unexpected error: %v", err)
	} else if diff := cmp.Diff(tree.Object{tree.Field("a", tree.Array{tree.Number(1)})}, v); diff != "" {
		t.Errorf("Tree: (-want, +got)\n%s", diff)
	}

	if _, err := tree.ParseSingle(strings.NewReader(`[1, 2] "extra"`)); !errors.Is(err, tree.ErrUnexpectedToken) {
		t.Errorf("ParseSingle: got error %v, want %v", err, tree.ErrUnexpectedToken)
	}
}

func TestParse(t *testing.T) {
	const input = `{
  "name": "fortune",
  "stable": true,
  "versions": [
    {"id": 1, "tag": null},
    {"id": 2.5, "tag": "beta"}
  ]
}`
	v, err := tree.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	root, ok := v.(tree.Object)
	if !ok {
		t.Fatalf("Root is %T, not object", v)
	}
	m := root.Find("versions")
	if m == nil {
		t.Fatal(`Key "versions" not found`)
	}
	lst, ok := m.Value.(tree.Array)
	if !ok {
		t.Fatalf("Member value is %T, not array", m.Value)
	} else if len(lst) != 2 {
		t.Fatalf("Array has %d elements, want 2", len(lst))
	}
	obj, ok := lst[1].(tree.Object)
	if !ok {
		t.Fatalf("Array entry is %T, not object", lst[1])
	}
	if got := obj.Find("id"); got == nil {
		t.Error(`Key "id" not found`)
	} else if n, ok := got.Value.(tree.Number); !ok || n != 2.5 {
		t.Errorf(`Value of "id": got %v, want 2.5`, got.Value)
	}

	// A lexical error surfaces from Parse with its own type.
	if _, err := tree.Parse(strings.NewReader(`{"a": tru}`)); !errors.Is(err, jtok.ErrUnknownKeyword) {
		t.Errorf("Parse: got error %v, want %v", err, jtok.ErrUnknownKeyword)
	}
}

func TestParse_roundTrip(t *testing.T) {
	// Rendering is not part of the package contract, but a canonical
	// rendering of a parsed tree makes a usable oracle: parsing it back must
	// give a structurally equal tree.
	inputs := []string{
		`null`,
		`"whittle"`,
		`[[], {}, [{"deep": [3]}]]`,
		`{"a": 1, "b": [true, false, null], "a": "again"}`,
	}
	for _, input := range inputs {
		v, err := tree.Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("Parse(%#q): unexpected error: %v", input, err)
		}
		w, err := tree.Parse(strings.NewReader(renderJSON(v)))
		if err != nil {
			t.Fatalf("Reparse of %#q: unexpected error: %v", input, err)
		}
		if diff := cmp.Diff(v, w); diff != "" {
			t.Errorf("Input: %#q\nReparsed tree: (-orig, +reparsed)\n%s", input, diff)
		}
	}
}

// renderJSON renders v in a canonical textual form for the round-trip test.
func renderJSON(v tree.Value) string {
	var sb strings.Builder
	renderTo(&sb, v)
	return sb.String()
}

func renderTo(sb *strings.Builder, v tree.Value) {
	switch t := v.(type) {
	case tree.Object:
		sb.WriteByte('{')
		for i, m := range t {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteByte('"')
			sb.WriteString(m.Key)
			sb.WriteString(`":`)
			renderTo(sb, m.Value)
		}
		sb.WriteByte('}')
	case tree.Array:
		sb.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				sb.WriteByte(',')
			}
			renderTo(sb, e)
		}
		sb.WriteByte(']')
	case tree.String:
		sb.WriteByte('"')
		sb.WriteString(string(t))
		sb.WriteByte('"')
	case tree.Number:
		sb.WriteString(strconv.FormatFloat(float64(t), 'g', -1, 64))
	default:
		sb.WriteString(t.String()) // true, false, null
	}
}
