/*
 * SearchQuery
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package parser

import (
	"strings"
	"testing"
)

func TestMatchers(t *testing.T) {

	m := MustRegexpMatcher("a|ab|abc")

	if res := m.Match("abcd"); res != 3 {
		t.Error("Unexpected result:", res)
		return
	}

	if res := m.Match("xabc"); res != -1 {
		t.Error("Unexpected result:", res)
		return
	}

	if m.String() != "a|ab|abc" {
		t.Error("Unexpected result:", m)
		return
	}

	if _, err := NewRegexpMatcher("a("); err == nil {
		t.Error("Invalid expression should not compile")
		return
	}

	wm := NewWordListMatcher("<", "", "<=", "=")

	if res := wm.Match("<=5"); res != 2 {
		t.Error("Unexpected result:", res)
		return
	}

	if res := wm.Match("<5"); res != 1 {
		t.Error("Unexpected result:", res)
		return
	}

	if res := wm.Match("5"); res != -1 {
		t.Error("Unexpected result:", res)
		return
	}

	if wm.String() != "<=|<|=" {
		t.Error("Unexpected result:", wm)
		return
	}

	fm := MatcherFunc(func(input string) int {
		return strings.IndexByte(input, '!')
	})

	if res := fm.Match("ab!"); res != 2 {
		t.Error("Unexpected result:", res)
		return
	}
}

func TestDefaultPatterns(t *testing.T) {
	p := DefaultPatterns()

	if err := p.Validate(); err != nil {
		t.Error(err)
		return
	}

	for _, test := range []struct {
		m     Matcher
		input string
		res   int
	}{
		{p.Term, "abc def", 3},
		{p.Term, "a(b)", 1},
		{p.Term, "(b)", -1},
		{p.Field, "foo_1:x", 5},
		{p.Field, "-x", -1},
		{p.Operator, "==x", 2},
		{p.Operator, "!x", -1},
		{p.OperatorNoField, "<x", -1},
		{p.OperatorNoField, "!~x", 2},
		{p.And, "UND", 3},
		{p.Or, "OU", 2},
		{p.Not, "PAS", 3},
		{p.Not, "not", -1},
	} {
		if res := test.m.Match(test.input); res != test.res {
			t.Error("Unexpected match result for", test.input, ":", res, "expected was:", test.res)
			return
		}
	}
}

func TestNewPatterns(t *testing.T) {

	p, err := NewPatterns(map[string]string{
		PatternTerm: `\w+`,
		PatternNot:  "",
	})
	if err != nil {
		t.Error(err)
		return
	}

	if res := p.Term.Match("ab-c"); res != 2 {
		t.Error("Unexpected result:", res)
		return
	}

	if res := p.Not.Match("NOT"); res != 3 {
		t.Error("Unexpected result:", res)
		return
	}

	_, err = NewPatterns(map[string]string{
		"foo": "x",
	})

	if err == nil || err.Error() != "Invalid pattern: unknown pattern foo" {
		t.Error(err)
		return
	}

	_, err = NewPatterns(map[string]string{
		PatternField: "a(",
	})

	if err == nil || !strings.HasPrefix(err.Error(), "Invalid pattern: field: error parsing regexp") {
		t.Error(err)
		return
	}

	p, err = NewPatterns(map[string]string{
		PatternOr: "x*",
	})

	if p != nil || err == nil || err.Error() != "Invalid pattern: or matches the empty string" {
		t.Error(p, err)
		return
	}

	p = DefaultPatterns()
	p.And = nil

	if err := p.Validate(); err == nil || err.Error() != "Invalid pattern: and is not set" {
		t.Error(err)
		return
	}

	if _, err := NewParser(p); err == nil {
		t.Error("Invalid patterns should not be accepted")
		return
	}

	if _, err := NewPatterns(map[string]string{"foo": "x"}); !strings.Contains(err.Error(), ErrInvalidPattern.Error()) {
		t.Error(err)
		return
	}
}
