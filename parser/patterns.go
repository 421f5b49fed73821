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
	"fmt"
	"regexp"
	"sort"
	"strings"

	"devt.de/krotik/common/errorutil"
)

/*
Matcher recognizes a prefix of a given input.
*/
type Matcher interface {

	/*
	   Match returns the length (in bytes) of the prefix of input which is
	   recognized by this matcher or -1 if there is no match.
	*/
	Match(input string) int
}

/*
MatcherFunc is an adapter to use ordinary functions as Matcher.
*/
type MatcherFunc func(input string) int

/*
Match calls f(input).
*/
func (f MatcherFunc) Match(input string) int {
	return f(input)
}

/*
RegexpMatcher is a Matcher which uses a regular expression. The expression
is anchored at the start of the input and prefers the longest match.
*/
type RegexpMatcher struct {
	Source string // Source of the regular expression
	re     *regexp.Regexp
}

/*
NewRegexpMatcher creates a new RegexpMatcher from a given expression.
*/
func NewRegexpMatcher(expr string) (*RegexpMatcher, error) {
	re, err := regexp.Compile(`^(?:` + expr + `)`)
	if err != nil {
		return nil, err
	}

	re.Longest()

	return &RegexpMatcher{expr, re}, nil
}

/*
MustRegexpMatcher is like NewRegexpMatcher but panics if the expression
cannot be compiled.
*/
func MustRegexpMatcher(expr string) *RegexpMatcher {
	m, err := NewRegexpMatcher(expr)
	errorutil.AssertOk(err)
	return m
}

/*
Match returns the length of the longest prefix matching the expression.
*/
func (m *RegexpMatcher) Match(input string) int {
	if loc := m.re.FindStringIndex(input); loc != nil {
		return loc[1]
	}
	return -1
}

/*
String returns the source of the regular expression.
*/
func (m *RegexpMatcher) String() string {
	return m.Source
}

/*
WordListMatcher is a Matcher which recognizes a fixed set of spellings.
Longer spellings are always tried first.
*/
type WordListMatcher struct {
	Words []string
}

/*
NewWordListMatcher creates a new WordListMatcher.
*/
func NewWordListMatcher(words ...string) *WordListMatcher {
	sorted := make([]string, 0, len(words))

	for _, w := range words {
		if w != "" {
			sorted = append(sorted, w)
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})

	return &WordListMatcher{sorted}
}

/*
Match returns the length of the longest word which prefixes the input.
*/
func (m *WordListMatcher) Match(input string) int {
	for _, w := range m.Words {
		if strings.HasPrefix(input, w) {
			return len(w)
		}
	}
	return -1
}

/*
String returns a regular expression equivalent of this matcher.
*/
func (m *WordListMatcher) String() string {
	quoted := make([]string, len(m.Words))
	for i, w := range m.Words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(quoted, "|")
}

/*
Pattern names which can be used with NewPatterns
*/
const (
	PatternTerm            = "term"
	PatternField           = "field"
	PatternOperator        = "operator"
	PatternOperatorNoField = "operatorNoField"
	PatternAnd             = "and"
	PatternOr              = "or"
	PatternNot             = "not"
)

/*
Default recognizer definitions
*/
var (
	DefaultTerm            = `[^\s()]+`
	DefaultField           = `[\pL\pN_]+`
	DefaultOperators       = []string{"==", "<=", ">=", "!=", "=~", "!~", ":", "=", "<", ">", "~"}
	DefaultOperatorNoField = []string{"=~", "!~", "~", ":"}
	DefaultAnd             = []string{"AND", "ET", "UND", "E"}
	DefaultOr              = []string{"OR", "OU", "ODER", "O"}
	DefaultNot             = []string{"NOT", "PAS", "NICHT", "NON"}
)

/*
Patterns holds all recognizers which are used by the lexer.
*/
type Patterns struct {
	Term            Matcher // Unquoted term
	Field           Matcher // Field name
	Operator        Matcher // Comparison operator
	OperatorNoField Matcher // Operators which may be used without a field
	And             Matcher // AND connector
	Or              Matcher // OR connector
	Not             Matcher // NOT connector
}

/*
DefaultPatterns returns the default recognizers.
*/
func DefaultPatterns() *Patterns {
	return &Patterns{
		Term:            MustRegexpMatcher(DefaultTerm),
		Field:           MustRegexpMatcher(DefaultField),
		Operator:        NewWordListMatcher(DefaultOperators...),
		OperatorNoField: NewWordListMatcher(DefaultOperatorNoField...),
		And:             NewWordListMatcher(DefaultAnd...),
		Or:              NewWordListMatcher(DefaultOr...),
		Not:             NewWordListMatcher(DefaultNot...),
	}
}

/*
NewPatterns creates a new set of recognizers from a map of regular
expressions. The map is keyed by pattern name (PatternTerm, PatternField,
etc.). Missing or empty entries use the default recognizer.
*/
func NewPatterns(exprs map[string]string) (*Patterns, error) {
	p := DefaultPatterns()
	cerr := errorutil.NewCompositeError()

	targets := map[string]*Matcher{
		PatternTerm:            &p.Term,
		PatternField:           &p.Field,
		PatternOperator:        &p.Operator,
		PatternOperatorNoField: &p.OperatorNoField,
		PatternAnd:             &p.And,
		PatternOr:              &p.Or,
		PatternNot:             &p.Not,
	}

	for name, expr := range exprs {
		target, ok := targets[name]

		if !ok {
			cerr.Add(fmt.Errorf("%v: unknown pattern %v", ErrInvalidPattern, name))
			continue
		}

		if expr == "" {
			continue
		}

		m, err := NewRegexpMatcher(expr)
		if err != nil {
			cerr.Add(fmt.Errorf("%v: %v: %v", ErrInvalidPattern, name, err))
			continue
		}

		*target = m
	}

	if cerr.HasErrors() {
		return nil, cerr
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

/*
Validate checks that all recognizers are set and that none of them matches
the empty string.
*/
func (p *Patterns) Validate() error {
	cerr := errorutil.NewCompositeError()

	for _, e := range []struct {
		name string
		m    Matcher
	}{
		{PatternTerm, p.Term},
		{PatternField, p.Field},
		{PatternOperator, p.Operator},
		{PatternOperatorNoField, p.OperatorNoField},
		{PatternAnd, p.And},
		{PatternOr, p.Or},
		{PatternNot, p.Not},
	} {
		if e.m == nil {
			cerr.Add(fmt.Errorf("%v: %v is not set", ErrInvalidPattern, e.name))
		} else if e.m.Match("") == 0 {
			cerr.Add(fmt.Errorf("%v: %v matches the empty string", ErrInvalidPattern, e.name))
		}
	}

	if cerr.HasErrors() {
		return cerr
	}

	return nil
}
