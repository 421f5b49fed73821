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
	"strings"
	"unicode"
	"unicode/utf8"
)

/*
LexToken represents a token which is returned by the lexer.
*/
type LexToken struct {
	ID    LexTokenID // Token kind
	Pos   int        // Starting position (in bytes)
	Val   string     // Token value
	Quote string     // Quote character of quoted values
	Lline int        // Line in the input this token appears
	Lpos  int        // Position in the input line this token appears
}

/*
PosString returns the position of this token in the origianl input as a string.
*/
func (t LexToken) PosString() string {
	return fmt.Sprintf("Line %v, Pos %v", t.Lline, t.Lpos)
}

/*
String returns a string representation of a token.
*/
func (t LexToken) String() string {

	switch {

	case t.ID == TokenEOF:
		return "EOF"

	case t.ID == TokenError:
		return fmt.Sprintf("Error: %s (%s)", t.Val, t.PosString())

	case t.ID == TokenQUOTED:
		return fmt.Sprintf("%s%s%s", t.Quote, t.Val, t.Quote)

	case t.ID == TokenFIELD:
		return fmt.Sprintf("field:%q", t.Val)

	case t.ID > TOKENodeSYMBOLS && t.ID < TOKENodeKEYWORDS:
		return t.Val

	case t.ID > TOKENodeKEYWORDS:
		return fmt.Sprintf("<%s>", strings.ToUpper(t.Val))

	case len(t.Val) > 10:

		// Special case for very long values

		return fmt.Sprintf("%.10q...", t.Val)
	}

	return fmt.Sprintf("%q", t.Val)
}

// Lexer
// =====

/*
RuneEOF is a special rune which represents the end of the input
*/
const RuneEOF = -1

/*
Lexer data structure
*/
type lexer struct {
	name     string    // Name to identify the input
	input    string    // Input string of the lexer
	pos      int       // Current byte position
	patterns *Patterns // Recognizers for terms, fields, operators and connectors
}

/*
newLexer creates a new lexer for a given input.
*/
func newLexer(name string, input string, patterns *Patterns) *lexer {
	return &lexer{name, input, 0, patterns}
}

/*
LexToList lexes a given input. Returns a list of tokens. All elements are
recognized as if an item could start at their position. This function is
meant for diagnostics - the parser itself lexes depending on context.
*/
func LexToList(name string, input string, patterns *Patterns) []LexToken {
	var tokens []LexToken

	if patterns == nil {
		patterns = DefaultPatterns()
	}

	l := newLexer(name, input, patterns)

	for {
		l.skipWhiteSpace()

		if l.atEnd() {
			tokens = append(tokens, l.newToken(TokenEOF, l.pos, ""))
			break
		}

		if t, ok := l.lexParen(); ok {
			tokens = append(tokens, t)
			continue
		}

		if t, ok := l.lexSign(); ok {
			tokens = append(tokens, t)
			continue
		}

		if t, ok := l.lexConnector(TokenAND, TokenOR, TokenNOT); ok {
			tokens = append(tokens, t)
			continue
		}

		if f, o, ok := l.lexFieldOp(); ok {
			tokens = append(tokens, f, o)
			continue
		}

		if t, ok := l.lexOperator(false); ok {
			tokens = append(tokens, t)
			continue
		}

		if t, ok := l.lexQuoted(); ok {
			tokens = append(tokens, t)
			if t.ID == TokenError {
				break
			}
			continue
		}

		if t, ok := l.lexTerm(); ok {
			tokens = append(tokens, t)
			continue
		}

		tokens = append(tokens, l.newToken(TokenError, l.pos,
			fmt.Sprintf("Unexpected character %q", l.peek())))
		break
	}

	return tokens
}

/*
newToken creates a new token at a given position.
*/
func (l *lexer) newToken(id LexTokenID, pos int, val string) LexToken {
	line, lpos := l.lineAndPos(pos)
	return LexToken{id, pos, val, "", line, lpos}
}

/*
lineAndPos calculates line and position in the line (in runes) of a given
byte position.
*/
func (l *lexer) lineAndPos(pos int) (int, int) {
	if pos > len(l.input) {
		pos = len(l.input)
	}

	before := l.input[:pos]
	lastnl := strings.LastIndexByte(before, '\n') + 1

	return strings.Count(before, "\n") + 1, utf8.RuneCountInString(before[lastnl:]) + 1
}

/*
atEnd checks if the whole input has been consumed.
*/
func (l *lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

/*
peek returns the next rune without consuming it.
*/
func (l *lexer) peek() rune {
	return l.peekAt(0)
}

/*
peekAt returns the rune at a given byte offset from the current position
without consuming it.
*/
func (l *lexer) peekAt(offset int) rune {
	if l.pos+offset >= len(l.input) {
		return RuneEOF
	}

	r, _ := utf8.DecodeRuneInString(l.input[l.pos+offset:])

	return r
}

/*
match runs a matcher on the remaining input at a given byte offset. Returns
the length of a non-empty match or -1.
*/
func (l *lexer) match(m Matcher, offset int) int {
	rest := l.input[l.pos+offset:]

	if rest == "" {
		return -1
	}

	n := m.Match(rest)
	if n <= 0 || n > len(rest) {
		return -1
	}

	return n
}

/*
skipWhiteSpace skips any number of whitespace characters.
*/
func (l *lexer) skipWhiteSpace() {
	for r := l.peek(); r != RuneEOF && (unicode.IsSpace(r) || unicode.IsControl(r)); r = l.peek() {
		l.pos += utf8.RuneLen(r)
	}
}

/*
isBoundary checks if a given rune ends a word.
*/
func isBoundary(r rune) bool {
	return r == RuneEOF || r == '(' || r == ')' || unicode.IsSpace(r) || unicode.IsControl(r)
}

/*
atBoundary checks if the next rune ends a word.
*/
func (l *lexer) atBoundary() bool {
	return isBoundary(l.peek())
}

// Lex functions
// =============

/*
lexParen lexes an opening or closing parenthesis.
*/
func (l *lexer) lexParen() (LexToken, bool) {
	switch l.peek() {
	case '(':
		t := l.newToken(TokenLPAREN, l.pos, "(")
		l.pos++
		return t, true
	case ')':
		t := l.newToken(TokenRPAREN, l.pos, ")")
		l.pos++
		return t, true
	}

	return LexToken{}, false
}

/*
lexSign lexes a sign prefix.
*/
func (l *lexer) lexSign() (LexToken, bool) {
	switch l.peek() {
	case '+':
		t := l.newToken(TokenPLUS, l.pos, "+")
		l.pos++
		return t, true
	case '-':
		t := l.newToken(TokenMINUS, l.pos, "-")
		l.pos++
		return t, true
	}

	return LexToken{}, false
}

/*
lexConnector lexes one of the given connector words. Connector words must
be followed by whitespace, a parenthesis or the end of the input.
*/
func (l *lexer) lexConnector(ids ...LexTokenID) (LexToken, bool) {
	for _, id := range ids {
		var m Matcher

		switch id {
		case TokenAND:
			m = l.patterns.And
		case TokenOR:
			m = l.patterns.Or
		case TokenNOT:
			m = l.patterns.Not
		}

		if n := l.match(m, 0); n > 0 && isBoundary(l.peekAt(n)) {
			t := l.newToken(id, l.pos, l.input[l.pos:l.pos+n])
			l.pos += n
			return t, true
		}
	}

	return LexToken{}, false
}

/*
lexFieldOp lexes a field name which is directly followed by an operator.
*/
func (l *lexer) lexFieldOp() (LexToken, LexToken, bool) {
	if n := l.match(l.patterns.Field, 0); n > 0 {
		if o := l.match(l.patterns.Operator, n); o > 0 {
			f := l.newToken(TokenFIELD, l.pos, l.input[l.pos:l.pos+n])
			op := l.newToken(TokenOPERATOR, l.pos+n, l.input[l.pos+n:l.pos+n+o])
			l.pos += n + o
			return f, op, true
		}
	}

	return LexToken{}, LexToken{}, false
}

/*
lexOperator lexes an operator without a field. If noFieldOnly is set then
only operators which are allowed without a field are recognized.
*/
func (l *lexer) lexOperator(noFieldOnly bool) (LexToken, bool) {
	m := l.patterns.Operator
	if noFieldOnly {
		m = l.patterns.OperatorNoField
	}

	if n := l.match(m, 0); n > 0 {
		t := l.newToken(TokenOPERATOR, l.pos, l.input[l.pos:l.pos+n])
		l.pos += n
		return t, true
	}

	return LexToken{}, false
}

/*
lexQuoted lexes a value between single or double quotes. The content is
taken verbatim. Returns an error token if the quote is not terminated or
if the quoted value is empty.
*/
func (l *lexer) lexQuoted() (LexToken, bool) {
	q := l.peek()

	if q != '"' && q != '\'' {
		return LexToken{}, false
	}

	end := strings.IndexRune(l.input[l.pos+1:], q)

	if end == -1 {
		t := l.newToken(TokenError, l.pos, ErrUnterminatedQuote.Error())
		t.Quote = string(q)
		return t, true
	} else if end == 0 {
		t := l.newToken(TokenError, l.pos, ErrEmptyQuotedValue.Error())
		t.Quote = string(q)
		l.pos += 2
		return t, true
	}

	t := l.newToken(TokenQUOTED, l.pos, l.input[l.pos+1:l.pos+1+end])
	t.Quote = string(q)
	l.pos += end + 2

	return t, true
}

/*
lexTerm lexes an unquoted term.
*/
func (l *lexer) lexTerm() (LexToken, bool) {
	if n := l.match(l.patterns.Term, 0); n > 0 {
		t := l.newToken(TokenTERM, l.pos, l.input[l.pos:l.pos+n])
		l.pos += n
		return t, true
	}

	return LexToken{}, false
}
