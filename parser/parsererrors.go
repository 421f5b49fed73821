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
	"errors"
	"fmt"
)

/*
newParserError creates a new ParserError object.
*/
func (p *parser) newParserError(t error, d string, pos int) error {
	line, lpos := p.lexer.lineAndPos(pos)
	return &Error{p.name, t, d, line, lpos}
}

/*
Error models a parser related error
*/
type Error struct {
	Source string // Name of the source which was given to the parser
	Type   error  // Error type (to be used for equal checks)
	Detail string // Details of this error
	Line   int    // Line of the error
	Pos    int    // Position of the error
}

/*
Error returns a human-readable string representation of this error.
*/
func (pe *Error) Error() string {
	var ret string

	if pe.Detail != "" {
		ret = fmt.Sprintf("Parse error in %s: %v (%v)", pe.Source, pe.Type, pe.Detail)
	} else {
		ret = fmt.Sprintf("Parse error in %s: %v", pe.Source, pe.Type)
	}

	if pe.Line != 0 {
		return fmt.Sprintf("%s (Line:%d Pos:%d)", ret, pe.Line, pe.Pos)
	}

	return ret
}

/*
Unwrap returns the error type so errors.Is can be used on parser errors.
*/
func (pe *Error) Unwrap() error {
	return pe.Type
}

/*
Parser related error types
*/
var (
	ErrUnmatchedParenthesis         = errors.New("Unmatched parenthesis")
	ErrUnexpectedToken              = errors.New("Unexpected term")
	ErrInvalidOperatorForEmptyField = errors.New("Operator requires a field")
	ErrNestedFieldUnderDistribution = errors.New("Nested field inside a distributed field")
	ErrAmbiguousBooleanMixing       = errors.New("Cannot mix AND and OR on one level")
	ErrUnsoundNegatedOr             = errors.New("Operands of OR cannot be excluded")
	ErrUnterminatedQuote            = errors.New("Unterminated quote")
	ErrEmptyQuotedValue             = errors.New("Empty quoted value")
	ErrEmptySubquery                = errors.New("Empty subquery")
	ErrNestingTooDeep               = errors.New("Nesting too deep")
	ErrNoPositiveValue              = errors.New("No positive value in query")
	ErrInvalidPattern               = errors.New("Invalid pattern")
)
