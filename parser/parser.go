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
	"unicode"

	"devt.de/krotik/common/errorutil"
	"devt.de/krotik/ecal/util"
)

/*
Parser is a configured search query parser. A Parser is not modified by
parse calls and can be used concurrently.
*/
type Parser struct {
	Patterns        *Patterns   // Recognizers
	Logger          util.Logger // Logger for parser warnings
	MaxDepth        int         // Maximum nesting depth of parentheses
	RequirePositive bool        // Reject queries which only exclude
	WarnDroppedSign bool        // Log if a + prefix is dropped from an OR operand
}

/*
NewParser creates a new parser with the given recognizers. The default
recognizers are used if patterns is nil.
*/
func NewParser(patterns *Patterns) (*Parser, error) {
	if patterns == nil {
		patterns = DefaultPatterns()
	}

	if err := patterns.Validate(); err != nil {
		return nil, err
	}

	return &Parser{
		Patterns:        patterns,
		Logger:          util.NewNullLogger(),
		MaxDepth:        DefaultMaxDepth,
		RequirePositive: false,
		WarnDroppedSign: true,
	}, nil
}

/*
defaultParser is used by the package level functions.
*/
var defaultParser *Parser

func init() {
	var err error
	defaultParser, err = NewParser(nil)
	errorutil.AssertOk(err)
}

/*
Parse parses a given search string with the default recognizers. If
implicitMandatory is set then all items without a sign are mandatory.
*/
func Parse(name string, input string, implicitMandatory bool) (*Query, error) {
	return defaultParser.Parse(name, input, implicitMandatory)
}

/*
Parse parses a given search string. If implicitMandatory is set then all
items without a sign are mandatory. No partial result is returned if an
error occurs.
*/
func (p *Parser) Parse(name string, input string, implicitMandatory bool) (*Query, error) {
	pp := &parser{p, name, newLexer(name, input, p.Patterns), implicitMandatory}

	q, err := pp.parseSequence(0, nil)

	if err != nil {
		return nil, err
	}

	return q, nil
}

// Parser
// ======

/*
parser holds the state of a single parse call.
*/
type parser struct {
	*Parser
	name     string // Name to identify the input
	lexer    *lexer // Lexer over the input
	implicit bool   // Flag if unsigned items are mandatory
}

/*
distribution is a field and operator which are distributed over all items
of a subquery.
*/
type distribution struct {
	field string
	op    string
}

/*
parseSequence parses a sequence of items until the end of the input or a
closing parenthesis.
*/
func (p *parser) parseSequence(depth int, dist *distribution) (*Query, error) {
	var levelBool, preBool LexTokenID

	q := NewQuery()

	for {
		p.lexer.skipWhiteSpace()

		if p.lexer.atEnd() {
			break
		}

		if p.lexer.peek() == ')' {
			if depth == 0 {
				return nil, p.newParserError(ErrUnmatchedParenthesis,
					"Unexpected )", p.lexer.pos)
			}
			break
		}

		start := p.lexer.pos

		sign, explicit, err := p.parseSign()
		if err != nil {
			return nil, err
		}

		item, err := p.parseItem(depth, dist)
		if err != nil {
			return nil, err
		}

		source := p.lexer.input[start:p.lexer.pos]

		// Deal with boolean connectors

		p.lexer.skipWhiteSpace()

		var postBool LexTokenID

		if t, ok := p.lexer.lexConnector(TokenAND, TokenOR); ok {
			postBool = t.ID

			if levelBool != 0 && levelBool != postBool {
				return nil, p.newParserError(ErrAmbiguousBooleanMixing,
					"Use parentheses to combine AND and OR", t.Pos)
			}

			levelBool = postBool

			p.lexer.skipWhiteSpace()

			if p.lexer.atEnd() || p.lexer.peek() == ')' {
				return nil, p.newParserError(ErrUnexpectedToken,
					fmt.Sprintf("Missing operand after %v", t.Val), t.Pos)
			}
		}

		boolOp := preBool
		if boolOp == 0 {
			boolOp = postBool
		}
		preBool = postBool

		// Translate connectors into signs

		if boolOp == TokenOR {

			if sign == SignExcluded {
				return nil, p.newParserError(ErrUnsoundNegatedOr, source, start)
			}

			if sign == SignMandatory {
				if explicit && p.WarnDroppedSign {
					p.Logger.LogInfo(fmt.Sprintf("%v: Ignoring + prefix of OR operand %v",
						p.name, source))
				}
				sign = SignOptional
			}

		} else if boolOp == TokenAND && sign == SignOptional {

			sign = SignMandatory
		}

		q.Add(sign, item)
	}

	if p.RequirePositive && len(q.Mandatory) == 0 && len(q.Optional) == 0 && len(q.Excluded) > 0 {
		return nil, p.newParserError(ErrNoPositiveValue, "", p.lexer.pos)
	}

	return q, nil
}

/*
parseSign parses an optional sign prefix (+, - or NOT). Returns the sign of
the following item and if the sign was given explicitly.
*/
func (p *parser) parseSign() (Sign, bool, error) {
	sign := SignOptional
	if p.implicit {
		sign = SignMandatory
	}

	explicit := false

	if t, ok := p.lexer.lexSign(); ok {

		// A sign must be directly followed by an item

		if r := p.lexer.peek(); r == RuneEOF || r == ')' || unicode.IsSpace(r) {
			return sign, false, p.newParserError(ErrUnexpectedToken,
				fmt.Sprintf("Sign %v must be followed by a value", t.Val), t.Pos)
		}

		sign, explicit = Sign(t.Val), true

	} else if t, ok := p.lexer.lexConnector(TokenNOT); ok {

		p.lexer.skipWhiteSpace()

		if r := p.lexer.peek(); r == RuneEOF || r == ')' {
			return sign, false, p.newParserError(ErrUnexpectedToken,
				fmt.Sprintf("Missing operand after %v", t.Val), t.Pos)
		}

		sign, explicit = SignExcluded, true
	}

	// Connectors cannot start an item

	if t, ok := p.lexer.lexConnector(TokenAND, TokenOR, TokenNOT); ok {
		return sign, false, p.newParserError(ErrUnexpectedToken,
			fmt.Sprintf("Unexpected connector %v", t.Val), t.Pos)
	}

	return sign, explicit, nil
}

/*
parseItem parses an item which is an optional field and operator followed
by a value. The value is a quoted phrase, a term or a subquery.
*/
func (p *parser) parseItem(depth int, dist *distribution) (*Item, error) {
	field, op := "", OpDefault
	hasOp := false

	if dist != nil {
		field, op = dist.field, dist.op
	}

	if f, o, ok := p.lexer.lexFieldOp(); ok {

		if dist != nil {
			return nil, p.newParserError(ErrNestedFieldUnderDistribution,
				fmt.Sprintf("%v%v inside %v%v", f.Val, o.Val, dist.field, dist.op), f.Pos)
		}

		field, op, hasOp = f.Val, o.Val, true

	} else if o, ok := p.lexer.lexOperator(true); ok {

		if dist != nil {
			return nil, p.newParserError(ErrNestedFieldUnderDistribution,
				fmt.Sprintf("%v inside %v%v", o.Val, dist.field, dist.op), o.Pos)
		}

		field, op, hasOp = "", o.Val, true

	} else if o, ok := p.lexer.lexOperator(false); ok {

		return nil, p.newParserError(ErrInvalidOperatorForEmptyField, o.Val, o.Pos)
	}

	pos := p.lexer.pos

	if r := p.lexer.peek(); r == RuneEOF || r == ')' || unicode.IsSpace(r) {
		if hasOp {
			return nil, p.newParserError(ErrUnexpectedToken,
				fmt.Sprintf("Missing value after %v%v", field, op), pos)
		}
		return nil, p.newParserError(ErrUnexpectedToken, "Missing value", pos)
	}

	// Quoted value

	if t, ok := p.lexer.lexQuoted(); ok {

		if t.ID == TokenError {
			errType := ErrUnterminatedQuote
			if t.Val == ErrEmptyQuotedValue.Error() {
				errType = ErrEmptyQuotedValue
			}
			return nil, p.newParserError(errType, "", t.Pos)
		}

		return &Item{field, op, t.Quote, Scalar(t.Val)}, nil
	}

	// Subquery

	if t, ok := p.lexer.lexParen(); ok && t.ID == TokenLPAREN {

		if depth+1 > p.MaxDepth {
			return nil, p.newParserError(ErrNestingTooDeep,
				fmt.Sprintf("Maximum depth is %v", p.MaxDepth), t.Pos)
		}

		subDist := dist
		if hasOp {
			subDist = &distribution{field, op}
		}

		sq, err := p.parseSequence(depth+1, subDist)
		if err != nil {
			return nil, err
		}

		if rt, ok := p.lexer.lexParen(); !ok || rt.ID != TokenRPAREN {
			return nil, p.newParserError(ErrUnmatchedParenthesis, "Missing )", t.Pos)
		}

		if sq.IsEmpty() {
			return nil, p.newParserError(ErrEmptySubquery, "", t.Pos)
		}

		return NewGroupItem(sq), nil
	}

	// Single term

	if t, ok := p.lexer.lexTerm(); ok {
		return &Item{field, op, "", Scalar(t.Val)}, nil
	}

	return nil, p.newParserError(ErrUnexpectedToken,
		fmt.Sprintf("Unexpected character %q", p.lexer.peek()), pos)
}
