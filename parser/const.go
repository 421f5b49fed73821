/*
 * SearchQuery
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package parser contains the search query parser.

Patterns

Patterns holds the recognizers which decide what is a term, a field name,
an operator or a boolean connector. Every recognizer is a Matcher which
matches and consumes a prefix of the remaining input.

Lexer

The lexer recognizes one lexical element at a time at the current input
position. Which elements are tried depends on the position in the grammar
(e.g. connector words are only recognized where an item could start).

Parser

Parse() is a recursive descent parser which produces a Query from a given
search string. Boolean connectors are translated into sign prefixes while
parsing:

	a AND b     ->  +a +b
	a OR b      ->  a b
	NOT a       ->  -a

Unparse() produces a canonical search string from a given Query.
*/
package parser

/*
LexTokenID represents a unique lexer token ID
*/
type LexTokenID int

/*
Available lexer token types
*/
const (
	TokenError LexTokenID = iota // Lexing error token with a message as val
	TokenEOF                     // End-of-file token

	TokenTERM   // Unquoted term
	TokenQUOTED // Quoted phrase (the value is the content between the quotes)
	TokenFIELD  // Field name

	TOKENodeSYMBOLS // Used to separate symbols from other tokens in this list

	TokenLPAREN
	TokenRPAREN
	TokenPLUS
	TokenMINUS
	TokenOPERATOR

	TOKENodeKEYWORDS // Used to separate keywords from other tokens in this list

	TokenAND
	TokenOR
	TokenNOT
)

/*
Sign models the sign bucket of an item.
*/
type Sign string

/*
Available signs
*/
const (
	SignMandatory Sign = "+"
	SignOptional  Sign = ""
	SignExcluded  Sign = "-"
)

/*
Signs lists all signs in the order in which their buckets are serialized.
*/
var Signs = []Sign{SignMandatory, SignOptional, SignExcluded}

/*
Operator constants
*/
const (
	OpDefault  = ":"  // Operator used if no field and no operator was given
	OpSubquery = "()" // Sentinel operator of items which hold a nested query
)

/*
Plain representation keys
*/
const (
	PlainMandatory = "mandatory"
	PlainOptional  = "optional"
	PlainExcluded  = "excluded"

	PlainField = "field"
	PlainOp    = "op"
	PlainQuote = "quote"
	PlainValue = "value"
)

/*
DefaultMaxDepth is the default maximum nesting depth of parentheses.
*/
const DefaultMaxDepth = 64
