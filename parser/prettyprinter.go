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
	"bytes"
	"strings"
	"unicode/utf8"
)

/*
Unparse produces a search string from a given query using the default
recognizers.
*/
func Unparse(q *Query) string {
	return defaultParser.Unparse(q)
}

/*
Unparse produces a search string from a given query. Parsing the result
with the same parser produces an equal query.
*/
func (p *Parser) Unparse(q *Query) string {
	if q == nil {
		return ""
	}

	var buf bytes.Buffer

	pp := &prettyPrinter{p.Patterns}
	pp.writeQuery(&buf, q, "")

	return buf.String()
}

/*
prettyPrinter renders queries as search strings.
*/
type prettyPrinter struct {
	patterns *Patterns
}

/*
writeQuery writes all items of a query. A non-empty dist field is used for
all items which have no field.
*/
func (pp *prettyPrinter) writeQuery(buf *bytes.Buffer, q *Query, dist string) {
	first := true

	for _, sign := range Signs {
		for _, item := range q.Bucket(sign) {
			if !first {
				buf.WriteString(" ")
			}
			first = false

			buf.WriteString(string(sign))
			pp.writeItem(buf, item, dist)
		}
	}
}

/*
writeItem writes a single item.
*/
func (pp *prettyPrinter) writeItem(buf *bytes.Buffer, item *Item, dist string) {

	if sq := item.Subquery(); sq != nil {
		if item.Field != "" {
			dist = item.Field
		}

		buf.WriteString("(")
		pp.writeQuery(buf, sq, dist)
		buf.WriteString(")")

		return
	}

	field, op := item.Field, item.Op

	if op == "" || op == OpSubquery {
		op = OpDefault
	}

	if field == "" && dist != "" {
		field = dist
	}

	prefix := ""
	if field != "" || op != OpDefault {
		prefix = field + op
	}

	val := item.Text()
	quote := item.Quote

	if quote == "" && pp.needsQuote(prefix == "", op, val) {
		quote = `"`

		// A term with both quote characters can only be written with an
		// explicit default operator

		if prefix == "" && strings.Contains(val, `"`) &&
			strings.Contains(val, "'") && pp.isPlainTerm(val) {
			prefix, quote = OpDefault, ""
		}
	}

	if quote != "" && strings.Contains(val, quote) {

		// Switch to the other quote character if possible

		if quote == `"` {
			quote = "'"
		} else {
			quote = `"`
		}
	}

	buf.WriteString(prefix)
	buf.WriteString(quote)
	buf.WriteString(val)
	buf.WriteString(quote)
}

/*
needsQuote checks if a value would not be read back as a single term. The
bare flag indicates that the value is written without field and operator.
*/
func (pp *prettyPrinter) needsQuote(bare bool, op string, val string) bool {

	if val == "" || pp.patterns.Term.Match(val) != len(val) {
		return true
	}

	switch r, _ := utf8.DecodeRuneInString(val); r {
	case '"', '\'', '(', ')':
		return true
	case '+', '-':
		if bare {
			return true
		}
	}

	if !bare {

		// The value must not extend the operator

		return pp.patterns.Operator.Match(op+val) != len(op)
	}

	for _, m := range []Matcher{pp.patterns.And, pp.patterns.Or, pp.patterns.Not} {
		if n := m.Match(val); n > 0 && (n == len(val) || isWordEnd(val[n:])) {
			return true
		}
	}

	if n := pp.patterns.Field.Match(val); n > 0 && n < len(val) &&
		pp.patterns.Operator.Match(val[n:]) > 0 {
		return true
	}

	return pp.patterns.Operator.Match(val) > 0
}

/*
isPlainTerm checks if a value is read back as a term after the default
operator without a field.
*/
func (pp *prettyPrinter) isPlainTerm(val string) bool {
	s := OpDefault + val

	if pp.patterns.Field.Match(s) > 0 ||
		pp.patterns.OperatorNoField.Match(s) != len(OpDefault) ||
		pp.patterns.Operator.Match(s) > len(OpDefault) {
		return false
	}

	switch r, _ := utf8.DecodeRuneInString(val); r {
	case '"', '\'', '(', ')':
		return false
	}

	return val != "" && pp.patterns.Term.Match(val) == len(val)
}

/*
isWordEnd checks if a given rest of a value starts with a word boundary.
*/
func isWordEnd(rest string) bool {
	r, _ := utf8.DecodeRuneInString(rest)
	return isBoundary(r)
}
