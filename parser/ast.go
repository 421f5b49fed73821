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
	"fmt"

	"devt.de/krotik/common/stringutil"
)

/*
Value is the value of an item. It is either a Scalar or a nested *Query.
*/
type Value interface {
	isValue()
}

/*
Scalar is a term or the content of a quoted phrase.
*/
type Scalar string

func (Scalar) isValue() {}

func (*Query) isValue() {}

/*
Item is a single field / operator / value unit of a query.
*/
type Item struct {
	Field string // Field name (empty if no field was given)
	Op    string // Operator or OpSubquery
	Quote string // Quote character used in the source (empty if unquoted)
	Value Value  // Scalar value or nested query
}

/*
NewTermItem creates a new item with a scalar value.
*/
func NewTermItem(field string, op string, value string) *Item {
	if op == "" {
		op = OpDefault
	}
	return &Item{field, op, "", Scalar(value)}
}

/*
NewGroupItem creates a new item which holds a nested query.
*/
func NewGroupItem(q *Query) *Item {
	return &Item{"", OpSubquery, "", q}
}

/*
Subquery returns the nested query of this item or nil if the item has a
scalar value.
*/
func (i *Item) Subquery() *Query {
	q, _ := i.Value.(*Query)
	return q
}

/*
Text returns the scalar value of this item or an empty string if the item
holds a nested query.
*/
func (i *Item) Text() string {
	s, _ := i.Value.(Scalar)
	return string(s)
}

/*
Query is the parse result of a search string. It holds the items of the
query separated by sign.
*/
type Query struct {
	Mandatory []*Item // Items which must match (+)
	Optional  []*Item // Items which may match
	Excluded  []*Item // Items which must not match (-)
}

/*
NewQuery creates a new empty query.
*/
func NewQuery() *Query {
	return &Query{}
}

/*
Bucket returns all items of a given sign.
*/
func (q *Query) Bucket(sign Sign) []*Item {
	switch sign {
	case SignMandatory:
		return q.Mandatory
	case SignExcluded:
		return q.Excluded
	}
	return q.Optional
}

/*
Add adds an item with a given sign. Returns the query for chaining.
*/
func (q *Query) Add(sign Sign, item *Item) *Query {
	switch sign {
	case SignMandatory:
		q.Mandatory = append(q.Mandatory, item)
	case SignExcluded:
		q.Excluded = append(q.Excluded, item)
	default:
		q.Optional = append(q.Optional, item)
	}
	return q
}

/*
IsEmpty returns true if the query has no items.
*/
func (q *Query) IsEmpty() bool {
	return len(q.Mandatory) == 0 && len(q.Optional) == 0 && len(q.Excluded) == 0
}

/*
Len returns the number of items on the top level of this query.
*/
func (q *Query) Len() int {
	return len(q.Mandatory) + len(q.Optional) + len(q.Excluded)
}

/*
Equals checks if this query is structurally equal to another query. Quote
characters are ignored since they are only a serialization hint. Returns
also a message describing the first difference.
*/
func (q *Query) Equals(other *Query) (bool, string) {
	var path []string

	var visit func(q1, q2 *Query) string

	visit = func(q1, q2 *Query) string {
		for _, sign := range Signs {
			b1, b2 := q1.Bucket(sign), q2.Bucket(sign)

			if len(b1) != len(b2) {
				return fmt.Sprintf("%v: bucket %q has %v item%v instead of %v",
					path, sign, len(b1), stringutil.Plural(len(b1)), len(b2))
			}

			for i, item := range b1 {
				oitem := b2[i]

				path = append(path, fmt.Sprintf("%v%v", sign, i))

				if item.Field != oitem.Field || item.Op != oitem.Op {
					return fmt.Sprintf("%v: %v%v differs from %v%v",
						path, item.Field, item.Op, oitem.Field, oitem.Op)
				}

				switch v := item.Value.(type) {
				case *Query:
					ov, ok := oitem.Value.(*Query)
					if !ok {
						return fmt.Sprintf("%v: subquery expected", path)
					}
					if msg := visit(v, ov); msg != "" {
						return msg
					}
				default:
					if item.Text() != oitem.Text() || oitem.Subquery() != nil {
						return fmt.Sprintf("%v: value %q differs from %q",
							path, item.Text(), oitem.Text())
					}
				}

				path = path[:len(path)-1]
			}
		}
		return ""
	}

	msg := visit(q, other)

	return msg == "", msg
}

/*
String returns a string representation of this query as an indented tree.
*/
func (q *Query) String() string {
	var buf bytes.Buffer
	q.levelString(0, &buf)
	return buf.String()
}

/*
levelString function to recursively print the tree.
*/
func (q *Query) levelString(indent int, buf *bytes.Buffer) {
	names := map[Sign]string{
		SignMandatory: PlainMandatory,
		SignOptional:  PlainOptional,
		SignExcluded:  PlainExcluded,
	}

	for _, sign := range Signs {
		bucket := q.Bucket(sign)

		if len(bucket) == 0 {
			continue
		}

		buf.WriteString(stringutil.GenerateRollingString(" ", indent*2))
		buf.WriteString(names[sign])
		buf.WriteString("\n")

		for _, item := range bucket {
			buf.WriteString(stringutil.GenerateRollingString(" ", (indent+1)*2))

			if sq := item.Subquery(); sq != nil {
				buf.WriteString("group")
				if item.Field != "" {
					buf.WriteString(fmt.Sprintf(": field=%q", item.Field))
				}
				buf.WriteString("\n")
				sq.levelString(indent+2, buf)
				continue
			}

			buf.WriteString(fmt.Sprintf("term: field=%q op=%q value=%q",
				item.Field, item.Op, item.Text()))

			if item.Quote != "" {
				buf.WriteString(fmt.Sprintf(" quote=%q", item.Quote))
			}

			buf.WriteString("\n")
		}
	}
}

// Plain representation
// ====================

/*
Plain returns this query as a plain object which can be converted into JSON.
*/
func (q *Query) Plain() map[string]interface{} {
	ret := make(map[string]interface{})

	for sign, key := range map[Sign]string{
		SignMandatory: PlainMandatory,
		SignOptional:  PlainOptional,
		SignExcluded:  PlainExcluded,
	} {
		bucket := q.Bucket(sign)
		items := make([]interface{}, 0, len(bucket))

		for _, item := range bucket {
			items = append(items, item.Plain())
		}

		ret[key] = items
	}

	return ret
}

/*
Plain returns this item as a plain object which can be converted into JSON.
*/
func (i *Item) Plain() map[string]interface{} {
	ret := map[string]interface{}{
		PlainField: i.Field,
		PlainOp:    i.Op,
		PlainQuote: i.Quote,
	}

	if sq := i.Subquery(); sq != nil {
		ret[PlainValue] = sq.Plain()
	} else {
		ret[PlainValue] = i.Text()
	}

	return ret
}

/*
QueryFromPlain creates a query from a plain object. Absent or null buckets
are treated as empty.
*/
func QueryFromPlain(plain map[string]interface{}) (*Query, error) {
	q := NewQuery()

	for sign, key := range map[Sign]string{
		SignMandatory: PlainMandatory,
		SignOptional:  PlainOptional,
		SignExcluded:  PlainExcluded,
	} {
		obj, ok := plain[key]

		if !ok || obj == nil {
			continue
		}

		items, ok := toSlice(obj)
		if !ok {
			return nil, fmt.Errorf("Found plain query bucket %v which is not a list", key)
		}

		for _, pitem := range items {
			item, err := itemFromPlain(pitem)
			if err != nil {
				return nil, err
			}
			q.Add(sign, item)
		}
	}

	return q, nil
}

/*
itemFromPlain creates an item from a plain object.
*/
func itemFromPlain(obj interface{}) (*Item, error) {
	plain, ok := obj.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("Found plain item which is not a map: %v", obj)
	}

	item := &Item{
		Field: stringValue(plain[PlainField]),
		Op:    stringValue(plain[PlainOp]),
		Quote: stringValue(plain[PlainQuote]),
	}

	switch v := plain[PlainValue].(type) {
	case map[string]interface{}:
		sq, err := QueryFromPlain(v)
		if err != nil {
			return nil, err
		}
		item.Value = sq
		item.Op = OpSubquery

	case nil:
		return nil, fmt.Errorf("Found plain item without a value: %v", obj)

	default:
		if item.Op == OpSubquery {
			return nil, fmt.Errorf("Found plain item with operator %v and a scalar value: %v",
				OpSubquery, obj)
		}
		item.Value = Scalar(fmt.Sprint(v))

		if item.Text() == "" {
			return nil, fmt.Errorf("Found plain item with an empty value: %v", obj)
		}
	}

	if item.Op == "" {
		item.Op = OpDefault
	}

	if item.Quote != "" && item.Quote != `"` && item.Quote != "'" {
		return nil, fmt.Errorf("Found plain item with invalid quote %q", item.Quote)
	}

	return item, nil
}

/*
toSlice converts a list of plain objects into a slice.
*/
func toSlice(obj interface{}) ([]interface{}, bool) {
	switch l := obj.(type) {
	case []interface{}:
		return l, true
	case []map[string]interface{}:
		ret := make([]interface{}, len(l))
		for i, v := range l {
			ret[i] = v
		}
		return ret, true
	}
	return nil, false
}

/*
stringValue converts a plain object into a string (nil is the empty string).
*/
func stringValue(obj interface{}) string {
	if obj == nil {
		return ""
	}
	return fmt.Sprint(obj)
}
