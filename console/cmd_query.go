/*
 * SearchQuery
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package console

import (
	"encoding/json"
	"fmt"

	"devt.de/krotik/common/errorutil"
	"devt.de/krotik/common/stringutil"
	"devt.de/krotik/searchquery/parser"
)

// Command: tokens
// ===============

/*
CommandTokens is a command name.
*/
const CommandTokens = "tokens"

/*
CmdTokens lists the tokens of a search string.
*/
type CmdTokens struct {
}

/*
Name returns the command name (as it should be typed)
*/
func (c *CmdTokens) Name() string {
	return CommandTokens
}

/*
ShortDescription returns a short description of the command (single line)
*/
func (c *CmdTokens) ShortDescription() string {
	return "Lists the tokens of a search string."
}

/*
LongDescription returns an extensive description of the command (can be multiple lines)
*/
func (c *CmdTokens) LongDescription() string {
	return "Lists the tokens of a search string. Every token is recognized as if " +
		"an item could start at its position."
}

/*
Run executes the command.
*/
func (c *CmdTokens) Run(arg string, capi CommandConsoleAPI) error {

	input, _ := capi.Processor().SplitImplicit(arg)

	res := fmt.Sprint(parser.LexToList("console", input, capi.Processor().Patterns))

	capi.ExportBuffer().WriteString(res)
	fmt.Fprintln(capi.Out(), res)

	return nil
}

// Command: ast
// ============

/*
CommandAST is a command name.
*/
const CommandAST = "ast"

/*
CmdAST displays the items of a parsed search string as a table.
*/
type CmdAST struct {
}

/*
Name returns the command name (as it should be typed)
*/
func (c *CmdAST) Name() string {
	return CommandAST
}

/*
ShortDescription returns a short description of the command (single line)
*/
func (c *CmdAST) ShortDescription() string {
	return "Displays the items of a search string."
}

/*
LongDescription returns an extensive description of the command (can be multiple lines)
*/
func (c *CmdAST) LongDescription() string {
	return "Parses a search string and displays all its items in a table. The " +
		"path of an item consists of the sign and the index of the item on each " +
		"level. The export buffer contains the query tree as JSON."
}

/*
Run executes the command.
*/
func (c *CmdAST) Run(arg string, capi CommandConsoleAPI) error {

	q, err := capi.Processor().ParseQuery("console", arg)

	if err == nil {
		tab := []string{"Path", "Field", "Op", "Value"}

		var addRows func(prefix string, q *parser.Query)

		addRows = func(prefix string, q *parser.Query) {
			for _, sign := range parser.Signs {
				for i, item := range q.Bucket(sign) {
					path := fmt.Sprintf("%v%v%v", prefix, sign, i)

					if sq := item.Subquery(); sq != nil {
						tab = append(tab, path, item.Field, item.Op,
							fmt.Sprintf("%v item%v", sq.Len(), stringutil.Plural(sq.Len())))
						addRows(path+"/", sq)
						continue
					}

					tab = append(tab, path, item.Field, item.Op, item.Text())
				}
			}
		}

		addRows("", q)

		out, jerr := json.MarshalIndent(q.Plain(), "", "  ")
		errorutil.AssertOk(jerr)

		capi.ExportBuffer().Write(out)

		fmt.Fprint(capi.Out(), stringutil.PrintGraphicStringTable(tab, 4, 1,
			stringutil.SingleLineTable))
	}

	return err
}

// Command: tree
// =============

/*
CommandTree is a command name.
*/
const CommandTree = "tree"

/*
CmdTree displays a parsed search string as an indented tree.
*/
type CmdTree struct {
}

/*
Name returns the command name (as it should be typed)
*/
func (c *CmdTree) Name() string {
	return CommandTree
}

/*
ShortDescription returns a short description of the command (single line)
*/
func (c *CmdTree) ShortDescription() string {
	return "Displays the query tree of a search string."
}

/*
LongDescription returns an extensive description of the command (can be multiple lines)
*/
func (c *CmdTree) LongDescription() string {
	return "Parses a search string and displays the resulting query tree."
}

/*
Run executes the command.
*/
func (c *CmdTree) Run(arg string, capi CommandConsoleAPI) error {

	q, err := capi.Processor().ParseQuery("console", arg)

	if err == nil {
		res := q.String()

		capi.ExportBuffer().WriteString(res)
		fmt.Fprint(capi.Out(), res)
	}

	return err
}
