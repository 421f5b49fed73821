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
Package console contains the console command processor for SearchQuery.

Every line which does not start with a command is parsed as a search string
and the canonical form of the query is printed:

	>>> a OR b AND c
	Parse error in console: Cannot mix AND and OR on one level ...
	>>> foo:(a b) -c
	(foo:a foo:b) -c
*/
package console

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"devt.de/krotik/common/datautil"
	"devt.de/krotik/searchquery/query"
)

/*
HistorySize is the number of lines which are kept in the console history.
*/
var HistorySize = 100

/*
NewConsole creates a new Console object which can parse and execute given
commands and outputs the result to the Writer. It optionally exports data
with the given export function via the export command. Export is disabled
if no export function is defined.
*/
func NewConsole(out io.Writer, qp *query.Processor,
	exportFunc func([]string, *bytes.Buffer) error) CommandConsole {

	cmdMap := make(map[string]Command)

	cmdMap[CommandHelp] = &CmdHelp{}
	cmdMap[CommandVer] = &CmdVer{}
	cmdMap[CommandHistory] = &CmdHistory{}
	cmdMap[CommandTokens] = &CmdTokens{}
	cmdMap[CommandAST] = &CmdAST{}
	cmdMap[CommandTree] = &CmdTree{}

	// Add export if we got an export function

	if exportFunc != nil {
		cmdMap[CommandExport] = &CmdExport{exportFunc}
	}

	c := &QueryConsole{qp, out, bytes.NewBuffer(nil),
		datautil.NewRingBuffer(HistorySize), nil, cmdMap}

	c.childConsoles = []CommandConsole{&ParseConsole{c}}

	return c
}

/*
CommandConsole is the main interface for command processors.
*/
type CommandConsole interface {

	/*
		Run executes a command line. It returns an error if the command
		had an unexpected result and a flag if the command was handled.
	*/
	Run(cmd string) (bool, error)

	/*
	   Commands returns a sorted list of all available commands.
	*/
	Commands() []Command
}

/*
CommandConsoleAPI is the console interface which commands can use to access
the query processor and the console output.
*/
type CommandConsoleAPI interface {
	CommandConsole

	/*
	   Processor returns the query processor of this console.
	*/
	Processor() *query.Processor

	/*
		Out returns a writer which can be used to write to the console.
	*/
	Out() io.Writer

	/*
	   ExportBuffer returns a buffer which can be used to write exportable data.
	*/
	ExportBuffer() *bytes.Buffer

	/*
	   History returns the previously executed lines.
	*/
	History() []string
}

/*
Command describes an available command.
*/
type Command interface {
	/*
	   Name returns the command name (as it should be typed).
	*/
	Name() string

	/*
	   ShortDescription returns a short description of the command (single line).
	*/
	ShortDescription() string

	/*
	   LongDescription returns an extensive description of the command (can be multiple lines).
	*/
	LongDescription() string

	/*
		Run executes the command. The argument is the rest of the command line
		without the command name.
	*/
	Run(arg string, capi CommandConsoleAPI) error
}

// Query Console
// =============

/*
QueryConsole implements the basic console functionality like help and version.
*/
type QueryConsole struct {
	qp            *query.Processor     // Query processor
	out           io.Writer            // Output for this console
	export        *bytes.Buffer        // Export buffer
	history       *datautil.RingBuffer // Previously executed lines
	childConsoles []CommandConsole     // List of child consoles

	CommandMap map[string]Command // Map of registered commands
}

/*
Processor returns the query processor of this console.
*/
func (c *QueryConsole) Processor() *query.Processor {
	return c.qp
}

/*
Out returns a writer which can be used to write to the console.
*/
func (c *QueryConsole) Out() io.Writer {
	return c.out
}

/*
ExportBuffer returns a buffer which can be used to write exportable data.
*/
func (c *QueryConsole) ExportBuffer() *bytes.Buffer {
	return c.export
}

/*
History returns the previously executed lines.
*/
func (c *QueryConsole) History() []string {
	return c.history.StringSlice()
}

/*
Run executes a command line. It returns an error if the command
had an unexpected result and a flag if the command was handled.
*/
func (c *QueryConsole) Run(cmd string) (bool, error) {

	if strings.TrimSpace(cmd) == "" {
		return true, nil
	}

	defer c.history.Add(cmd)

	// Run the command and return if there is an error

	if ok, err := c.RunCommand(cmd); err != nil || ok {
		return ok, err
	}

	// Try child consoles

	for _, c := range c.childConsoles {

		if ok, err := c.Run(cmd); err != nil || ok {
			return ok, err
		}
	}

	return false, fmt.Errorf("Unknown command")
}

/*
RunCommand executes a single command. It returns an error for unexpected results
and a flag if the command was handled.
*/
func (c *QueryConsole) RunCommand(cmdline string) (bool, error) {
	cmdline = strings.TrimSpace(cmdline)

	cmd, arg := cmdline, ""

	if i := strings.IndexAny(cmdline, " \t"); i != -1 {
		cmd, arg = cmdline[:i], strings.TrimSpace(cmdline[i:])
	}

	cmd = strings.ToLower(cmd)

	// Reset the export buffer if we are not exporting

	if cmd != CommandExport {
		c.export.Reset()
	}

	if cmdObj, ok := c.CommandMap[cmd]; ok {
		return true, cmdObj.Run(arg, c)
	} else if cmd == "?" {
		return true, c.CommandMap[CommandHelp].Run(arg, c)
	}

	return false, nil
}

/*
Commands returns a sorted list of all available commands.
*/
func (c *QueryConsole) Commands() []Command {
	var res []Command

	for _, c := range c.CommandMap {
		res = append(res, c)
	}

	sort.Slice(res, func(i, j int) bool {
		return res[i].Name() < res[j].Name()
	})

	return res
}

// Parse Console
// =============

/*
ParseConsole parses every given line as a search string.
*/
type ParseConsole struct {
	parent CommandConsoleAPI // Parent console API
}

/*
Run parses the given line and prints the canonical form of the query.
*/
func (c *ParseConsole) Run(cmd string) (bool, error) {

	res, err := c.parent.Processor().RoundTrip("console", cmd)

	if err == nil {
		c.parent.ExportBuffer().WriteString(res)
		fmt.Fprintln(c.parent.Out(), res)
	}

	return true, err
}

/*
Commands returns an empty list. The command line is interpreted as a search string.
*/
func (c *ParseConsole) Commands() []Command {
	return nil
}
