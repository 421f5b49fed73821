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
	"bytes"
	"fmt"
	"strings"

	"devt.de/krotik/common/stringutil"
	"devt.de/krotik/searchquery/config"
)

// Command: ver
// ============

/*
CommandVer is a command name.
*/
const CommandVer = "ver"

/*
CmdVer displays version information.
*/
type CmdVer struct {
}

/*
Name returns the command name (as it should be typed)
*/
func (c *CmdVer) Name() string {
	return CommandVer
}

/*
ShortDescription returns a short description of the command (single line)
*/
func (c *CmdVer) ShortDescription() string {
	return "Displays version information."
}

/*
LongDescription returns an extensive description of the command (can be multiple lines)
*/
func (c *CmdVer) LongDescription() string {
	return "Displays version information and the implicit mandatory prefix."
}

/*
Run executes the command.
*/
func (c *CmdVer) Run(arg string, capi CommandConsoleAPI) error {

	fmt.Fprintln(capi.Out(), fmt.Sprintf("SearchQuery %v (implicit mandatory prefix: %v)",
		config.ProductVersion, capi.Processor().ImplicitPrefix))

	return nil
}

// Command: export
// ===============

/*
CommandExport is a command name.
*/
const CommandExport = "export"

/*
CmdExport exports the data which is currently in the export buffer.
*/
type CmdExport struct {
	exportFunc func([]string, *bytes.Buffer) error
}

/*
Name returns the command name (as it should be typed)
*/
func (c *CmdExport) Name() string {
	return CommandExport
}

/*
ShortDescription returns a short description of the command (single line)
*/
func (c *CmdExport) ShortDescription() string {
	return "Exports the last output."
}

/*
LongDescription returns an extensive description of the command (can be multiple lines)
*/
func (c *CmdExport) LongDescription() string {
	return "Exports the data which is currently in the export buffer. The export " +
		"buffer is filled with the previous command output in a machine readable form."
}

/*
Run executes the command.
*/
func (c *CmdExport) Run(arg string, capi CommandConsoleAPI) error {
	return c.exportFunc(strings.Fields(arg), capi.ExportBuffer())
}

// Command: history
// ================

/*
CommandHistory is a command name.
*/
const CommandHistory = "history"

/*
CmdHistory lists the previously executed lines.
*/
type CmdHistory struct {
}

/*
Name returns the command name (as it should be typed)
*/
func (c *CmdHistory) Name() string {
	return CommandHistory
}

/*
ShortDescription returns a short description of the command (single line)
*/
func (c *CmdHistory) ShortDescription() string {
	return "Lists previously executed lines."
}

/*
LongDescription returns an extensive description of the command (can be multiple lines)
*/
func (c *CmdHistory) LongDescription() string {
	return fmt.Sprintf("Lists the last %v executed lines.", HistorySize)
}

/*
Run executes the command.
*/
func (c *CmdHistory) Run(arg string, capi CommandConsoleAPI) error {

	for i, line := range capi.History() {
		capi.ExportBuffer().WriteString(fmt.Sprintln(line))
		fmt.Fprintln(capi.Out(), fmt.Sprintf("%3d  %v", i+1, line))
	}

	return nil
}

// Command: help
// =============

/*
CommandHelp is a command name.
*/
const CommandHelp = "help"

/*
CmdHelp displays descriptions of other commands.
*/
type CmdHelp struct {
}

/*
Name returns the command name (as it should be typed)
*/
func (c *CmdHelp) Name() string {
	return CommandHelp
}

/*
ShortDescription returns a short description of the command (single line)
*/
func (c *CmdHelp) ShortDescription() string {
	return "Display descriptions for all available commands."
}

/*
LongDescription returns an extensive description of the command (can be multiple lines)
*/
func (c *CmdHelp) LongDescription() string {
	return "Display descriptions for all available commands. Lines which do not " +
		"start with a command are parsed as search strings."
}

/*
Run executes the command.
*/
func (c *CmdHelp) Run(arg string, capi CommandConsoleAPI) error {

	cmds := capi.Commands()

	if name := strings.TrimSpace(arg); name != "" {

		for _, cmd := range cmds {
			if cmd.Name() == name {
				capi.ExportBuffer().WriteString(cmd.LongDescription())
				fmt.Fprintln(capi.Out(), cmd.LongDescription())
				return nil
			}
		}

		return fmt.Errorf("Unknown command: %s", name)
	}

	var tab []string

	tab = append(tab, "Command")
	tab = append(tab, "Description")

	for _, cmd := range cmds {
		tab = append(tab, cmd.Name())
		tab = append(tab, cmd.ShortDescription())
	}

	capi.ExportBuffer().WriteString(stringutil.PrintCSVTable(tab, 2))

	fmt.Fprint(capi.Out(), stringutil.PrintStringTable(tab, 2))

	return nil
}
