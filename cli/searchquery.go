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
SearchQuery parses search strings like

	+title:"hello world" -draft (tag:go OR tag:rust) size>=10

into query trees with mandatory, optional and excluded items and produces
canonical search strings from query trees.

The tool can be used as an interactive console, as a one-shot parser on the
command line or as a server which provides a REST API and a websocket
endpoint for parsing.
*/
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"devt.de/krotik/common/errorutil"
	"devt.de/krotik/common/fileutil"
	"devt.de/krotik/common/termutil"
	"devt.de/krotik/searchquery/config"
	"devt.de/krotik/searchquery/console"
	"devt.de/krotik/searchquery/parser"
	"devt.de/krotik/searchquery/query"
	"devt.de/krotik/searchquery/server"
)

func main() {

	// Initialize the default command line parser

	flag.CommandLine.Init(os.Args[0], flag.ContinueOnError)

	// Define default usage message

	flag.Usage = func() {

		// Print usage for tool selection

		fmt.Println(fmt.Sprintf("Usage of %s <tool>", os.Args[0]))
		fmt.Println()
		fmt.Println(fmt.Sprintf("SearchQuery %v - search string parser", config.ProductVersion))
		fmt.Println()
		fmt.Println("Available commands:")
		fmt.Println()
		fmt.Println("    console   Interactive search string console")
		fmt.Println("    parse     Parse a single search string")
		fmt.Println("    server    Start SearchQuery server")
		fmt.Println()
		fmt.Println(fmt.Sprintf("Use %s <command> -help for more information about a given command.", os.Args[0]))
		fmt.Println()
	}

	// Parse the command bit

	err := flag.CommandLine.Parse(os.Args[1:])

	if len(flag.Args()) > 0 {

		arg := flag.Args()[0]

		if err = loadConfig(); err != nil {
			fmt.Println(err.Error())
			return
		}

		if arg == "server" {
			server.StartServerWithSingleOp(handleServerCommandLine)
		} else if arg == "console" {
			RunCliConsole()
		} else if arg == "parse" {
			if !RunCliParse() {
				os.Exit(1)
			}
		} else {
			flag.Usage()
		}

	} else if err == nil {

		flag.Usage()
	}
}

/*
loadConfig loads the config file next to the executable. The file is only
read if it exists.
*/
func loadConfig() error {
	configFile := filepath.Join(filepath.Dir(os.Args[0]), config.DefaultConfigFile)

	if ok, _ := fileutil.PathExists(configFile); ok {
		return config.LoadConfigFile(configFile)
	}

	config.LoadDefaultConfig()

	return nil
}

/*
RunCliParse parses a search string given on the command line. Returns false
if the search string could not be parsed.
*/
func RunCliParse() bool {

	implicit := flag.Bool("implicit", false, "Items without a sign are mandatory")
	showAST := flag.Bool("ast", false, "Print the query tree as JSON")
	showTree := flag.Bool("tree", false, "Print the query tree as indented text")

	showHelp := flag.Bool("help", false, "Show this help message")

	flag.Usage = func() {
		fmt.Println()
		fmt.Println(fmt.Sprintf("Usage of %s parse [options] <search string>", os.Args[0]))
		fmt.Println()
		flag.PrintDefaults()
		fmt.Println()
	}

	flag.CommandLine.Parse(os.Args[2:])

	if *showHelp {
		flag.Usage()
		return true
	}

	qp, err := query.NewProcessor()

	if err == nil {
		input := strings.Join(flag.Args(), " ")
		doImplicit := *implicit

		if !doImplicit {
			input, doImplicit = qp.SplitImplicit(input)
		}

		var q *parser.Query

		if q, err = qp.Parse("commandline", input, doImplicit); err == nil {

			if *showAST {
				out, jerr := json.MarshalIndent(q.Plain(), "", "  ")
				errorutil.AssertOk(jerr)

				fmt.Println(string(out))

			} else if *showTree {

				fmt.Print(q.String())

			} else {

				fmt.Println(qp.Unparse(q))
			}
		}
	}

	if err != nil {
		fmt.Println(err.Error())
		return false
	}

	return true
}

/*
RunCliConsole runs the search string console on the commandline.
*/
func RunCliConsole() {
	var err error
	var qp *query.Processor

	cmdfile := flag.String("file", "", "Read commands from a file and exit")
	cmdline := flag.String("exec", "", "Execute a single line and exit")

	showHelp := flag.Bool("help", false, "Show this help message")

	flag.Usage = func() {
		fmt.Println()
		fmt.Println(fmt.Sprintf("Usage of %s console [options]", os.Args[0]))
		fmt.Println()
		flag.PrintDefaults()
		fmt.Println()
	}

	flag.CommandLine.Parse(os.Args[2:])

	if *showHelp {
		flag.Usage()
		return
	}

	if *cmdfile == "" && *cmdline == "" {
		fmt.Println(fmt.Sprintf("SearchQuery %v - Console", config.ProductVersion))
	}

	var clt termutil.ConsoleLineTerminal

	isExitLine := func(s string) bool {
		return s == "exit" || s == "q" || s == "quit" || s == "bye" || s == "\x04"
	}

	if qp, err = query.NewProcessor(); err == nil {
		clt, err = termutil.NewConsoleLineTerminal(os.Stdout)
	}

	if err == nil {

		if *cmdfile != "" {
			var file *os.File

			// Read commands from a file

			file, err = os.Open(*cmdfile)
			if err == nil {
				defer file.Close()

				clt, err = termutil.AddFileReadingWrapper(clt, file, true)
			}

		} else if *cmdline != "" {
			var buf bytes.Buffer

			buf.WriteString(fmt.Sprintln(*cmdline))

			// Read commands from a single line

			clt, err = termutil.AddFileReadingWrapper(clt, &buf, true)

		} else {

			// Add history functionality

			histfile := filepath.Join(filepath.Dir(os.Args[0]), config.Str(config.ConsoleHistoryFile))
			clt, err = termutil.AddHistoryMixin(clt, histfile,
				func(s string) bool {
					return isExitLine(s)
				})
		}
	}

	if err == nil {

		// Create the console object

		con := console.NewConsole(os.Stdout, qp,
			func(args []string, exportBuf *bytes.Buffer) error {

				// Export data to a chosen file

				filename := "export.out"

				if len(args) > 0 {
					filename = args[0]
				}

				return ioutil.WriteFile(filename, exportBuf.Bytes(), 0666)
			})

		// Add autocompletion for command names

		var words []string
		for _, cmd := range con.Commands() {
			words = append(words, cmd.Name())
		}

		if clt, err = termutil.AddAutoCompleteMixin(clt, termutil.NewWordListDict(words)); err == nil {

			// Start the console

			if err = clt.StartTerm(); err == nil {
				var line string

				defer clt.StopTerm()

				if *cmdfile == "" && *cmdline == "" {
					fmt.Println("Type 'q' or 'quit' to exit the shell and '?' to get help")
				}

				line, err = clt.NextLine()
				for err == nil && !isExitLine(line) {

					_, cerr := con.Run(line)

					if cerr != nil {

						// Output any error

						fmt.Fprintln(clt, "Error:", cerr.Error())
					}

					line, err = clt.NextLine()
				}
			}
		}
	}

	if err != nil {
		fmt.Println(err.Error())
	}
}

/*
handleServerCommandLine handles all command line options for the server
*/
func handleServerCommandLine(qp *query.Processor) bool {

	check := flag.String("check", "", "Parse a search string with the server configuration and exit")

	showHelp := flag.Bool("help", false, "Show this help message")

	flag.Usage = func() {
		fmt.Println()
		fmt.Println(fmt.Sprintf("Usage of %s server [options]", os.Args[0]))
		fmt.Println()
		flag.PrintDefaults()
		fmt.Println()
	}

	flag.CommandLine.Parse(os.Args[2:])

	if *showHelp {
		flag.Usage()
		return true
	}

	if *check != "" {
		res, err := qp.RoundTrip("check", *check)

		if err != nil {
			fmt.Println(err.Error())
		} else {
			fmt.Println(res)
		}

		return true
	}

	return false
}
