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
Package query connects the search query parser with the configuration.

A Processor is a parser which was configured from the current config. Input
lines which start with the implicit mandatory prefix (default: ++) are parsed
in implicit mandatory mode:

	++a b -c    ->  +a +b -c
*/
package query

import (
	"strings"

	"devt.de/krotik/ecal/util"
	"devt.de/krotik/searchquery/config"
	"devt.de/krotik/searchquery/parser"
)

/*
Processor parses and unparses search strings.
*/
type Processor struct {
	*parser.Parser
	ImplicitPrefix string // Prefix which requests implicit mandatory mode
}

/*
NewProcessor creates a new processor from the current config.
*/
func NewProcessor() (*Processor, error) {
	patterns, err := parser.NewPatterns(config.Patterns())

	if err == nil {
		var p *parser.Parser

		if p, err = parser.NewParser(patterns); err == nil {
			var logger *util.LogLevelLogger

			if logger, err = util.NewLogLevelLogger(util.NewStdOutLogger(),
				config.Str(config.LogLevel)); err == nil {

				p.Logger = logger
				p.MaxDepth = int(config.Int(config.MaxNestingDepth))
				p.RequirePositive = config.Bool(config.RequirePositiveItem)
				p.WarnDroppedSign = config.Bool(config.WarnDroppedSign)

				return &Processor{p, config.Str(config.ImplicitMandatoryPrefix)}, nil
			}
		}
	}

	return nil, err
}

/*
SplitImplicit removes the implicit mandatory prefix from a given input.
Returns the remaining input and if the prefix was present.
*/
func (p *Processor) SplitImplicit(input string) (string, bool) {
	trimmed := strings.TrimLeft(input, " \t")

	if p.ImplicitPrefix != "" && strings.HasPrefix(trimmed, p.ImplicitPrefix) {
		return trimmed[len(p.ImplicitPrefix):], true
	}

	return input, false
}

/*
ParseQuery parses a given input. The implicit mandatory mode is selected by
the implicit mandatory prefix.
*/
func (p *Processor) ParseQuery(name string, input string) (*parser.Query, error) {
	input, implicit := p.SplitImplicit(input)
	return p.Parse(name, input, implicit)
}

/*
RoundTrip parses a given input and returns its canonical form.
*/
func (p *Processor) RoundTrip(name string, input string) (string, error) {
	q, err := p.ParseQuery(name, input)

	if err != nil {
		return "", err
	}

	return p.Unparse(q), nil
}
