/*
 * SearchQuery
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package query

import (
	"errors"
	"testing"

	"devt.de/krotik/searchquery/config"
	"devt.de/krotik/searchquery/parser"
)

func TestProcessor(t *testing.T) {
	config.LoadDefaultConfig()

	p, err := NewProcessor()
	if err != nil {
		t.Error(err)
		return
	}

	if res, err := p.RoundTrip("test", "a AND b c"); err != nil || res != "+a +b c" {
		t.Error("Unexpected result:", res, err)
		return
	}

	if res, err := p.RoundTrip("test", "  ++a b -c"); err != nil || res != "+a +b -c" {
		t.Error("Unexpected result:", res, err)
		return
	}

	if res, ok := p.SplitImplicit("a ++b"); ok || res != "a ++b" {
		t.Error("Unexpected result:", res, ok)
		return
	}

	if _, err := p.RoundTrip("test", "a AND b OR c"); !errors.Is(err, parser.ErrAmbiguousBooleanMixing) {
		t.Error("Unexpected result:", err)
		return
	}

	q, err := p.ParseQuery("test", "++(a)")
	if err != nil || len(q.Mandatory) != 1 || len(q.Mandatory[0].Subquery().Mandatory) != 1 {
		t.Error("Unexpected result:", q, err)
		return
	}
}

func TestProcessorConfig(t *testing.T) {
	config.LoadDefaultConfig()

	config.Config[config.AndPattern] = "(?i)and"
	config.Config[config.MaxNestingDepth] = 2
	config.Config[config.RequirePositiveItem] = true
	config.Config[config.ImplicitMandatoryPrefix] = "!"

	defer config.LoadDefaultConfig()

	p, err := NewProcessor()
	if err != nil {
		t.Error(err)
		return
	}

	if res, err := p.RoundTrip("test", "!a and b c"); err != nil || res != "+a +b +c" {
		t.Error("Unexpected result:", res, err)
		return
	}

	if _, err := p.RoundTrip("test", "((a))"); err != nil {
		t.Error(err)
		return
	}

	if _, err := p.RoundTrip("test", "(((a)))"); !errors.Is(err, parser.ErrNestingTooDeep) {
		t.Error("Unexpected result:", err)
		return
	}

	if _, err := p.RoundTrip("test", "-a"); !errors.Is(err, parser.ErrNoPositiveValue) {
		t.Error("Unexpected result:", err)
		return
	}

	config.Config[config.OrPattern] = "x*"

	if _, err := NewProcessor(); err == nil || err.Error() != "Invalid pattern: or matches the empty string" {
		t.Error("Unexpected result:", err)
		return
	}

	config.Config[config.OrPattern] = ""
	config.Config[config.LogLevel] = "foo"

	if _, err := NewProcessor(); err == nil {
		t.Error("Invalid log level should not be accepted")
		return
	}
}
