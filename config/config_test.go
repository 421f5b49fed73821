/*
 * SearchQuery
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"testing"
)

const testconf = "testconfig"

func TestConfig(t *testing.T) {

	Config = nil

	ioutil.WriteFile(testconf, []byte(`{
    "RequirePositiveItem": true,
    "AndPattern": "(?i)and"
}`), 0644)

	defer func() {
		if err := os.Remove(testconf); err != nil {
			fmt.Print("Could not remove test config file:", err.Error())
		}
	}()

	if err := LoadConfigFile(testconf); err != nil {
		t.Error(err)
		return
	}

	if res := Str(RequirePositiveItem); res != "true" {
		t.Error("Unexpected result:", res)
		return
	}

	if res := Bool(RequirePositiveItem); !res {
		t.Error("Unexpected result:", res)
		return
	}

	if res := Int(MaxNestingDepth); res != 64 {
		t.Error("Unexpected result:", res)
		return
	}

	if res := Int(HTTPPort); fmt.Sprint(res) != DefaultConfig[HTTPPort] {
		t.Error("Unexpected result:", res)
		return
	}

	if res := Patterns(); fmt.Sprint(res) != "map[and:(?i)and]" {
		t.Error("Unexpected result:", res)
		return
	}

	LoadDefaultConfig()

	if res := Str(RequirePositiveItem); res != "false" {
		t.Error("Unexpected result:", res)
		return
	}

	if res := Patterns(); len(res) != 0 {
		t.Error("Unexpected result:", res)
		return
	}

	Config[HTTPPort] = "123"

	if res := Int(HTTPPort); fmt.Sprint(res) == DefaultConfig[HTTPPort] {
		t.Error("Unexpected result:", res)
		return
	}

	Config[TermPattern] = `\w+`

	if res := Patterns(); fmt.Sprint(res) != `map[term:\w+]` {
		t.Error("Unexpected result:", res)
		return
	}
}

func TestCreateConfig(t *testing.T) {

	defer func() {
		if err := os.Remove(testconf); err != nil {
			fmt.Print("Could not remove test config file:", err.Error())
		}
	}()

	if err := LoadConfigFile(testconf); err != nil {
		t.Error(err)
		return
	}

	if _, err := os.Stat(testconf); err != nil {
		t.Error("Config file should have been written:", err)
		return
	}

	if res := Str(ImplicitMandatoryPrefix); res != "++" {
		t.Error("Unexpected result:", res)
		return
	}
}
