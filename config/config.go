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
Package config contains the configuration of SearchQuery.
*/
package config

import (
	"fmt"
	"strconv"

	"devt.de/krotik/common/errorutil"
	"devt.de/krotik/common/fileutil"
)

// Global variables
// ================

/*
ProductVersion is the current version of SearchQuery
*/
const ProductVersion = "1.0.0"

/*
DefaultConfigFile is the default config file which will be used to configure SearchQuery
*/
var DefaultConfigFile = "searchquery.config.json"

/*
Known configuration options for SearchQuery
*/
const (
	TermPattern              = "TermPattern"
	FieldPattern             = "FieldPattern"
	OperatorPattern          = "OperatorPattern"
	OperatorNoFieldPattern   = "OperatorNoFieldPattern"
	AndPattern               = "AndPattern"
	OrPattern                = "OrPattern"
	NotPattern               = "NotPattern"
	MaxNestingDepth          = "MaxNestingDepth"
	RequirePositiveItem      = "RequirePositiveItem"
	WarnDroppedSign          = "WarnDroppedSign"
	ImplicitMandatoryPrefix  = "ImplicitMandatoryPrefix"
	LogLevel                 = "LogLevel"
	HTTPHost                 = "HTTPHost"
	HTTPPort                 = "HTTPPort"
	LockFile                 = "LockFile"
	ResultCacheMaxSize       = "ResultCacheMaxSize"
	ResultCacheMaxAgeSeconds = "ResultCacheMaxAgeSeconds"
	ConsoleHistoryFile       = "ConsoleHistoryFile"
)

/*
DefaultConfig is the defaut configuration. Empty pattern options use the
built-in recognizers.
*/
var DefaultConfig = map[string]interface{}{
	TermPattern:              "",
	FieldPattern:             "",
	OperatorPattern:          "",
	OperatorNoFieldPattern:   "",
	AndPattern:               "",
	OrPattern:                "",
	NotPattern:               "",
	MaxNestingDepth:          64,
	RequirePositiveItem:      false,
	WarnDroppedSign:          true,
	ImplicitMandatoryPrefix:  "++",
	LogLevel:                 "info",
	HTTPHost:                 "localhost",
	HTTPPort:                 "9095",
	LockFile:                 "searchquery.lck",
	ResultCacheMaxSize:       1000,
	ResultCacheMaxAgeSeconds: 0,
	ConsoleHistoryFile:       ".searchquery_history",
}

/*
PatternKeys maps pattern config options to parser pattern names.
*/
var PatternKeys = map[string]string{
	TermPattern:            "term",
	FieldPattern:           "field",
	OperatorPattern:        "operator",
	OperatorNoFieldPattern: "operatorNoField",
	AndPattern:             "and",
	OrPattern:              "or",
	NotPattern:             "not",
}

/*
Config is the actual config which is used
*/
var Config map[string]interface{}

/*
LoadConfigFile loads a given config file. If the config file does not exist it is
created with the default options.
*/
func LoadConfigFile(configfile string) error {
	var err error

	Config, err = fileutil.LoadConfig(configfile, DefaultConfig)

	return err
}

/*
LoadDefaultConfig loads the default configuration.
*/
func LoadDefaultConfig() {
	data := make(map[string]interface{})
	for k, v := range DefaultConfig {
		data[k] = v
	}

	Config = data
}

// Helper functions
// ================

/*
Str reads a config value as a string value.
*/
func Str(key string) string {
	return fmt.Sprint(Config[key])
}

/*
Int reads a config value as an int value.
*/
func Int(key string) int64 {
	ret, err := strconv.ParseInt(fmt.Sprint(Config[key]), 10, 64)

	errorutil.AssertTrue(err == nil,
		fmt.Sprintf("Could not parse config key %v: %v", key, err))

	return ret
}

/*
Bool reads a config value as a boolean value.
*/
func Bool(key string) bool {
	ret, err := strconv.ParseBool(fmt.Sprint(Config[key]))

	errorutil.AssertTrue(err == nil,
		fmt.Sprintf("Could not parse config key %v: %v", key, err))

	return ret
}

/*
Patterns returns all non-empty pattern options keyed by parser pattern name.
*/
func Patterns() map[string]string {
	ret := make(map[string]string)

	for key, name := range PatternKeys {
		if v, ok := Config[key]; ok && v != nil && fmt.Sprint(v) != "" {
			ret[name] = fmt.Sprint(v)
		}
	}

	return ret
}
