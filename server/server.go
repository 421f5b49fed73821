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
Package server contains the code for the SearchQuery server.
*/
package server

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"devt.de/krotik/common/httputil"
	"devt.de/krotik/common/lockutil"
	"devt.de/krotik/searchquery/api"
	v1 "devt.de/krotik/searchquery/api/v1"
	"devt.de/krotik/searchquery/config"
	"devt.de/krotik/searchquery/query"
)

/*
Using custom consolelogger type so we can test log.Fatal calls with unit tests. Overwrite
these if the server should not call os.Exit on a fatal error.
*/
type consolelogger func(v ...interface{})

var fatal = consolelogger(log.Fatal)
var print = consolelogger(log.Print)

/*
Base path for all file (used by unit tests)
*/
var basepath = ""

/*
StartServer runs the SearchQuery server. The server uses config.Config for all its configuration
parameters.
*/
func StartServer() {
	StartServerWithSingleOp(nil)
}

/*
StartServerWithSingleOp runs the SearchQuery server. If the singleOperation function is
not nil then the server executes the function and exists if the function returns true.
*/
func StartServerWithSingleOp(singleOperation func(*query.Processor) bool) {

	print(fmt.Sprintf("SearchQuery %v", config.ProductVersion))

	// Ensure we have a configuration - use the default configuration if nothing was set

	if config.Config == nil {
		config.LoadDefaultConfig()
	}

	// Create the query processor

	print("Creating query processor")

	qp, err := query.NewProcessor()
	if err != nil {
		fatal("Failed to create query processor:", err)
		return
	}

	api.QP = qp

	defer func() {
		api.QP = nil
		os.RemoveAll(basepath + config.Str(config.LockFile))
	}()

	// Handle single operation - these are operations which work on the processor
	// and then exit.

	if singleOperation != nil && singleOperation(qp) {
		return
	}

	// Setting other API parameters

	api.APIHost = config.Str(config.HTTPHost) + ":" + config.Str(config.HTTPPort)
	v1.ResultCacheMaxSize = uint64(config.Int(config.ResultCacheMaxSize))
	v1.ResultCacheMaxAge = config.Int(config.ResultCacheMaxAgeSeconds)
	v1.ResultCache = nil

	// Register REST endpoints

	api.RegisterRestEndpoints(api.GeneralEndpointMap)
	api.RegisterRestEndpoints(v1.V1EndpointMap)

	// Start HTTP server and enable REST API

	hs := &httputil.HTTPServer{}

	var wg sync.WaitGroup
	wg.Add(1)

	port := config.Str(config.HTTPPort)

	print("Starting server on: ", api.APIHost)

	go hs.RunHTTPServer(":"+port, &wg)

	// Wait until the server has started

	wg.Wait()

	// HTTP Server has started

	if hs.LastError != nil {
		fatal(hs.LastError)
		return
	}

	// Create a lockfile so the server can be shut down

	lf := lockutil.NewLockFile(basepath+config.Str(config.LockFile), time.Duration(2)*time.Second)

	lf.Start()

	go func() {

		// Check if the lockfile watcher is running and
		// call shutdown once it has finished

		for lf.WatcherRunning() {
			time.Sleep(time.Duration(1) * time.Second)
		}

		print("Lockfile was modified")

		hs.Shutdown()
	}()

	// Add to the wait group so we can wait for the shutdown

	wg.Add(1)

	print("Waiting for shutdown")
	wg.Wait()

	print("Shutting down")
}
