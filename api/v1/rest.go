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
Package v1 contains SearchQuery REST API Version 1.

Query endpoint

/query

The query endpoint parses search strings into query trees and produces
search strings from query trees. A GET request parses the search string in
the q parameter:

	/query?q=<search string>&implicit=<true|false>

The response contains the canonical search string and the query tree:

	{
	    "query" : "+a +b",
	    "ast"   : { "mandatory" : [ ... ], "optional" : [ ... ], "excluded" : [ ... ] }
	}

A POST request accepts either a search string or a query tree:

	{ "query" : <search string>, "implicit" : <true|false> }
	{ "ast" : <query tree> }

Websocket endpoint

/sock

Interactive parsing over a websocket. Each message is an object with a
query and an optional implicit flag. Each answer is either an object with
the canonical query and the query tree or an object with an error. A
message with a true close value closes the connection.
*/
package v1

import (
	"net/http"
	"strings"

	"devt.de/krotik/searchquery/api"
)

/*
APIv1 is the directory for version 1 of the API
*/
const APIv1 = "/v1"

/*
V1EndpointMap is a map of urls to endpoints for version 1 of the API
*/
var V1EndpointMap = map[string]api.RestEndpointInst{
	EndpointQuery: QueryEndpointInst,
	EndpointSock:  SockEndpointInst,
}

// Helper functions
// ================

/*
checkResources check given resources for a request.
*/
func checkResources(w http.ResponseWriter, resources []string, requiredMin int, requiredMax int, errorMsg string) bool {
	if len(resources) < requiredMin {
		http.Error(w, errorMsg, http.StatusBadRequest)
		return false
	} else if len(resources) > requiredMax {
		http.Error(w, "Invalid resource specification: "+strings.Join(resources[requiredMax:], "/"), http.StatusBadRequest)
		return false
	}
	return true
}

/*
checkProcessor checks that a query processor is available.
*/
func checkProcessor(w http.ResponseWriter) bool {
	if api.QP == nil {
		http.Error(w, "Resource was not found", http.StatusNotFound)
		return false
	}
	return true
}
