/*
 * SearchQuery
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package v1

import (
	"encoding/json"
	"fmt"
	"net/http"

	"devt.de/krotik/common/datautil"
	"devt.de/krotik/common/stringutil"
	"devt.de/krotik/searchquery/api"
	"devt.de/krotik/searchquery/parser"
)

/*
ResultCacheMaxSize is the maximum size for the result cache
*/
var ResultCacheMaxSize uint64

/*
ResultCacheMaxAge is the maximum age a result cache entry can have in seconds
*/
var ResultCacheMaxAge int64

/*
ResultCache is a cache for parse results (by default no expiry and no limit)
*/
var ResultCache *datautil.MapCache

/*
EndpointQuery is the query endpoint URL (rooted). Handles everything under query/...
*/
const EndpointQuery = api.APIRoot + APIv1 + "/query/"

/*
QueryEndpointInst creates a new endpoint handler.
*/
func QueryEndpointInst() api.RestEndpointHandler {

	// Init the result cache if necessary

	if ResultCache == nil {
		ResultCache = datautil.NewMapCache(ResultCacheMaxSize, ResultCacheMaxAge)
	}

	return &queryEndpoint{}
}

/*
Handler object for search queries.
*/
type queryEndpoint struct {
	*api.DefaultEndpointHandler
}

/*
HandleGET parses the search string of the q parameter.
*/
func (qe *queryEndpoint) HandleGET(w http.ResponseWriter, r *http.Request, resources []string) {

	if !checkProcessor(w) || !checkResources(w, resources, 0, 0, "") {
		return
	}

	params := r.URL.Query()

	if _, ok := params["q"]; !ok {
		http.Error(w, "Missing query (q parameter)", http.StatusBadRequest)
		return
	}

	res, err := parseCached(params.Get("q"), stringutil.IsTrueValue(params.Get("implicit")))

	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("content-type", "application/json; charset=utf-8")
	json.NewEncoder(w).Encode(res)
}

/*
HandlePOST parses a search string or unparses a query tree.
*/
func (qe *queryEndpoint) HandlePOST(w http.ResponseWriter, r *http.Request, resources []string) {

	if !checkProcessor(w) || !checkResources(w, resources, 0, 0, "") {
		return
	}

	dec := json.NewDecoder(r.Body)
	data := make(map[string]interface{})

	if err := dec.Decode(&data); err != nil {
		http.Error(w, "Could not decode request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	query, ok1 := data["query"]
	ast, ok2 := data["ast"]

	if ok1 == ok2 {
		http.Error(w, "Need either a query or an ast parameter", http.StatusBadRequest)
		return
	}

	var res map[string]interface{}
	var err error

	if ok1 {
		qs, ok := query.(string)

		if !ok {
			http.Error(w, "Search string expected as 'query' value", http.StatusBadRequest)
			return
		}

		res, err = parseCached(qs, stringutil.IsTrueValue(fmt.Sprint(data["implicit"])))

	} else {

		astmap, ok := ast.(map[string]interface{})

		if !ok {
			http.Error(w, "Plain query tree object expected as 'ast' value", http.StatusBadRequest)
			return
		}

		// Try to create a proper query from the plain query tree

		var q *parser.Query

		if q, err = parser.QueryFromPlain(astmap); err == nil {
			res = map[string]interface{}{
				"query": api.QP.Unparse(q),
			}
		}
	}

	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("content-type", "application/json; charset=utf-8")
	json.NewEncoder(w).Encode(res)
}

/*
parseCached parses a given search string and returns the canonical search
string and the plain query tree. Results are kept in the result cache.
*/
func parseCached(input string, implicit bool) (map[string]interface{}, error) {
	key := fmt.Sprintf("%v#%v", implicit, input)

	if res, ok := ResultCache.Get(key); ok {
		return res.(map[string]interface{}), nil
	}

	if !implicit {
		input, implicit = api.QP.SplitImplicit(input)
	}

	q, err := api.QP.Parse("request", input, implicit)

	if err != nil {
		return nil, err
	}

	res := map[string]interface{}{
		"query": api.QP.Unparse(q),
		"ast":   q.Plain(),
	}

	ResultCache.Put(key, res)

	return res, nil
}

/*
SwaggerDefs is used to describe the endpoint in swagger.
*/
func (qe *queryEndpoint) SwaggerDefs(s map[string]interface{}) {

	queryResult := api.SwaggerObjectResponse("The operation was successful.", map[string]interface{}{
		"query": api.SwaggerProp("string", "Canonical search string."),
		"ast":   api.SwaggerProp("object", "Query tree with mandatory, optional and excluded items."),
	})

	errorResult := api.SwaggerErrorResponse()

	s["paths"].(map[string]interface{})["/v1/query"] = map[string]interface{}{
		"get": map[string]interface{}{
			"summary":     "Parse a search string.",
			"description": "The query endpoint parses a given search string into a query tree and returns it together with the canonical search string.",
			"tags":        []string{api.SwaggerTagParser},
			"produces": []string{
				"text/plain",
				"application/json",
			},
			"parameters": []map[string]interface{}{
				{
					"name":        "q",
					"in":          "query",
					"description": "Search string which should be parsed.",
					"required":    true,
					"type":        "string",
				},
				{
					"name":        "implicit",
					"in":          "query",
					"description": "Flag if items without a sign should be mandatory.",
					"required":    false,
					"type":        "boolean",
				},
			},
			"responses": map[string]interface{}{
				"200":     queryResult,
				"default": errorResult,
			},
		},
		"post": map[string]interface{}{
			"summary":     "Parse a search string or unparse a query tree.",
			"description": "The query endpoint parses a given search string or produces a search string from a given query tree.",
			"tags":        []string{api.SwaggerTagParser},
			"consumes": []string{
				"application/json",
			},
			"produces": []string{
				"text/plain",
				"application/json",
			},
			"parameters": []map[string]interface{}{
				{
					"name":        "data",
					"in":          "body",
					"description": "Search string or query tree which should be converted.",
					"required":    true,
					"schema": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"query":    api.SwaggerProp("string", "Search string which should be parsed."),
							"implicit": api.SwaggerProp("boolean", "Flag if items without a sign should be mandatory."),
							"ast":      api.SwaggerProp("object", "Query tree which should be unparsed. Values must not be empty."),
						},
					},
				},
			},
			"responses": map[string]interface{}{
				"200":     queryResult,
				"default": errorResult,
			},
		},
	}
}
