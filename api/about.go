/*
 * SearchQuery
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package api

import (
	"encoding/json"
	"net/http"

	"devt.de/krotik/searchquery/config"
)

/*
EndpointAbout is the about endpoint URL (rooted). Handles about/
*/
const EndpointAbout = APIRoot + "/about/"

/*
AboutEndpointInst creates a new endpoint handler.
*/
func AboutEndpointInst() RestEndpointHandler {
	return &aboutEndpoint{}
}

/*
Handler object for about operations.
*/
type aboutEndpoint struct {
	*DefaultEndpointHandler
}

/*
HandleGET returns version information and the active parser defaults.
*/
func (a *aboutEndpoint) HandleGET(w http.ResponseWriter, r *http.Request, resources []string) {

	data := map[string]interface{}{
		"api_versions": []string{"v1"},
		"product":      "SearchQuery",
		"version":      config.ProductVersion,
		"defaults": map[string]interface{}{
			"implicit_prefix": config.Str(config.ImplicitMandatoryPrefix),
			"max_depth":       config.Int(config.MaxNestingDepth),
		},
	}

	// Write data

	w.Header().Set("content-type", "application/json; charset=utf-8")

	ret := json.NewEncoder(w)
	ret.Encode(data)
}

/*
SwaggerDefs is used to describe the endpoint in swagger.
*/
func (a *aboutEndpoint) SwaggerDefs(s map[string]interface{}) {

	defaults := SwaggerProp("object", "Parser defaults of this server.")
	defaults["properties"] = map[string]interface{}{
		"implicit_prefix": SwaggerProp("string", "Prefix which makes all unsigned items of a search string mandatory."),
		"max_depth":       SwaggerProp("integer", "Maximum nesting depth of subqueries."),
	}

	versions := SwaggerProp("array", "List of available API versions.")
	versions["items"] = SwaggerProp("string", "Available API version.")

	s["paths"].(map[string]interface{})["/about"] = map[string]interface{}{
		"get": map[string]interface{}{
			"summary":     "Return information about the SearchQuery server.",
			"description": "Returns available API versions, product name, product version and the parser defaults which apply to all requests.",
			"tags":        []string{SwaggerTagInfo},
			"produces": []string{
				"text/plain",
				"application/json",
			},
			"responses": map[string]interface{}{
				"200": SwaggerObjectResponse("About info object", map[string]interface{}{
					"api_versions": versions,
					"product":      SwaggerProp("string", "Product name."),
					"version":      SwaggerProp("string", "Product version."),
					"defaults":     defaults,
				}),
				"default": SwaggerErrorResponse(),
			},
		},
	}
}
