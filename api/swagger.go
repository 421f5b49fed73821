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
)

/*
EndpointSwagger is the swagger endpoint URL (rooted). Handles swagger.json/
*/
const EndpointSwagger = APIRoot + "/swagger.json/"

/*
Swagger tags which group the endpoints of the API.
*/
const (
	SwaggerTagInfo   = "info"
	SwaggerTagParser = "parser"
)

/*
SwaggerEndpointInst creates a new endpoint handler.
*/
func SwaggerEndpointInst() RestEndpointHandler {
	return &swaggerEndpoint{}
}

/*
Handler object for swagger operations.
*/
type swaggerEndpoint struct {
	*DefaultEndpointHandler
}

/*
HandleGET returns the swagger definition of the REST API. Every registered
endpoint adds its own paths and definitions.
*/
func (a *swaggerEndpoint) HandleGET(w http.ResponseWriter, r *http.Request, resources []string) {

	doc := NewSwaggerDoc()

	a.SwaggerDefs(doc)

	for _, inst := range registered {
		inst().SwaggerDefs(doc)
	}

	w.Header().Set("content-type", "application/json; charset=utf-8")

	json.NewEncoder(w).Encode(doc)
}

/*
SwaggerDefs adds the general API information and the shared error definition.
*/
func (a *swaggerEndpoint) SwaggerDefs(s map[string]interface{}) {

	s["info"] = map[string]interface{}{
		"title":       "SearchQuery API",
		"description": "Parse search strings into query trees and back.",
		"version":     APIVersion,
	}

	s["definitions"].(map[string]interface{})["Error"] = map[string]interface{}{
		"description": "Error message. Parse errors contain the line and position of the offending input.",
		"type":        "string",
	}
}

/*
NewSwaggerDoc creates an empty swagger document for this API.
*/
func NewSwaggerDoc() map[string]interface{} {
	return map[string]interface{}{
		"swagger":  "2.0",
		"host":     APIHost,
		"schemes":  APISchemes,
		"basePath": APIRoot,
		"consumes": []string{"application/json"},
		"produces": []string{"application/json"},
		"tags": []map[string]interface{}{
			{"name": SwaggerTagInfo, "description": "Information about the service."},
			{"name": SwaggerTagParser, "description": "Parsing and unparsing of search strings."},
		},
		"paths":       map[string]interface{}{},
		"definitions": map[string]interface{}{},
	}
}

/*
SwaggerProp describes a single schema property of a given type.
*/
func SwaggerProp(typ string, description string) map[string]interface{} {
	return map[string]interface{}{
		"description": description,
		"type":        typ,
	}
}

/*
SwaggerObjectResponse describes a successful response which is a JSON object
with the given properties.
*/
func SwaggerObjectResponse(description string, props map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"description": description,
		"schema": map[string]interface{}{
			"type":       "object",
			"properties": props,
		},
	}
}

/*
SwaggerErrorResponse describes an error response.
*/
func SwaggerErrorResponse() map[string]interface{} {
	return map[string]interface{}{
		"description": "Error response",
		"schema": map[string]interface{}{
			"$ref": "#/definitions/Error",
		},
	}
}
