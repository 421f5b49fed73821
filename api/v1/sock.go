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
	"fmt"
	"net/http"

	"devt.de/krotik/common/cryptutil"
	"devt.de/krotik/common/stringutil"
	"devt.de/krotik/searchquery/api"
	"github.com/gorilla/websocket"
)

/*
EndpointSock is the websocket endpoint URL (rooted). Handles everything under sock/...
*/
const EndpointSock = api.APIRoot + APIv1 + "/sock/"

/*
sockUpgrader can upgrade normal requests to websocket communications
*/
var sockUpgrader = websocket.Upgrader{
	Subprotocols:    []string{"sq-sock"},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

/*
SockEndpointInst creates a new endpoint handler.
*/
func SockEndpointInst() api.RestEndpointHandler {

	// The sock endpoint shares the result cache with the query endpoint

	QueryEndpointInst()

	return &sockEndpoint{}
}

/*
Handler object for websocket operations.
*/
type sockEndpoint struct {
	*api.DefaultEndpointHandler
}

/*
HandleGET upgrades the connection to a websocket and answers parse requests
until the connection is closed.
*/
func (se *sockEndpoint) HandleGET(w http.ResponseWriter, r *http.Request, resources []string) {

	if !checkProcessor(w) {
		return
	}

	// Update the incomming connection to a websocket
	// If the upgrade fails then the client gets an HTTP error response.

	conn, err := sockUpgrader.Upgrade(w, r, nil)

	if err != nil {

		// We give details here on what went wrong

		w.Write([]byte(err.Error()))
		return
	}

	commID := fmt.Sprintf("%x", cryptutil.GenerateUUID())

	sc := newSockConnection(commID, conn)

	sc.Init()

	for {
		var fatal bool
		var data map[string]interface{}

		// Read websocket message

		if data, fatal, err = sc.ReadData(); err != nil {

			if fatal {
				api.QP.Logger.LogDebug(fmt.Sprintf("Websocket %v closed: %v", commID, err))
				sc.conn.Close()
				break
			}

			sc.WriteData(map[string]interface{}{
				"error": err.Error(),
			})

			continue
		}

		if val, ok := data["close"]; ok && stringutil.IsTrueValue(fmt.Sprint(val)) {
			sc.Close("")
			break
		}

		query, ok := data["query"]

		if !ok {
			sc.WriteData(map[string]interface{}{
				"error": "Need a query parameter",
			})
			continue
		}

		qs, ok := query.(string)

		if !ok {
			sc.WriteData(map[string]interface{}{
				"error": "Search string expected as query parameter",
			})
			continue
		}

		res, err := parseCached(qs, stringutil.IsTrueValue(fmt.Sprint(data["implicit"])))

		if err != nil {
			res = map[string]interface{}{
				"error": err.Error(),
			}
		}

		sc.WriteData(res)
	}
}

/*
SwaggerDefs is used to describe the endpoint in swagger.
*/
func (se *sockEndpoint) SwaggerDefs(s map[string]interface{}) {
	// No swagger definitions for this endpoint as it only handles websocket requests
}
