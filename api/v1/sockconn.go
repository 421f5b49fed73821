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
	"sync"
	"time"

	"devt.de/krotik/searchquery/config"
	"github.com/gorilla/websocket"
)

/*
sockConnection models a single websocket connection of the sock endpoint.

Websocket connections support one concurrent reader and one concurrent writer.
See: https://godoc.org/github.com/gorilla/websocket#hdr-Concurrency
*/
type sockConnection struct {
	commID string
	conn   *websocket.Conn
	rmutex *sync.Mutex
	wmutex *sync.Mutex
}

/*
newSockConnection creates a new sockConnection object.
*/
func newSockConnection(commID string, c *websocket.Conn) *sockConnection {
	return &sockConnection{commID, c, &sync.Mutex{}, &sync.Mutex{}}
}

/*
Init sends the init message which contains the communication ID.
*/
func (sc *sockConnection) Init() {
	sc.write(map[string]interface{}{
		"commID": sc.commID,
		"type":   "init_success",
		"payload": map[string]interface{}{
			"version": config.ProductVersion,
		},
	})
}

/*
ReadData reads a JSON object from the websocket connection. Also returns
if a read error was fatal for the connection.
*/
func (sc *sockConnection) ReadData() (map[string]interface{}, bool, error) {
	var data map[string]interface{}

	sc.rmutex.Lock()
	_, msg, err := sc.conn.ReadMessage()
	sc.rmutex.Unlock()

	if err != nil {
		return nil, true, err
	}

	err = json.Unmarshal(msg, &data)

	return data, false, err
}

/*
WriteData writes a data message to the websocket.
*/
func (sc *sockConnection) WriteData(data map[string]interface{}) {
	sc.write(map[string]interface{}{
		"commID":  sc.commID,
		"type":    "data",
		"payload": data,
	})
}

/*
write writes a JSON object to the websocket.
*/
func (sc *sockConnection) write(msg map[string]interface{}) {
	sc.wmutex.Lock()
	defer sc.wmutex.Unlock()

	jsonData, _ := json.Marshal(msg)

	sc.conn.WriteMessage(websocket.TextMessage, jsonData)
}

/*
Close closes the websocket connection with a given message.
*/
func (sc *sockConnection) Close(msg string) {
	sc.wmutex.Lock()
	defer sc.wmutex.Unlock()

	sc.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(
			websocket.CloseNormalClosure, msg), time.Now().Add(10*time.Second))

	sc.conn.Close()
}
