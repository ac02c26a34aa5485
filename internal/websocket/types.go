// internal/websocket/types.go
package websocket

import "encoding/json"

// Message kinds on the wire.
const (
	KindCall   = "call"   // client -> server method invocation
	KindResult = "result" // server -> client reply to a call
	KindEvent  = "event"  // server -> client push (game:attempt, ...)
)

// Message is the single flat envelope for everything on the wire. Which
// fields are meaningful depends on Kind: calls carry ID/Method/Params,
// results carry ID plus Result or Error, events carry Event/Payload.
type Message struct {
	Kind string `json:"kind"`

	ID     string            `json:"id,omitempty"`
	Method string            `json:"method,omitempty"`
	Params []json.RawMessage `json:"params,omitempty"`

	Result interface{} `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`

	Event   string      `json:"event,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
}
