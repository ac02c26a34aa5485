// internal/websocket/client.go
package websocket

import (
	"encoding/json"
	"errors"

	"github.com/gorilla/websocket"
)

// ErrClientBufferFull is returned when a client's outbound queue is full;
// the message is dropped rather than blocking the caller.
var ErrClientBufferFull = errors.New("client send buffer full")

// Client is one connected browser. Outbound messages go through the send
// channel so only the write pump touches the connection.
type Client struct {
	ID   string
	Conn *websocket.Conn
	send chan []byte
}

// NewClient wraps an upgraded connection.
func NewClient(id string, conn *websocket.Conn) *Client {
	return &Client{
		ID:   id,
		Conn: conn,
		send: make(chan []byte, 256),
	}
}

func (c *Client) enqueue(msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	select {
	case c.send <- data:
		return nil
	default:
		return ErrClientBufferFull
	}
}

// SendResult replies to one call. Exactly one of result and errMsg is
// meaningful.
func (c *Client) SendResult(id string, result interface{}, errMsg string) error {
	msg := Message{Kind: KindResult, ID: id}
	if errMsg != "" {
		msg.Error = errMsg
	} else {
		msg.Result = result
	}
	return c.enqueue(msg)
}

// SendEvent pushes a backend event.
func (c *Client) SendEvent(event string, payload interface{}) error {
	return c.enqueue(Message{Kind: KindEvent, Event: event, Payload: payload})
}

// WritePump drains the send channel onto the wire until the channel
// closes or a write fails.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for data := range c.send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

// Close shuts the outbound queue down, ending the write pump.
func (c *Client) Close() {
	close(c.send)
}
