// Package bridge exposes the browser's tab API to tabmover through a
// WebSocket that a small extension shim connects to.
package bridge

import (
	"errors"
	"fmt"

	"github.com/bnema/tabmover/internal/application/port"
	"github.com/bnema/tabmover/internal/domain/entity"
)

// ProtocolVersion is announced in the hello message.
const ProtocolVersion = 1

// MessageType discriminates frames on the wire.
type MessageType string

const (
	TypeHello    MessageType = "hello"
	TypeEvent    MessageType = "event"
	TypeCommand  MessageType = "command"
	TypeResponse MessageType = "response"
	TypePing     MessageType = "ping"
	TypePong     MessageType = "pong"
)

// Event and method names mirror the WebExtensions tabs API.
const (
	EventTabCreated = "tabs.onCreated"
	MethodQuery     = "tabs.query"
	MethodMove      = "tabs.move"
)

var (
	// ErrNotConnected is returned when no extension is attached.
	ErrNotConnected = errors.New("no browser extension connected")
	// ErrConnectionClosed is returned when the extension disconnects mid-call.
	ErrConnectionClosed = errors.New("browser extension disconnected")
)

// Message is the single JSON frame shape used in both directions.
type Message struct {
	Type    MessageType `json:"type"`
	ID      string      `json:"id,omitempty"`
	Version int         `json:"version,omitempty"`

	// event
	Event string `json:"event,omitempty"`

	// command
	Method string         `json:"method,omitempty"`
	Query  *port.TabQuery `json:"query,omitempty"`
	TabID  *entity.TabID  `json:"tabId,omitempty"`
	Index  *int           `json:"index,omitempty"`

	// response (Tab is also the payload of tabs.onCreated)
	OK    *bool        `json:"ok,omitempty"`
	Error string       `json:"error,omitempty"`
	Tab   *entity.Tab  `json:"tab,omitempty"`
	Tabs  []entity.Tab `json:"tabs,omitempty"`
}

// RemoteError is a failure reported by the extension for one command.
type RemoteError struct {
	Method  string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s failed in browser: %s", e.Method, e.Message)
}

func queryCommand(q port.TabQuery) Message {
	return Message{Type: TypeCommand, Method: MethodQuery, Query: &q}
}

func moveCommand(id entity.TabID, index int) Message {
	return Message{Type: TypeCommand, Method: MethodMove, TabID: &id, Index: &index}
}
