package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"
)

// Client message types.
const (
	MsgSubscribe = "subscribe"
	MsgHover     = "hover"
	MsgUnhover   = "unhover"
)

// Event is a sequenced scene or route event pushed to every client.
type Event struct {
	Type string          `json:"type"`
	ID   uint64          `json:"id"`
	Data json.RawMessage `json:"data"`
	Time time.Time       `json:"time"`
}

// ClientMsg is a message sent by a client. Subscribe carries LastEventID;
// hover and unhover carry the state ID in NodeID.
type ClientMsg struct {
	Type        string `json:"type"`
	LastEventID uint64 `json:"last_event_id,omitempty"`
	NodeID      string `json:"node_id,omitempty"`
}

// ReplyMsg is sent to a single client: a "resync" when its replay window is
// gone, or an "error" when one of its messages could not be applied.
type ReplyMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Interactor applies pointer interactions coming from clients.
type Interactor interface {
	HoverEnter(id string) error
	HoverLeave(id string) error
}

// EventSequence hands out monotonic event IDs starting at 1.
type EventSequence struct {
	counter atomic.Uint64
}

// NewEventSequence creates a new EventSequence.
func NewEventSequence() *EventSequence {
	return &EventSequence{}
}

// Next returns the next sequence number.
func (es *EventSequence) Next() uint64 {
	return es.counter.Add(1)
}

// Last returns the most recently issued sequence number, or 0.
func (es *EventSequence) Last() uint64 {
	return es.counter.Load()
}
