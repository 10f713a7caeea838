// Package events implements the EventStore abstraction for MCP session
// resumability: an append-only, per-stream ordered log of JSON-RPC
// messages, replayable after a given event ID on client reconnection.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

// ErrInvalidEventID is returned when a composite event ID cannot be
// parsed into its stream/sequence components.
var ErrInvalidEventID = errors.New("invalid event ID format")

// Record is one stored event: an opaque JSON-RPC message payload with
// its composite event ID.
type Record struct {
	EventID string
	Message json.RawMessage
}

// Callback receives one replayed event at a time, in order.
type Callback func(ctx context.Context, rec Record) error

// Store is the event storage backend interface.
type Store interface {
	// StoreEvent appends message to streamID's log and returns the
	// composite event ID assigned to it.
	StoreEvent(ctx context.Context, streamID string, message json.RawMessage) (string, error)

	// ReplayEventsAfter replays every event strictly after lastEventID,
	// invoking cb for each in order. Returns the stream ID if any
	// events were replayed, or "" if none were (including when
	// lastEventID cannot be parsed).
	ReplayEventsAfter(ctx context.Context, lastEventID string, cb Callback) (string, error)
}

// splitEventID parses a composite "{stream_id}:{sequence}" event ID by
// splitting at the LAST colon — sequence components (a Redis Stream ID
// or a plain counter) never contain a colon themselves, but a stream ID
// chosen by the caller might.
func splitEventID(eventID string) (streamID, sequence string, err error) {
	idx := strings.LastIndex(eventID, ":")
	if idx < 0 {
		return "", "", ErrInvalidEventID
	}
	return eventID[:idx], eventID[idx+1:], nil
}

func makeEventID(streamID, sequence string) string {
	return streamID + ":" + sequence
}
