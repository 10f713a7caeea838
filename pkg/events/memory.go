package events

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
)

type memoryRecord struct {
	sequence int64
	message  json.RawMessage
}

// MemoryEventStore is an in-memory, per-stream append-only log for
// development/testing. Not suitable for multi-replica deployments —
// replay only works against the replica that stored the events.
type MemoryEventStore struct {
	maxEvents int

	mu      sync.Mutex
	streams map[string][]memoryRecord
	counter int64
}

// NewMemoryEventStore builds a MemoryEventStore trimming each stream
// to its most recent maxEvents entries.
func NewMemoryEventStore(maxEvents int) *MemoryEventStore {
	return &MemoryEventStore{maxEvents: maxEvents, streams: map[string][]memoryRecord{}}
}

func (s *MemoryEventStore) StoreEvent(ctx context.Context, streamID string, message json.RawMessage) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counter++
	rec := memoryRecord{sequence: s.counter, message: message}
	s.streams[streamID] = append(s.streams[streamID], rec)

	if len(s.streams[streamID]) > s.maxEvents {
		overflow := len(s.streams[streamID]) - s.maxEvents
		s.streams[streamID] = s.streams[streamID][overflow:]
	}

	return makeEventID(streamID, strconv.FormatInt(rec.sequence, 10)), nil
}

func (s *MemoryEventStore) ReplayEventsAfter(ctx context.Context, lastEventID string, cb Callback) (string, error) {
	streamID, sequence, err := splitEventID(lastEventID)
	if err != nil {
		return "", nil
	}
	lastSeq, err := strconv.ParseInt(sequence, 10, 64)
	if err != nil {
		return "", nil
	}

	s.mu.Lock()
	records := append([]memoryRecord(nil), s.streams[streamID]...)
	s.mu.Unlock()

	replayed := false
	for _, rec := range records {
		if rec.sequence <= lastSeq {
			continue
		}
		eventID := makeEventID(streamID, strconv.FormatInt(rec.sequence, 10))
		if err := cb(ctx, Record{EventID: eventID, Message: rec.message}); err != nil {
			return "", err
		}
		replayed = true
	}

	if !replayed {
		return "", nil
	}
	return streamID, nil
}
