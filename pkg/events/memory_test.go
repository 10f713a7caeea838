package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryEventStore_StoreAndReplayAfter(t *testing.T) {
	s := NewMemoryEventStore(100)
	ctx := context.Background()

	id1, err := s.StoreEvent(ctx, "sess-1", json.RawMessage(`{"n":1}`))
	require.NoError(t, err)
	_, err = s.StoreEvent(ctx, "sess-1", json.RawMessage(`{"n":2}`))
	require.NoError(t, err)
	id3, err := s.StoreEvent(ctx, "sess-1", json.RawMessage(`{"n":3}`))
	require.NoError(t, err)

	var replayed []Record
	streamID, err := s.ReplayEventsAfter(ctx, id1, func(ctx context.Context, rec Record) error {
		replayed = append(replayed, rec)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "sess-1", streamID)
	require.Len(t, replayed, 2)
	assert.Equal(t, json.RawMessage(`{"n":2}`), replayed[0].Message)
	assert.Equal(t, id3, replayed[1].EventID)
}

func TestMemoryEventStore_ReplayAfterLatestReturnsEmptyStreamID(t *testing.T) {
	s := NewMemoryEventStore(100)
	ctx := context.Background()

	last, err := s.StoreEvent(ctx, "sess-1", json.RawMessage(`{}`))
	require.NoError(t, err)

	streamID, err := s.ReplayEventsAfter(ctx, last, func(ctx context.Context, rec Record) error {
		t.Fatal("no events should replay")
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "", streamID)
}

func TestMemoryEventStore_MalformedEventIDReturnsNoEvents(t *testing.T) {
	s := NewMemoryEventStore(100)

	streamID, err := s.ReplayEventsAfter(context.Background(), "not-a-valid-id", func(ctx context.Context, rec Record) error {
		t.Fatal("no events should replay")
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "", streamID)
}

func TestMemoryEventStore_TrimsToMaxEvents(t *testing.T) {
	s := NewMemoryEventStore(2)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.StoreEvent(ctx, "sess-1", json.RawMessage(`{}`))
		require.NoError(t, err)
	}

	assert.Len(t, s.streams["sess-1"], 2)
}

func TestMemoryEventStore_CompositeEventIDSplitsAtLastColon(t *testing.T) {
	// A stream ID that itself contains a colon must still round-trip.
	streamID, seq, err := splitEventID("tenant:abc:42")
	require.NoError(t, err)
	assert.Equal(t, "tenant:abc", streamID)
	assert.Equal(t, "42", seq)
}
