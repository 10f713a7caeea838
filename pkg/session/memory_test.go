package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_CreateGetUpdateTouchDelete(t *testing.T) {
	s := NewMemoryStore(time.Hour, time.Minute, nil)
	ctx := context.Background()

	created, err := s.Create(ctx, "sess-1", map[string]any{"agent": "test"})
	require.NoError(t, err)
	assert.Equal(t, "sess-1", created.SessionID)

	got, ok, err := s.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "test", got.ClientInfo["agent"])

	updated, err := s.Update(ctx, "sess-1", map[string]any{"k": "v"})
	require.NoError(t, err)
	assert.True(t, updated)

	got2, ok, err := s.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v", got2.Values["k"])

	touched, err := s.Touch(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, touched)

	deleted, err := s.Delete(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, ok, err = s.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_GetExpiredSessionReturnsNotFoundAndEvicts(t *testing.T) {
	s := NewMemoryStore(10*time.Millisecond, time.Minute, nil)
	ctx := context.Background()

	_, err := s.Create(ctx, "sess-1", nil)
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)

	_, ok, err := s.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.False(t, ok)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestMemoryStore_CleanupExpiredRemovesOnlyStale(t *testing.T) {
	s := NewMemoryStore(10*time.Millisecond, time.Minute, nil)
	ctx := context.Background()

	_, err := s.Create(ctx, "sess-stale", nil)
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)

	_, err = s.Create(ctx, "sess-fresh", nil)
	require.NoError(t, err)

	removed, err := s.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMemoryStore_StartStopBackgroundSweep(t *testing.T) {
	s := NewMemoryStore(5*time.Millisecond, 10*time.Millisecond, nil)
	ctx := context.Background()

	_, err := s.Create(ctx, "sess-1", nil)
	require.NoError(t, err)

	s.Start()
	defer s.Stop()

	time.Sleep(60 * time.Millisecond)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestMemoryStore_UpdateUnknownSessionReturnsFalse(t *testing.T) {
	s := NewMemoryStore(time.Hour, time.Minute, nil)
	ok, err := s.Update(context.Background(), "ghost", map[string]any{"a": 1})
	require.NoError(t, err)
	assert.False(t, ok)
}
