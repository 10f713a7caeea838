// Package session implements the SessionStore abstraction: memory,
// Redis, and sticky backends for maintaining state across MCP
// reconnects.
package session

import (
	"context"
	"maps"
	"time"
)

// Data is what's stored for a single session.
type Data struct {
	SessionID    string
	CreatedAt    time.Time
	LastAccessed time.Time
	ClientInfo   map[string]any
	Values       map[string]any
}

// IsExpired reports whether the session has gone stale relative to
// its last access time.
func (d Data) IsExpired(ttl time.Duration) bool {
	return time.Since(d.LastAccessed) > ttl
}

func (d Data) clone() Data {
	d.ClientInfo = maps.Clone(d.ClientInfo)
	d.Values = maps.Clone(d.Values)
	return d
}

// Store is the session storage backend interface. Every method is
// safe for concurrent use.
type Store interface {
	Create(ctx context.Context, sessionID string, clientInfo map[string]any) (Data, error)
	Get(ctx context.Context, sessionID string) (Data, bool, error)
	Update(ctx context.Context, sessionID string, data map[string]any) (bool, error)
	Touch(ctx context.Context, sessionID string) (bool, error)
	Delete(ctx context.Context, sessionID string) (bool, error)
	CleanupExpired(ctx context.Context) (int, error)
	Count(ctx context.Context) (int, error)
}
