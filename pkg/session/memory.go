package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// MemoryStore is an in-memory, mutex-guarded SessionStore for
// single-replica deployments, dev, and testing. Sessions are lost on
// restart. A background goroutine sweeps expired sessions on
// cleanupInterval; callers must Start it and Stop it on shutdown.
type MemoryStore struct {
	ttl             time.Duration
	cleanupInterval time.Duration
	audit           *zap.Logger

	mu       sync.Mutex
	sessions map[string]Data

	stop chan struct{}
	done chan struct{}
}

// NewMemoryStore builds a MemoryStore. audit may be nil.
func NewMemoryStore(ttl, cleanupInterval time.Duration, audit *zap.Logger) *MemoryStore {
	return &MemoryStore{
		ttl:             ttl,
		cleanupInterval: cleanupInterval,
		audit:           audit,
		sessions:        map[string]Data{},
	}
}

// Start launches the background cleanup sweep. Safe to call once;
// a second call is a no-op.
func (m *MemoryStore) Start() {
	if m.stop != nil {
		return
	}
	m.stop = make(chan struct{})
	m.done = make(chan struct{})
	go m.cleanupLoop()
}

// Stop halts the background cleanup sweep and waits for it to exit.
func (m *MemoryStore) Stop() {
	if m.stop == nil {
		return
	}
	close(m.stop)
	<-m.done
	m.stop = nil
	m.done = nil
}

func (m *MemoryStore) cleanupLoop() {
	defer close(m.done)
	ticker := time.NewTicker(m.cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			removed, _ := m.CleanupExpired(context.Background())
			if removed > 0 && m.audit != nil {
				m.audit.Info("session cleanup removed expired sessions", zap.Int("count", removed))
			}
		}
	}
}

func (m *MemoryStore) Create(ctx context.Context, sessionID string, clientInfo map[string]any) (Data, error) {
	now := time.Now()
	d := Data{
		SessionID:    sessionID,
		CreatedAt:    now,
		LastAccessed: now,
		ClientInfo:   clientInfo,
		Values:       map[string]any{},
	}

	m.mu.Lock()
	m.sessions[sessionID] = d
	m.mu.Unlock()

	return d, nil
}

func (m *MemoryStore) Get(ctx context.Context, sessionID string) (Data, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.sessions[sessionID]
	if !ok {
		return Data{}, false, nil
	}
	if d.IsExpired(m.ttl) {
		delete(m.sessions, sessionID)
		return Data{}, false, nil
	}

	d.LastAccessed = time.Now()
	m.sessions[sessionID] = d
	return d.clone(), true, nil
}

func (m *MemoryStore) Update(ctx context.Context, sessionID string, data map[string]any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.sessions[sessionID]
	if !ok {
		return false, nil
	}
	if d.IsExpired(m.ttl) {
		delete(m.sessions, sessionID)
		return false, nil
	}

	if d.Values == nil {
		d.Values = map[string]any{}
	}
	for k, v := range data {
		d.Values[k] = v
	}
	d.LastAccessed = time.Now()
	m.sessions[sessionID] = d
	return true, nil
}

func (m *MemoryStore) Touch(ctx context.Context, sessionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.sessions[sessionID]
	if !ok {
		return false, nil
	}
	if d.IsExpired(m.ttl) {
		delete(m.sessions, sessionID)
		return false, nil
	}

	d.LastAccessed = time.Now()
	m.sessions[sessionID] = d
	return true, nil
}

func (m *MemoryStore) Delete(ctx context.Context, sessionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[sessionID]; !ok {
		return false, nil
	}
	delete(m.sessions, sessionID)
	return true, nil
}

func (m *MemoryStore) CleanupExpired(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for sid, d := range m.sessions {
		if d.IsExpired(m.ttl) {
			delete(m.sessions, sid)
			removed++
		}
	}
	return removed, nil
}

func (m *MemoryStore) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, d := range m.sessions {
		if !d.IsExpired(m.ttl) {
			count++
		}
	}
	return count, nil
}

// AllSessions returns every non-expired session, for debugging/metrics
// endpoints.
func (m *MemoryStore) AllSessions() []Data {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Data, 0, len(m.sessions))
	for _, d := range m.sessions {
		if !d.IsExpired(m.ttl) {
			out = append(out, d.clone())
		}
	}
	return out
}
