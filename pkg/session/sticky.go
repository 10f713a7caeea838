package session

import (
	"time"

	"go.uber.org/zap"
)

// StickyStore is a thin wrapper over MemoryStore used to signal
// "sticky session" deployment mode (a Kubernetes Ingress with session
// affinity routes a client back to the same pod, so local-only state
// is sufficient — there is no cross-pod sharing concern to solve).
type StickyStore struct {
	*MemoryStore
}

// NewStickyStore builds a StickyStore.
func NewStickyStore(ttl, cleanupInterval time.Duration, audit *zap.Logger) *StickyStore {
	return &StickyStore{MemoryStore: NewMemoryStore(ttl, cleanupInterval, audit)}
}
