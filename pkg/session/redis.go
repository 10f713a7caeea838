package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a Redis-backed SessionStore for multi-replica
// deployments: session JSON is stored under key_prefix+sessionID with
// Redis-native TTL expiration, so GET/SETEX refresh the TTL on every
// access instead of a background sweep.
type RedisStore struct {
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
}

// NewRedisStore builds a RedisStore from a redis:// URL.
func NewRedisStore(redisURL string, ttl time.Duration, keyPrefix string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	if keyPrefix == "" {
		keyPrefix = "mcp:session:"
	}
	return &RedisStore{client: redis.NewClient(opts), ttl: ttl, keyPrefix: keyPrefix}, nil
}

// Ping verifies connectivity, mirroring the original's connect()
// "test connection" step.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) key(sessionID string) string {
	return s.keyPrefix + sessionID
}

type wireData struct {
	SessionID    string         `json:"session_id"`
	CreatedAt    time.Time      `json:"created_at"`
	LastAccessed time.Time      `json:"last_accessed"`
	ClientInfo   map[string]any `json:"client_info"`
	Values       map[string]any `json:"data"`
}

func toWire(d Data) wireData {
	return wireData{
		SessionID:    d.SessionID,
		CreatedAt:    d.CreatedAt,
		LastAccessed: d.LastAccessed,
		ClientInfo:   d.ClientInfo,
		Values:       d.Values,
	}
}

func fromWire(w wireData) Data {
	return Data{
		SessionID:    w.SessionID,
		CreatedAt:    w.CreatedAt,
		LastAccessed: w.LastAccessed,
		ClientInfo:   w.ClientInfo,
		Values:       w.Values,
	}
}

func (s *RedisStore) Create(ctx context.Context, sessionID string, clientInfo map[string]any) (Data, error) {
	now := time.Now()
	d := Data{SessionID: sessionID, CreatedAt: now, LastAccessed: now, ClientInfo: clientInfo, Values: map[string]any{}}

	raw, err := json.Marshal(toWire(d))
	if err != nil {
		return Data{}, err
	}
	if err := s.client.SetEx(ctx, s.key(sessionID), raw, s.ttl).Err(); err != nil {
		return Data{}, err
	}
	return d, nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (Data, bool, error) {
	raw, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if err == redis.Nil {
		return Data{}, false, nil
	}
	if err != nil {
		return Data{}, false, err
	}

	var w wireData
	if err := json.Unmarshal(raw, &w); err != nil {
		return Data{}, false, err
	}
	d := fromWire(w)
	d.LastAccessed = time.Now()

	refreshed, err := json.Marshal(toWire(d))
	if err != nil {
		return Data{}, false, err
	}
	if err := s.client.SetEx(ctx, s.key(sessionID), refreshed, s.ttl).Err(); err != nil {
		return Data{}, false, err
	}
	return d, true, nil
}

func (s *RedisStore) Update(ctx context.Context, sessionID string, data map[string]any) (bool, error) {
	raw, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var w wireData
	if err := json.Unmarshal(raw, &w); err != nil {
		return false, err
	}
	if w.Values == nil {
		w.Values = map[string]any{}
	}
	for k, v := range data {
		w.Values[k] = v
	}
	w.LastAccessed = time.Now()

	updated, err := json.Marshal(w)
	if err != nil {
		return false, err
	}
	if err := s.client.SetEx(ctx, s.key(sessionID), updated, s.ttl).Err(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *RedisStore) Touch(ctx context.Context, sessionID string) (bool, error) {
	_, ok, err := s.Get(ctx, sessionID)
	return ok, err
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Del(ctx, s.key(sessionID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CleanupExpired is a no-op: Redis TTL expiration handles eviction
// natively, matching the original's reliance on setex rather than a
// manual sweep.
func (s *RedisStore) CleanupExpired(ctx context.Context) (int, error) {
	return 0, nil
}

func (s *RedisStore) Count(ctx context.Context) (int, error) {
	var count int
	iter := s.client.Scan(ctx, 0, s.keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		return 0, err
	}
	return count, nil
}
