package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisEventStore backs EventStore with Redis Streams, enabling
// session resumability across pod restarts and any-pod routing:
// XADD appends with an auto-generated timestamp-sequence ID, capped by
// maxlen; XRANGE with an exclusive lower bound replays from a resume
// point.
type RedisEventStore struct {
	client    *redis.Client
	prefix    string
	maxEvents int64
	ttl       time.Duration
}

// NewRedisEventStore builds a RedisEventStore from a redis:// URL.
func NewRedisEventStore(redisURL, prefix string, maxEvents int64, ttl time.Duration) (*RedisEventStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	if prefix == "" {
		prefix = "mcp:events"
	}
	return &RedisEventStore{client: redis.NewClient(opts), prefix: prefix, maxEvents: maxEvents, ttl: ttl}, nil
}

func (s *RedisEventStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisEventStore) Close() error {
	return s.client.Close()
}

func (s *RedisEventStore) streamKey(streamID string) string {
	return fmt.Sprintf("%s:stream:%s", s.prefix, streamID)
}

func (s *RedisEventStore) StoreEvent(ctx context.Context, streamID string, message json.RawMessage) (string, error) {
	key := s.streamKey(streamID)

	redisID, err := s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: key,
		MaxLen: s.maxEvents,
		Approx: true,
		Values: map[string]any{"message": string(message), "type": "event"},
	}).Result()
	if err != nil {
		return "", err
	}

	if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
		return "", err
	}

	return makeEventID(streamID, redisID), nil
}

func (s *RedisEventStore) ReplayEventsAfter(ctx context.Context, lastEventID string, cb Callback) (string, error) {
	streamID, redisID, err := splitEventID(lastEventID)
	if err != nil {
		return "", nil
	}

	key := s.streamKey(streamID)
	results, err := s.client.XRange(ctx, key, "("+redisID, "+").Result()
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", nil
	}

	for _, msg := range results {
		raw, _ := msg.Values["message"].(string)
		eventID := makeEventID(streamID, msg.ID)
		if err := cb(ctx, Record{EventID: eventID, Message: json.RawMessage(raw)}); err != nil {
			return "", err
		}
	}

	return streamID, nil
}

// CleanupOldStreams scans for streams lacking a TTL (e.g. created by a
// client that never triggered an Expire refresh) and assigns maxAge,
// since Redis TTL expiration otherwise handles eviction automatically.
func (s *RedisEventStore) CleanupOldStreams(ctx context.Context, maxAge time.Duration) (int, error) {
	if maxAge <= 0 {
		maxAge = s.ttl
	}

	pattern := s.prefix + ":stream:*"
	cleaned := 0

	iter := s.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		ttl, err := s.client.TTL(ctx, key).Result()
		if err != nil {
			return cleaned, err
		}
		if ttl == -1 {
			if err := s.client.Expire(ctx, key, maxAge).Err(); err != nil {
				return cleaned, err
			}
			cleaned++
		}
	}
	if err := iter.Err(); err != nil {
		return cleaned, err
	}
	return cleaned, nil
}
