package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	pkgerrors "github.com/AaronCarney/collabboard-sub001/pkg/errors"
)

// RedisStore backs session memory with a shared key-value store so multiple
// instances see the same entries. Expiry uses Redis-native TTLs, which makes
// the MemoryStore's sweep-on-write and cap-eviction unnecessary here.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed session store
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func sessionRedisKey(userID, boardID string) string {
	return fmt.Sprintf("session:%s:%s", userID, boardID)
}

// Save writes the entry with the TTL attached to the key itself
func (s *RedisStore) Save(ctx context.Context, userID, boardID string, entry *Entry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return pkgerrors.Wrap(err, "marshal session entry")
	}
	if err := s.client.Set(ctx, sessionRedisKey(userID, boardID), payload, TTL).Err(); err != nil {
		return pkgerrors.Wrap(err, "save session entry")
	}
	return nil
}

// Get returns the entry for the key, or (nil, nil) once Redis has expired it
func (s *RedisStore) Get(ctx context.Context, userID, boardID string) (*Entry, error) {
	payload, err := s.client.Get(ctx, sessionRedisKey(userID, boardID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "get session entry")
	}

	var entry Entry
	if err := json.Unmarshal(payload, &entry); err != nil {
		return nil, pkgerrors.Wrap(err, "unmarshal session entry")
	}
	return &entry, nil
}
