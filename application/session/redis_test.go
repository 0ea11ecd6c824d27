package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AaronCarney/collabboard-sub001/application/session"
)

func newRedisStore(t *testing.T) (*session.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return session.NewRedisStore(client), mr
}

func TestRedisStore_SaveAndGet(t *testing.T) {
	// Arrange
	store, _ := newRedisStore(t)
	ctx := context.Background()
	entry := &session.Entry{
		LastCreatedIDs:  []string{"obj-1", "obj-2"},
		LastCommandText: "create two notes",
		Timestamp:       time.Now().UTC(),
	}

	// Act
	require.NoError(t, store.Save(ctx, "user-1", "board-1", entry))
	got, err := store.Get(ctx, "user-1", "board-1")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"obj-1", "obj-2"}, got.LastCreatedIDs)
	assert.Equal(t, "create two notes", got.LastCommandText)
}

func TestRedisStore_GetMissingReturnsNilNil(t *testing.T) {
	store, _ := newRedisStore(t)

	got, err := store.Get(context.Background(), "nobody", "nowhere")

	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_EntryExpiresWithTTL(t *testing.T) {
	// Arrange
	store, mr := newRedisStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "user-1", "board-1", &session.Entry{
		LastCreatedIDs: []string{"obj-1"},
		Timestamp:      time.Now().UTC(),
	}))

	// Act
	mr.FastForward(session.TTL)
	got, err := store.Get(ctx, "user-1", "board-1")

	// Assert
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_KeysAreScopedPerUserAndBoard(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "user-1", "board-1", &session.Entry{Timestamp: time.Now()}))

	other, err := store.Get(ctx, "user-2", "board-1")
	require.NoError(t, err)
	assert.Nil(t, other)
}
