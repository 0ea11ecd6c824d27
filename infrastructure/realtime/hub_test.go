package realtime_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AaronCarney/collabboard-sub001/application/ports"
	"github.com/AaronCarney/collabboard-sub001/infrastructure/realtime"
)

// collector accumulates delivered events behind a lock
type collector struct {
	mu     sync.Mutex
	events []ports.Event
}

func (c *collector) handle(event ports.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

func (c *collector) snapshot() []ports.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ports.Event(nil), c.events...)
}

func (c *collector) countOf(eventType ports.EventType) int {
	n := 0
	for _, e := range c.snapshot() {
		if e.Type == eventType {
			n++
		}
	}
	return n
}

func eventually(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	assert.Eventually(t, cond, 2*time.Second, 5*time.Millisecond, msg)
}

func TestHub_BroadcastReachesOtherSubscribersOnly(t *testing.T) {
	// Arrange
	hub := realtime.NewHub(zap.NewNop(), nil)
	ctx := context.Background()

	sender := hub.Channel("b1")
	receiver := hub.Channel("b1")

	var senderSeen, receiverSeen collector
	cleanupSender, err := sender.Subscribe(ctx, senderSeen.handle, nil)
	require.NoError(t, err)
	defer cleanupSender()
	cleanupReceiver, err := receiver.Subscribe(ctx, receiverSeen.handle, nil)
	require.NoError(t, err)
	defer cleanupReceiver()

	// Act
	require.NoError(t, sender.Broadcast(ctx, ports.Event{Type: ports.EventCursor, SenderID: "alice"}))

	// Assert: the receiver gets it, the sender's own endpoint does not
	eventually(t, func() bool { return receiverSeen.countOf(ports.EventCursor) == 1 }, "receiver should get the event")
	assert.Equal(t, 0, senderSeen.countOf(ports.EventCursor))
}

func TestHub_RoomsAreIsolatedPerBoard(t *testing.T) {
	// Arrange
	hub := realtime.NewHub(zap.NewNop(), nil)
	ctx := context.Background()

	b1 := hub.Channel("b1")
	b2 := hub.Channel("b2")

	var b2Seen collector
	cleanup, err := b2.Subscribe(ctx, b2Seen.handle, nil)
	require.NoError(t, err)
	defer cleanup()

	// Act
	require.NoError(t, b1.Broadcast(ctx, ports.Event{Type: ports.EventCursor}))

	// A presence event on b2 serves as the ordering marker
	require.NoError(t, b2.TrackPresence(ctx, ports.PresenceUser{UserID: "u1"}))
	eventually(t, func() bool { return b2Seen.countOf(ports.EventPresenceSync) == 1 }, "marker should arrive")

	// Assert
	assert.Equal(t, 0, b2Seen.countOf(ports.EventCursor))
}

func TestHub_SubscribeStatusFires(t *testing.T) {
	hub := realtime.NewHub(zap.NewNop(), nil)

	var status ports.SubscribeStatus
	cleanup, err := hub.Channel("b1").Subscribe(context.Background(), func(ports.Event) {}, func(s ports.SubscribeStatus) {
		status = s
	})
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, ports.StatusSubscribed, status)
}

func TestHub_TrackPresenceSyncsEveryone(t *testing.T) {
	// Arrange
	hub := realtime.NewHub(zap.NewNop(), nil)
	ctx := context.Background()

	alice := hub.Channel("b1")
	bob := hub.Channel("b1")

	var aliceSeen, bobSeen collector
	cleanupAlice, err := alice.Subscribe(ctx, aliceSeen.handle, nil)
	require.NoError(t, err)
	defer cleanupAlice()
	cleanupBob, err := bob.Subscribe(ctx, bobSeen.handle, nil)
	require.NoError(t, err)
	defer cleanupBob()

	// Act
	require.NoError(t, alice.TrackPresence(ctx, ports.PresenceUser{UserID: "alice", Name: "Alice"}))
	require.NoError(t, bob.TrackPresence(ctx, ports.PresenceUser{UserID: "bob", Name: "Bob"}))

	// Assert: both endpoints converge on the two-user snapshot
	hasBoth := func(c *collector) bool {
		for _, e := range c.snapshot() {
			if e.Type == ports.EventPresenceSync && len(e.Presence) == 2 {
				return true
			}
		}
		return false
	}
	eventually(t, func() bool { return hasBoth(&aliceSeen) }, "alice should see both users")
	eventually(t, func() bool { return hasBoth(&bobSeen) }, "bob should see both users")
}

func TestHub_CleanupRemovesPresence(t *testing.T) {
	// Arrange: two present users
	hub := realtime.NewHub(zap.NewNop(), nil)
	ctx := context.Background()

	alice := hub.Channel("b1")
	bob := hub.Channel("b1")

	var bobSeen collector
	cleanupAlice, err := alice.Subscribe(ctx, func(ports.Event) {}, nil)
	require.NoError(t, err)
	cleanupBob, err := bob.Subscribe(ctx, bobSeen.handle, nil)
	require.NoError(t, err)
	defer cleanupBob()

	require.NoError(t, alice.TrackPresence(ctx, ports.PresenceUser{UserID: "alice"}))
	require.NoError(t, bob.TrackPresence(ctx, ports.PresenceUser{UserID: "bob"}))

	// Act: Alice leaves
	cleanupAlice()

	// Assert: Bob receives a snapshot with only himself
	eventually(t, func() bool {
		events := bobSeen.snapshot()
		for i := len(events) - 1; i >= 0; i-- {
			if events[i].Type == ports.EventPresenceSync {
				return len(events[i].Presence) == 1 && events[i].Presence[0].UserID == "bob"
			}
		}
		return false
	}, "bob should see alice leave")
}

func TestHub_BroadcastWithoutSubscribersSucceeds(t *testing.T) {
	hub := realtime.NewHub(zap.NewNop(), nil)

	err := hub.Channel("empty").Broadcast(context.Background(), ports.Event{Type: ports.EventCursor})

	assert.NoError(t, err)
}
