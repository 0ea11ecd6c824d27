package websocket_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	gorilla "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AaronCarney/collabboard-sub001/application/ports"
	"github.com/AaronCarney/collabboard-sub001/infrastructure/realtime"
	wsiface "github.com/AaronCarney/collabboard-sub001/interfaces/websocket"
)

// tokenAuthn maps "token-<id>" to user "<id>"
type tokenAuthn struct{}

func (tokenAuthn) UserID(_ context.Context, token string) (string, error) {
	if !strings.HasPrefix(token, "token-") {
		return "", fmt.Errorf("invalid token")
	}
	return strings.TrimPrefix(token, "token-"), nil
}

func newWSServer(t *testing.T) (*httptest.Server, *realtime.Hub) {
	t.Helper()
	hub := realtime.NewHub(zap.NewNop(), nil)
	server := httptest.NewServer(wsiface.NewServer(hub, tokenAuthn{}, zap.NewNop(), nil))
	t.Cleanup(server.Close)
	return server, hub
}

func dial(t *testing.T, server *httptest.Server, boardID, userID, name string) *gorilla.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") +
		fmt.Sprintf("?board=%s&token=token-%s&name=%s", boardID, userID, name)
	conn, _, err := gorilla.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// readUntil reads frames until one matches, discarding interleaved presence
// traffic.
func readUntil(t *testing.T, conn *gorilla.Conn, match func(ports.Event) bool) ports.Event {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	require.NoError(t, conn.SetReadDeadline(deadline))
	for {
		_, payload, err := conn.ReadMessage()
		require.NoError(t, err, "timed out waiting for a matching frame")
		var event ports.Event
		require.NoError(t, json.Unmarshal(payload, &event))
		if match(event) {
			return event
		}
	}
}

func TestServer_RequiresBoardParameter(t *testing.T) {
	server, _ := newWSServer(t)

	resp, err := http.Get(server.URL + "?token=token-alice")

	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_RejectsBadToken(t *testing.T) {
	server, _ := newWSServer(t)

	resp, err := http.Get(server.URL + "?board=b1&token=nonsense")

	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestServer_PeersExchangeCursorEvents(t *testing.T) {
	// Arrange
	server, _ := newWSServer(t)
	alice := dial(t, server, "b1", "alice", "Alice")
	bob := dial(t, server, "b1", "bob", "Bob")

	// Act: Alice sends a cursor frame claiming to be someone else
	frame := ports.Event{
		Type:     ports.EventCursor,
		SenderID: "mallory",
		Cursor:   &ports.CursorPosition{UserID: "mallory", X: 10, Y: 20},
	}
	require.NoError(t, alice.WriteJSON(frame))

	// Assert: Bob receives it with the authenticated identity stamped on
	got := readUntil(t, bob, func(e ports.Event) bool { return e.Type == ports.EventCursor })
	assert.Equal(t, "alice", got.SenderID)
	require.NotNil(t, got.Cursor)
	assert.Equal(t, "alice", got.Cursor.UserID)
	assert.Equal(t, 10.0, got.Cursor.X)
	assert.Equal(t, 20.0, got.Cursor.Y)
}

func TestServer_PresenceSyncOnJoin(t *testing.T) {
	// Arrange
	server, _ := newWSServer(t)
	alice := dial(t, server, "b1", "alice", "Alice")

	// Act: Bob joins
	dial(t, server, "b1", "bob", "Bob")

	// Assert: Alice receives a snapshot containing both users
	got := readUntil(t, alice, func(e ports.Event) bool {
		return e.Type == ports.EventPresenceSync && len(e.Presence) == 2
	})
	ids := []string{got.Presence[0].UserID, got.Presence[1].UserID}
	assert.ElementsMatch(t, []string{"alice", "bob"}, ids)
}

func TestServer_ServerSideBroadcastReachesPeers(t *testing.T) {
	// Arrange: a headless session shares the room with a websocket peer
	server, hub := newWSServer(t)
	bob := dial(t, server, "b1", "bob", "Bob")

	// Act
	relay := hub.Channel("b1")
	require.NoError(t, relay.Broadcast(context.Background(), ports.Event{
		Type:     ports.EventAIResult,
		SenderID: "assistant",
		Message:  "rearranged the board",
	}))

	// Assert
	got := readUntil(t, bob, func(e ports.Event) bool { return e.Type == ports.EventAIResult })
	assert.Equal(t, "rearranged the board", got.Message)
}

func TestServer_PeerDisconnectDuringBroadcastStorm(t *testing.T) {
	// Arrange: a server-side endpoint floods the room while peers churn
	server, hub := newWSServer(t)
	relay := hub.Channel("b1")

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				_ = relay.Broadcast(context.Background(), ports.Event{
					Type:   ports.EventCursor,
					Cursor: &ports.CursorPosition{UserID: "relay", X: 1, Y: 2},
				})
			}
		}
	}()

	// Act: connect and immediately drop peers mid-broadcast. A teardown that
	// races an in-flight delivery must not bring the server down.
	for i := 0; i < 50; i++ {
		url := "ws" + strings.TrimPrefix(server.URL, "http") +
			fmt.Sprintf("?board=b1&token=token-user-%d&name=User", i)
		conn, _, err := gorilla.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		require.NoError(t, conn.Close())
	}

	close(stop)
	wg.Wait()

	// Assert: the room still serves a fresh peer
	survivor := dial(t, server, "b1", "survivor", "Survivor")
	got := readUntil(t, survivor, func(e ports.Event) bool { return e.Type == ports.EventPresenceSync })
	assert.NotEmpty(t, got.Presence)
}

func TestServer_UnknownEventTypesDiscarded(t *testing.T) {
	// Arrange
	server, _ := newWSServer(t)
	alice := dial(t, server, "b1", "alice", "Alice")
	bob := dial(t, server, "b1", "bob", "Bob")

	// Act: a frame with a type the protocol does not relay
	require.NoError(t, alice.WriteJSON(ports.Event{Type: "presence:sync"}))
	// Followed by a valid marker frame
	require.NoError(t, alice.WriteJSON(ports.Event{
		Type:   ports.EventCursor,
		Cursor: &ports.CursorPosition{X: 1},
	}))

	// Assert: the marker arrives and no relayed presence frame snuck through
	// before it. Legitimate presence snapshots carry no sender id, so a
	// presence frame attributed to alice would prove the discard failed.
	var seen []ports.Event
	got := readUntil(t, bob, func(e ports.Event) bool {
		seen = append(seen, e)
		return e.Type == ports.EventCursor && e.SenderID == "alice"
	})
	assert.Equal(t, 1.0, got.Cursor.X)
	for _, e := range seen {
		if e.Type == ports.EventPresenceSync {
			assert.Empty(t, e.SenderID)
		}
	}
}
