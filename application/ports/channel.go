package ports

import (
	"context"

	"github.com/AaronCarney/collabboard-sub001/domain/board"
)

// EventType enumerates the typed events carried on a board channel
type EventType string

const (
	EventCursor       EventType = "cursor"
	EventObjectUpsert EventType = "object:upsert"
	EventObjectDelete EventType = "object:delete"
	EventAIResult     EventType = "ai:result"
	EventPresenceSync EventType = "presence:sync"
)

// SubscribeStatus reports the outcome of establishing a channel subscription
type SubscribeStatus string

const (
	StatusSubscribed   SubscribeStatus = "SUBSCRIBED"
	StatusChannelError SubscribeStatus = "CHANNEL_ERROR"
	StatusTimedOut     SubscribeStatus = "TIMED_OUT"
)

// CursorPosition is a collaborator's last known pointer location in world
// coordinates.
type CursorPosition struct {
	UserID string  `json:"user_id"`
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// PresenceUser identifies a user currently present on a board
type PresenceUser struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Color  string `json:"color"`
}

// Event is a single message on a board channel. Every upsert and cursor
// event carries the originating user id so receivers can ignore their own
// echo.
type Event struct {
	Type     EventType       `json:"type"`
	SenderID string          `json:"sender_id,omitempty"`
	Object   *board.Object   `json:"object,omitempty"`
	ObjectID string          `json:"object_id,omitempty"`
	Cursor   *CursorPosition `json:"cursor,omitempty"`
	Presence []PresenceUser  `json:"presence,omitempty"`
	Message  string          `json:"message,omitempty"`
}

// EventHandler receives channel events. Handlers must tolerate duplicate
// delivery; the channel is best-effort.
type EventHandler func(Event)

// StatusHandler receives subscription lifecycle notifications
type StatusHandler func(SubscribeStatus)

// Channel is a live, board-scoped broadcast channel with presence
type Channel interface {
	// Subscribe starts delivering events and returns a cleanup function.
	// The status handler fires at least once with the subscription outcome.
	Subscribe(ctx context.Context, onEvent EventHandler, onStatus StatusHandler) (func(), error)

	// Broadcast publishes an event to every other subscriber. Delivery is
	// best-effort; failures are reported but never fatal.
	Broadcast(ctx context.Context, event Event) error

	// TrackPresence announces the user on the channel's presence set
	TrackPresence(ctx context.Context, user PresenceUser) error
}

// ChannelFactory opens the named channel for a board ("board:<boardID>")
type ChannelFactory interface {
	Channel(boardID string) Channel
}
