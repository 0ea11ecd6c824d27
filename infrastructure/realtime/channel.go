package realtime

import (
	"context"
	"sync"

	"github.com/AaronCarney/collabboard-sub001/application/ports"
)

// channel is one endpoint on a board room, implementing ports.Channel
type channel struct {
	hub      *Hub
	roomName string

	mu            sync.Mutex
	sub           *subscription
	trackedUserID string
}

var _ ports.Channel = (*channel)(nil)

// Subscribe attaches this endpoint to the room and starts delivering events.
// The status handler fires synchronously with SUBSCRIBED; an in-process hub
// cannot time out.
func (c *channel) Subscribe(_ context.Context, onEvent ports.EventHandler, onStatus ports.StatusHandler) (func(), error) {
	r := c.hub.room(c.roomName)

	sub := &subscription{
		events:  make(chan ports.Event, subscriptionBuffer),
		done:    make(chan struct{}),
		handler: onEvent,
	}
	go sub.run()

	r.mu.Lock()
	r.subs[sub] = true
	r.mu.Unlock()

	c.mu.Lock()
	c.sub = sub
	c.mu.Unlock()

	if onStatus != nil {
		onStatus(ports.StatusSubscribed)
	}

	cleanup := func() {
		r.mu.Lock()
		delete(r.subs, sub)
		userID := ""
		c.mu.Lock()
		if c.trackedUserID != "" {
			userID = c.trackedUserID
			delete(r.presence, userID)
			c.trackedUserID = ""
		}
		c.sub = nil
		c.mu.Unlock()
		r.mu.Unlock()
		close(sub.done)

		if userID != "" {
			c.hub.broadcast(r, ports.Event{
				Type:     ports.EventPresenceSync,
				Presence: r.presenceSnapshot(),
			}, nil)
		}
	}
	return cleanup, nil
}

// Broadcast publishes the event to every other subscriber in the room
func (c *channel) Broadcast(_ context.Context, event ports.Event) error {
	c.mu.Lock()
	sub := c.sub
	c.mu.Unlock()

	r := c.hub.room(c.roomName)
	c.hub.broadcast(r, event, sub)
	c.hub.metrics.BroadcastsSent.Inc()
	return nil
}

// TrackPresence announces the user and pushes a fresh presence snapshot to
// everyone on the room, the announcing endpoint included.
func (c *channel) TrackPresence(_ context.Context, user ports.PresenceUser) error {
	r := c.hub.room(c.roomName)

	r.mu.Lock()
	r.presence[user.UserID] = user
	r.mu.Unlock()

	c.mu.Lock()
	c.trackedUserID = user.UserID
	c.mu.Unlock()

	c.hub.broadcast(r, ports.Event{
		Type:     ports.EventPresenceSync,
		Presence: r.presenceSnapshot(),
	}, nil)
	return nil
}
