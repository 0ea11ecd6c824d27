// Package realtime implements the board channel port as an in-process hub of
// per-board rooms. Websocket peers and server-side board sessions attach to
// the same rooms, so a headless session (the AI command path) broadcasts to
// browsers exactly like another user would.
package realtime

import (
	"sync"

	"go.uber.org/zap"

	"github.com/AaronCarney/collabboard-sub001/application/ports"
	"github.com/AaronCarney/collabboard-sub001/pkg/observability"
)

// subscriptionBuffer is the per-subscriber event queue size; a subscriber
// that falls this far behind starts dropping events.
const subscriptionBuffer = 256

// Hub maintains the set of board rooms and fans events out to their
// subscribers.
type Hub struct {
	mu      sync.RWMutex
	rooms   map[string]*room
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewHub creates an empty hub
func NewHub(logger *zap.Logger, metrics *observability.Metrics) *Hub {
	if metrics == nil {
		metrics = observability.NewNopMetrics()
	}
	return &Hub{
		rooms:   make(map[string]*room),
		logger:  logger,
		metrics: metrics,
	}
}

var _ ports.ChannelFactory = (*Hub)(nil)

// Channel returns the channel endpoint for a board. Each call produces an
// independent endpoint with its own subscription; all endpoints for the same
// board share one room.
func (h *Hub) Channel(boardID string) ports.Channel {
	return &channel{hub: h, roomName: "board:" + boardID}
}

// room is one board's subscriber set and presence map
type room struct {
	name     string
	mu       sync.RWMutex
	subs     map[*subscription]bool
	presence map[string]ports.PresenceUser
}

func (h *Hub) room(name string) *room {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.rooms[name]
	if !ok {
		r = &room{
			name:     name,
			subs:     make(map[*subscription]bool),
			presence: make(map[string]ports.PresenceUser),
		}
		h.rooms[name] = r
	}
	return r
}

// broadcast fans an event out to every subscriber except the sender's own
// subscription. Subscribers with a full queue drop the event rather than
// blocking the sender.
func (h *Hub) broadcast(r *room, event ports.Event, exclude *subscription) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for sub := range r.subs {
		if sub == exclude {
			continue
		}
		select {
		case sub.events <- event:
		default:
			h.metrics.BroadcastFailures.Inc()
			h.logger.Warn("subscriber queue full, dropping event",
				zap.String("room", r.name),
				zap.String("type", string(event.Type)),
			)
		}
	}
}

// presenceSnapshot builds the full presence list for sync events
func (r *room) presenceSnapshot() []ports.PresenceUser {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]ports.PresenceUser, 0, len(r.presence))
	for _, user := range r.presence {
		users = append(users, user)
	}
	return users
}

// subscription is one attached consumer's event queue
type subscription struct {
	events  chan ports.Event
	done    chan struct{}
	handler ports.EventHandler
}

func (s *subscription) run() {
	for {
		select {
		case <-s.done:
			return
		case event := <-s.events:
			s.handler(event)
		}
	}
}
