package boardstore

import (
	"context"

	"go.uber.org/zap"

	"github.com/AaronCarney/collabboard-sub001/application/ports"
	"github.com/AaronCarney/collabboard-sub001/domain/board"
	"github.com/AaronCarney/collabboard-sub001/domain/geometry"
)

// Subscribe establishes the live channel for the board, announces presence
// and returns a cleanup function. A channel that times out while subscribing
// is non-fatal: the session continues without peer notifications.
func (s *Store) Subscribe(ctx context.Context) (func(), error) {
	cleanup, err := s.channel.Subscribe(ctx, s.handleEvent, s.handleStatus)
	if err != nil {
		return nil, err
	}

	user := ports.PresenceUser{
		UserID: s.userID,
		Name:   s.userName,
		Color:  geometry.UserColor(s.userID),
	}
	if err := s.channel.TrackPresence(ctx, user); err != nil {
		s.logger.Warn("failed to track presence", zap.Error(err))
	}

	return cleanup, nil
}

func (s *Store) handleStatus(status ports.SubscribeStatus) {
	switch status {
	case ports.StatusSubscribed:
		s.logger.Info("board channel subscribed")
	case ports.StatusTimedOut:
		s.logger.Warn("board channel subscription timed out, continuing without peer notifications")
	case ports.StatusChannelError:
		s.logger.Warn("board channel error")
	}
}

// handleEvent merges a remote broadcast into local state. Duplicate delivery
// is harmless: upserts are idempotent under the version rule and deletes are
// idempotent by construction.
func (s *Store) handleEvent(event ports.Event) {
	switch event.Type {
	case ports.EventPresenceSync:
		s.mu.Lock()
		s.presence = append([]ports.PresenceUser(nil), event.Presence...)
		s.mu.Unlock()

	case ports.EventCursor:
		if event.Cursor == nil || event.Cursor.UserID == s.userID {
			return
		}
		s.mu.Lock()
		s.cursors[event.Cursor.UserID] = *event.Cursor
		s.mu.Unlock()

	case ports.EventObjectUpsert:
		if event.Object == nil || event.SenderID == s.userID {
			return
		}
		incoming := event.Object.Clone()
		s.mu.Lock()
		existing := s.findLocked(incoming.ID)
		switch {
		case existing == nil:
			s.objects = append(s.objects, incoming)
		case board.ShouldAcceptUpdate(incoming.Version, existing.Version):
			s.replaceLocked(incoming)
		default:
			s.metrics.StaleUpdatesDropped.Inc()
			s.logger.Debug("dropped stale remote update",
				zap.String("objectID", incoming.ID),
				zap.Int("incomingVersion", incoming.Version),
				zap.Int("localVersion", existing.Version),
			)
		}
		s.mu.Unlock()

	case ports.EventObjectDelete:
		if event.ObjectID == "" {
			return
		}
		s.mu.Lock()
		s.removeLocked(event.ObjectID)
		s.mu.Unlock()
	}
}
