package boardstore

import (
	"context"

	"go.uber.org/zap"

	"github.com/AaronCarney/collabboard-sub001/application/ports"
	"github.com/AaronCarney/collabboard-sub001/domain/board"
)

// AIApplied summarizes what an AI command result changed locally
type AIApplied struct {
	CreatedIDs  []string
	ModifiedIDs []string
	DeletedIDs  []string
}

// ApplyAIResult merges a router-produced mutation set through the same
// optimistic path as direct edits: apply locally, broadcast per object,
// persist in batch. Invalid objects are skipped with a log line; stale
// versions are dropped under the usual rule.
func (s *Store) ApplyAIResult(result *ports.CommandResult) AIApplied {
	var applied AIApplied
	var accepted []*board.Object

	s.mu.Lock()
	for _, obj := range result.Objects {
		if err := obj.Validate(); err != nil {
			s.logger.Warn("skipping invalid AI object",
				zap.String("objectID", obj.ID),
				zap.Error(err),
			)
			continue
		}
		incoming := obj.Clone()
		existing := s.findLocked(incoming.ID)
		if existing == nil {
			s.objects = append(s.objects, incoming)
			applied.CreatedIDs = append(applied.CreatedIDs, incoming.ID)
		} else if board.ShouldAcceptUpdate(incoming.Version, existing.Version) {
			s.replaceLocked(incoming)
			applied.ModifiedIDs = append(applied.ModifiedIDs, incoming.ID)
		} else {
			s.metrics.StaleUpdatesDropped.Inc()
			continue
		}
		accepted = append(accepted, incoming)
	}
	for _, id := range result.DeletedIDs {
		s.removeLocked(id)
		applied.DeletedIDs = append(applied.DeletedIDs, id)
	}
	s.mu.Unlock()

	for _, obj := range accepted {
		s.broadcastAsync(ports.Event{
			Type:     ports.EventObjectUpsert,
			SenderID: s.userID,
			Object:   obj.Clone(),
		})
	}
	for _, id := range applied.DeletedIDs {
		s.broadcastAsync(ports.Event{
			Type:     ports.EventObjectDelete,
			SenderID: s.userID,
			ObjectID: id,
		})
	}
	if result.Message != "" {
		s.broadcastAsync(ports.Event{
			Type:     ports.EventAIResult,
			SenderID: s.userID,
			Message:  result.Message,
		})
	}

	if len(accepted) > 0 {
		batch := make([]*board.Object, len(accepted))
		for i, obj := range accepted {
			batch[i] = obj.Clone()
		}
		s.persistAsync("ai-upsert", "", func(ctx context.Context) error {
			return s.repo.Upsert(ctx, batch)
		})
	}
	if len(applied.DeletedIDs) > 0 {
		ids := append([]string(nil), applied.DeletedIDs...)
		s.persistAsync("ai-delete", "", func(ctx context.Context) error {
			return s.repo.DeleteMany(ctx, s.boardID, ids)
		})
	}

	return applied
}
