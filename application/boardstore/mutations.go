package boardstore

import (
	"context"
	"time"

	"github.com/AaronCarney/collabboard-sub001/application/ports"
	"github.com/AaronCarney/collabboard-sub001/domain/board"
	"github.com/AaronCarney/collabboard-sub001/domain/frames"
)

// Changes is a partial update to an object. Nil fields are left untouched;
// ClearParentFrame detaches the object from its frame explicitly since a nil
// ParentFrameID cannot distinguish "unset" from "clear".
type Changes struct {
	X                *float64
	Y                *float64
	Width            *float64
	Height           *float64
	Rotation         *float64
	Content          *string
	Color            *string
	Opacity          *float64
	FontSize         *float64
	FontFamily       *string
	ParentFrameID    *string
	ClearParentFrame bool
	Properties       *board.Properties
}

// apply mutates the object in place and returns the wire-named field map of
// what changed, for partial persistence.
func (c Changes) apply(obj *board.Object) map[string]interface{} {
	fields := make(map[string]interface{})

	if c.X != nil {
		obj.X = *c.X
		fields["x"] = *c.X
	}
	if c.Y != nil {
		obj.Y = *c.Y
		fields["y"] = *c.Y
	}
	if c.Width != nil {
		obj.Width = *c.Width
		fields["width"] = *c.Width
	}
	if c.Height != nil {
		obj.Height = *c.Height
		fields["height"] = *c.Height
	}
	if c.Rotation != nil {
		obj.Rotation = *c.Rotation
		fields["rotation"] = *c.Rotation
	}
	if c.Content != nil {
		obj.Content = *c.Content
		fields["content"] = *c.Content
	}
	if c.Color != nil {
		obj.Color = *c.Color
		fields["color"] = *c.Color
	}
	if c.Opacity != nil {
		obj.Opacity = *c.Opacity
		fields["opacity"] = *c.Opacity
	}
	if c.FontSize != nil {
		obj.FontSize = *c.FontSize
		fields["font_size"] = *c.FontSize
	}
	if c.FontFamily != nil {
		obj.FontFamily = *c.FontFamily
		fields["font_family"] = *c.FontFamily
	}
	if c.ClearParentFrame {
		obj.ParentFrameID = nil
		fields["parent_frame_id"] = nil
	} else if c.ParentFrameID != nil {
		id := *c.ParentFrameID
		obj.ParentFrameID = &id
		fields["parent_frame_id"] = id
	}
	if c.Properties != nil {
		obj.Properties = *c.Properties
		fields["properties"] = *c.Properties
	}
	return fields
}

// CreateObject builds an object of the given type at (x, y) from the per-type
// defaults, inserts it into local state immediately, broadcasts the upsert
// tagged with this session's user, then persists. Persistence failure does
// not roll back the optimistic insert.
func (s *Store) CreateObject(objectType board.ObjectType, x, y float64) *board.Object {
	obj := board.NewObject(objectType, s.boardID, s.userID, x, y)

	s.mu.Lock()
	s.objects = append(s.objects, obj)
	s.mu.Unlock()

	s.broadcastAsync(ports.Event{
		Type:     ports.EventObjectUpsert,
		SenderID: s.userID,
		Object:   obj.Clone(),
	})
	s.persistAsync("insert", obj.ID, func(ctx context.Context) error {
		return s.repo.Insert(ctx, obj.Clone())
	})

	return obj
}

// UpdateObject applies the changes to the matching object, bumps its version
// by exactly one, refreshes updated_at, broadcasts the full object and
// persists only the changed fields. Unknown ids are a silent no-op.
func (s *Store) UpdateObject(id string, changes Changes) *board.Object {
	s.mu.Lock()
	obj := s.findLocked(id)
	if obj == nil {
		s.mu.Unlock()
		return nil
	}

	fields := changes.apply(obj)
	obj.Version++
	obj.UpdatedAt = time.Now().UTC()
	fields["version"] = obj.Version
	fields["updated_at"] = obj.UpdatedAt
	updated := obj.Clone()
	s.mu.Unlock()

	s.broadcastAsync(ports.Event{
		Type:     ports.EventObjectUpsert,
		SenderID: s.userID,
		Object:   updated,
	})
	s.persistAsync("update", id, func(ctx context.Context) error {
		return s.repo.Update(ctx, s.boardID, id, fields)
	})

	return updated
}

// DeleteObject removes the object locally, broadcasts the delete and persists
// it. Deleting a frame first detaches its children; children are never
// deleted transitively. Already-absent ids are tolerated.
func (s *Store) DeleteObject(id string) {
	s.mu.Lock()
	obj := s.findLocked(id)
	var detached []*board.Object
	if obj != nil && obj.Type == board.TypeFrame {
		detached = frames.NullifyChildren(id, s.objects)
		for _, child := range detached {
			s.replaceLocked(child)
		}
	}
	s.removeLocked(id)
	s.mu.Unlock()

	for _, child := range detached {
		child := child
		s.broadcastAsync(ports.Event{
			Type:     ports.EventObjectUpsert,
			SenderID: s.userID,
			Object:   child.Clone(),
		})
		s.persistAsync("detach", child.ID, func(ctx context.Context) error {
			return s.repo.Update(ctx, s.boardID, child.ID, map[string]interface{}{
				"parent_frame_id": nil,
			})
		})
	}

	s.broadcastAsync(ports.Event{
		Type:     ports.EventObjectDelete,
		SenderID: s.userID,
		ObjectID: id,
	})
	s.persistAsync("delete", id, func(ctx context.Context) error {
		return s.repo.Delete(ctx, s.boardID, id)
	})
}

// DeleteSelection deletes every currently selected object
func (s *Store) DeleteSelection() {
	for _, id := range s.Selection() {
		s.DeleteObject(id)
	}
}

// MoveSelection translates every selected object by (dx, dy). Moving a frame
// carries its children along; moving a regular object re-resolves which frame
// now contains it.
func (s *Store) MoveSelection(dx, dy float64) {
	s.mu.Lock()
	ids := append([]string(nil), s.selection...)
	s.mu.Unlock()

	for _, id := range ids {
		s.mu.Lock()
		obj := s.findLocked(id)
		if obj == nil {
			s.mu.Unlock()
			continue
		}
		isFrame := obj.Type == board.TypeFrame
		newX := obj.X + dx
		newY := obj.Y + dy
		hadParent := obj.ParentFrameID != nil
		probe := obj.Clone()
		var carried []*board.Object
		if isFrame {
			carried = frames.ApplyFrameMove(id, dx, dy, s.objects)
			for _, child := range carried {
				s.replaceLocked(child)
			}
		}
		s.mu.Unlock()

		for _, child := range carried {
			child := child
			s.broadcastAsync(ports.Event{
				Type:     ports.EventObjectUpsert,
				SenderID: s.userID,
				Object:   child.Clone(),
			})
			s.persistAsync("move-child", child.ID, func(ctx context.Context) error {
				return s.repo.Update(ctx, s.boardID, child.ID, map[string]interface{}{
					"x":          child.X,
					"y":          child.Y,
					"version":    child.Version,
					"updated_at": child.UpdatedAt,
				})
			})
		}

		changes := Changes{X: &newX, Y: &newY}

		if !isFrame {
			// Re-resolve containment at the dropped position.
			probe.X, probe.Y = newX, newY
			s.mu.Lock()
			parentID := frames.AdoptInto(probe, s.objects)
			s.mu.Unlock()
			if parentID != nil {
				changes.ParentFrameID = parentID
			} else if hadParent {
				changes.ClearParentFrame = true
			}
		}

		s.UpdateObject(id, changes)
	}
}

// replaceLocked swaps the local copy of an object by id; callers hold the lock
func (s *Store) replaceLocked(obj *board.Object) {
	for i, existing := range s.objects {
		if existing.ID == obj.ID {
			s.objects[i] = obj
			return
		}
	}
	s.objects = append(s.objects, obj)
}
