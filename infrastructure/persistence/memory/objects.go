// Package memory provides in-process implementations of the persistence
// ports for tests and local development without a database.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/AaronCarney/collabboard-sub001/application/ports"
	"github.com/AaronCarney/collabboard-sub001/domain/board"
)

// ObjectRepository is a mutex-guarded in-memory board_objects table
type ObjectRepository struct {
	mu      sync.RWMutex
	objects map[string]map[string]*board.Object // boardID -> id -> object
}

// NewObjectRepository creates an empty in-memory repository
func NewObjectRepository() *ObjectRepository {
	return &ObjectRepository{
		objects: make(map[string]map[string]*board.Object),
	}
}

var _ ports.ObjectRepository = (*ObjectRepository)(nil)

// List returns clones of every object on the board
func (r *ObjectRepository) List(_ context.Context, boardID string) ([]*board.Object, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var rows []*board.Object
	for _, obj := range r.objects[boardID] {
		rows = append(rows, obj.Clone())
	}
	return rows, nil
}

// Insert stores a clone of the object
func (r *ObjectRepository) Insert(_ context.Context, obj *board.Object) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.boardLocked(obj.BoardID)[obj.ID] = obj.Clone()
	return nil
}

// Update applies the changed fields to the stored row. Missing rows are a
// no-op, mirroring the update-where semantics of the real store.
func (r *ObjectRepository) Update(_ context.Context, boardID, id string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	obj, ok := r.objects[boardID][id]
	if !ok {
		return nil
	}
	applyFields(obj, fields)
	return nil
}

// Upsert writes each object by primary key
func (r *ObjectRepository) Upsert(_ context.Context, objects []*board.Object) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, obj := range objects {
		r.boardLocked(obj.BoardID)[obj.ID] = obj.Clone()
	}
	return nil
}

// Delete removes a row; absent rows are tolerated
func (r *ObjectRepository) Delete(_ context.Context, boardID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.objects[boardID], id)
	return nil
}

// DeleteMany removes every row whose id is listed
func (r *ObjectRepository) DeleteMany(_ context.Context, boardID string, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.objects[boardID], id)
	}
	return nil
}

func (r *ObjectRepository) boardLocked(boardID string) map[string]*board.Object {
	if r.objects[boardID] == nil {
		r.objects[boardID] = make(map[string]*board.Object)
	}
	return r.objects[boardID]
}

// applyFields mirrors the column names used by the partial-update path
func applyFields(obj *board.Object, fields map[string]interface{}) {
	for name, value := range fields {
		switch name {
		case "x":
			obj.X = value.(float64)
		case "y":
			obj.Y = value.(float64)
		case "width":
			obj.Width = value.(float64)
		case "height":
			obj.Height = value.(float64)
		case "rotation":
			obj.Rotation = value.(float64)
		case "content":
			obj.Content = value.(string)
		case "color":
			obj.Color = value.(string)
		case "opacity":
			obj.Opacity = value.(float64)
		case "font_size":
			obj.FontSize = value.(float64)
		case "font_family":
			obj.FontFamily = value.(string)
		case "version":
			obj.Version = value.(int)
		case "updated_at":
			obj.UpdatedAt = value.(time.Time)
		case "parent_frame_id":
			if value == nil {
				obj.ParentFrameID = nil
			} else {
				id := value.(string)
				obj.ParentFrameID = &id
			}
		case "properties":
			obj.Properties = value.(board.Properties)
		}
	}
}
