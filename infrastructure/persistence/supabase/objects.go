// Package supabase implements the persistence ports over the managed
// postgres reached through the supabase REST interface. Row-level security is
// the database's concern; this layer only issues the queries.
package supabase

import (
	"context"

	"github.com/supabase-community/supabase-go"

	"github.com/AaronCarney/collabboard-sub001/application/ports"
	"github.com/AaronCarney/collabboard-sub001/domain/board"
	pkgerrors "github.com/AaronCarney/collabboard-sub001/pkg/errors"
)

const objectsTable = "board_objects"

// ObjectRepository is the supabase-backed board_objects store
type ObjectRepository struct {
	client *supabase.Client
}

// NewObjectRepository creates a repository on an initialized supabase client
func NewObjectRepository(client *supabase.Client) *ObjectRepository {
	return &ObjectRepository{client: client}
}

var _ ports.ObjectRepository = (*ObjectRepository)(nil)

// List returns every object row belonging to the board
func (r *ObjectRepository) List(_ context.Context, boardID string) ([]*board.Object, error) {
	var rows []*board.Object
	_, err := r.client.From(objectsTable).
		Select("*", "", false).
		Eq("board_id", boardID).
		ExecuteTo(&rows)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list board objects")
	}
	return rows, nil
}

// Insert persists a newly created object
func (r *ObjectRepository) Insert(_ context.Context, obj *board.Object) error {
	_, _, err := r.client.From(objectsTable).
		Insert(obj, false, "", "", "").
		Execute()
	if err != nil {
		return pkgerrors.Wrap(err, "insert board object")
	}
	return nil
}

// Update persists only the changed fields of one object
func (r *ObjectRepository) Update(_ context.Context, boardID, id string, fields map[string]interface{}) error {
	_, _, err := r.client.From(objectsTable).
		Update(fields, "", "").
		Eq("board_id", boardID).
		Eq("id", id).
		Execute()
	if err != nil {
		return pkgerrors.Wrap(err, "update board object")
	}
	return nil
}

// Upsert writes a batch of objects keyed on their primary key
func (r *ObjectRepository) Upsert(_ context.Context, objects []*board.Object) error {
	if len(objects) == 0 {
		return nil
	}
	_, _, err := r.client.From(objectsTable).
		Insert(objects, true, "id", "", "").
		Execute()
	if err != nil {
		return pkgerrors.Wrap(err, "upsert board objects")
	}
	return nil
}

// Delete removes a single object row
func (r *ObjectRepository) Delete(_ context.Context, boardID, id string) error {
	_, _, err := r.client.From(objectsTable).
		Delete("", "").
		Eq("board_id", boardID).
		Eq("id", id).
		Execute()
	if err != nil {
		return pkgerrors.Wrap(err, "delete board object")
	}
	return nil
}

// DeleteMany removes every object whose id is in the list
func (r *ObjectRepository) DeleteMany(_ context.Context, boardID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, _, err := r.client.From(objectsTable).
		Delete("", "").
		Eq("board_id", boardID).
		In("id", ids).
		Execute()
	if err != nil {
		return pkgerrors.Wrap(err, "delete board objects")
	}
	return nil
}
