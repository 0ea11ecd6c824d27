// Package ports declares the interfaces the application layer depends on.
// Implementations live under infrastructure; tests substitute in-memory ones.
package ports

import (
	"context"
	"time"

	"github.com/AaronCarney/collabboard-sub001/domain/board"
)

// ObjectRepository is the row-oriented interface over the board_objects table
type ObjectRepository interface {
	// List returns every object belonging to the board
	List(ctx context.Context, boardID string) ([]*board.Object, error)

	// Insert persists a newly created object
	Insert(ctx context.Context, obj *board.Object) error

	// Update persists only the changed fields of an object, identified by id
	Update(ctx context.Context, boardID, id string, fields map[string]interface{}) error

	// Upsert writes a batch of objects with insert-or-update-by-primary-key
	// semantics.
	Upsert(ctx context.Context, objects []*board.Object) error

	// Delete removes a single object by id
	Delete(ctx context.Context, boardID, id string) error

	// DeleteMany removes every object whose id is in the list
	DeleteMany(ctx context.Context, boardID string, ids []string) error
}

// Share is a row of the board_shares table granting access to a board via an
// unguessable token.
type Share struct {
	ID          string    `json:"id"`
	BoardID     string    `json:"board_id"`
	Token       string    `json:"token"`
	AccessLevel string    `json:"access_level"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// ShareRepository is the row-oriented interface over the board_shares table
type ShareRepository interface {
	Create(ctx context.Context, share *Share) error
	GetByToken(ctx context.Context, token string) (*Share, error)
	ListByBoard(ctx context.Context, boardID string) ([]*Share, error)
	Delete(ctx context.Context, id string) error
}

// Authenticator resolves an access token to a user id
type Authenticator interface {
	// UserID returns the authenticated user id for the token, or an error
	// when the token is missing or invalid.
	UserID(ctx context.Context, token string) (string, error)
}
