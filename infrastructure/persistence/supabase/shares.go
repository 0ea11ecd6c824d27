package supabase

import (
	"context"

	"github.com/supabase-community/supabase-go"

	"github.com/AaronCarney/collabboard-sub001/application/ports"
	pkgerrors "github.com/AaronCarney/collabboard-sub001/pkg/errors"
)

const sharesTable = "board_shares"

// ShareRepository is the supabase-backed board_shares store
type ShareRepository struct {
	client *supabase.Client
}

// NewShareRepository creates a repository on an initialized supabase client
func NewShareRepository(client *supabase.Client) *ShareRepository {
	return &ShareRepository{client: client}
}

var _ ports.ShareRepository = (*ShareRepository)(nil)

// Create inserts a share row
func (r *ShareRepository) Create(_ context.Context, share *ports.Share) error {
	_, _, err := r.client.From(sharesTable).
		Insert(share, false, "", "", "").
		Execute()
	if err != nil {
		return pkgerrors.Wrap(err, "create board share")
	}
	return nil
}

// GetByToken resolves a share token to its row
func (r *ShareRepository) GetByToken(_ context.Context, token string) (*ports.Share, error) {
	var rows []*ports.Share
	_, err := r.client.From(sharesTable).
		Select("*", "", false).
		Eq("token", token).
		ExecuteTo(&rows)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "get board share")
	}
	if len(rows) == 0 {
		return nil, pkgerrors.NewNotFound("share token not found")
	}
	return rows[0], nil
}

// ListByBoard returns every share of a board
func (r *ShareRepository) ListByBoard(_ context.Context, boardID string) ([]*ports.Share, error) {
	var rows []*ports.Share
	_, err := r.client.From(sharesTable).
		Select("*", "", false).
		Eq("board_id", boardID).
		ExecuteTo(&rows)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list board shares")
	}
	return rows, nil
}

// Delete removes a share row by id
func (r *ShareRepository) Delete(_ context.Context, id string) error {
	_, _, err := r.client.From(sharesTable).
		Delete("", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return pkgerrors.Wrap(err, "delete board share")
	}
	return nil
}
