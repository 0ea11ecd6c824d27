package memory

import (
	"context"
	"sync"

	"github.com/AaronCarney/collabboard-sub001/application/ports"
	pkgerrors "github.com/AaronCarney/collabboard-sub001/pkg/errors"
)

// ShareRepository is a mutex-guarded in-memory board_shares table
type ShareRepository struct {
	mu     sync.RWMutex
	shares map[string]*ports.Share // id -> share
}

// NewShareRepository creates an empty in-memory share repository
func NewShareRepository() *ShareRepository {
	return &ShareRepository{shares: make(map[string]*ports.Share)}
}

var _ ports.ShareRepository = (*ShareRepository)(nil)

// Create inserts a share row
func (r *ShareRepository) Create(_ context.Context, share *ports.Share) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *share
	r.shares[share.ID] = &cp
	return nil
}

// GetByToken resolves a share token
func (r *ShareRepository) GetByToken(_ context.Context, token string) (*ports.Share, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, share := range r.shares {
		if share.Token == token {
			cp := *share
			return &cp, nil
		}
	}
	return nil, pkgerrors.NewNotFound("share token not found")
}

// ListByBoard returns every share of a board
func (r *ShareRepository) ListByBoard(_ context.Context, boardID string) ([]*ports.Share, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var rows []*ports.Share
	for _, share := range r.shares {
		if share.BoardID == boardID {
			cp := *share
			rows = append(rows, &cp)
		}
	}
	return rows, nil
}

// Delete removes a share row by id
func (r *ShareRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.shares, id)
	return nil
}
