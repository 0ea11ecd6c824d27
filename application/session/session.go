// Package session keeps a short-lived, per-(user, board) record of the object
// ids an AI command most recently created or modified, so follow-up commands
// can resolve pronouns like "it" and "them" against them.
package session

import (
	"context"
	"time"
)

const (
	// TTL is how long an entry stays resolvable after it was saved
	TTL = 5 * time.Minute

	// MaxEntries caps the whole store; the globally oldest entry is evicted
	// when the cap would be exceeded.
	MaxEntries = 1000
)

// Entry is the ephemeral record saved after every successful AI command
type Entry struct {
	LastCreatedIDs  []string  `json:"last_created_ids"`
	LastModifiedIDs []string  `json:"last_modified_ids"`
	LastCommandText string    `json:"last_command_text"`
	Timestamp       time.Time `json:"timestamp"`
}

// Store is the session-memory contract. Get returns (nil, nil) for absent or
// expired entries; expiry is lazy on read plus a global sweep on write.
type Store interface {
	Save(ctx context.Context, userID, boardID string, entry *Entry) error
	Get(ctx context.Context, userID, boardID string) (*Entry, error)
}
