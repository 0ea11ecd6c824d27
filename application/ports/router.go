package ports

import (
	"context"

	"github.com/AaronCarney/collabboard-sub001/domain/board"
)

// CommandRequest is the input contract of the external AI command router
type CommandRequest struct {
	Command           string          `json:"command"`
	BoardID           string          `json:"boardId"`
	UserID            string          `json:"userId"`
	ExistingObjects   []*board.Object `json:"existingObjects"`
	ViewportCenter    *board.Point    `json:"viewportCenter,omitempty"`
	SelectedObjectIDs []string        `json:"selectedObjectIds,omitempty"`
}

// CommandResult is the mutation set the router produced. Objects are applied
// through the board store exactly like a user's direct edits.
type CommandResult struct {
	Objects    []*board.Object `json:"objects"`
	DeletedIDs []string        `json:"deletedIds,omitempty"`
	Message    string          `json:"message"`
	TokensUsed int             `json:"tokensUsed"`
	LatencyMS  int64           `json:"latencyMs"`
	IsTemplate bool            `json:"isTemplate"`
}

// CommandRouter turns a natural-language command into board mutations. The
// application treats it as an opaque function; prompt construction and LLM
// selection are its own concern.
type CommandRouter interface {
	Route(ctx context.Context, req CommandRequest) (*CommandResult, error)
}
