// Package boardstore holds the authoritative local copy of a board session:
// its objects, camera, selection and the live presence of other users. Local
// mutations are applied optimistically, then persisted and broadcast; remote
// broadcasts are merged under a version-based last-write-wins rule.
package boardstore

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/AaronCarney/collabboard-sub001/application/ports"
	"github.com/AaronCarney/collabboard-sub001/domain/board"
	"github.com/AaronCarney/collabboard-sub001/domain/geometry"
	"github.com/AaronCarney/collabboard-sub001/pkg/observability"
)

// remoteCallTimeout bounds every fire-and-forget persistence or broadcast
// call spawned by an optimistic mutation.
const remoteCallTimeout = 5 * time.Second

// ToolSelect is the default active tool
const ToolSelect = "select"

// Store is the per-board-session state machine. All methods are safe for
// concurrent use; local state is mutated synchronously under the lock before
// any network call is spawned, so per-object call order is preserved.
type Store struct {
	boardID  string
	userID   string
	userName string

	mu         sync.Mutex
	objects    []*board.Object
	camera     board.Camera
	selection  []string
	activeTool string
	cursors    map[string]ports.CursorPosition
	presence   []ports.PresenceUser
	editingID  string

	repo    ports.ObjectRepository
	channel ports.Channel
	logger  *zap.Logger
	metrics *observability.Metrics

	// wg tracks in-flight persistence and broadcast goroutines so tests and
	// shutdown can wait for them.
	wg sync.WaitGroup
}

// New creates a store for one (user, board) session
func New(boardID, userID, userName string, repo ports.ObjectRepository, channel ports.Channel, logger *zap.Logger, metrics *observability.Metrics) *Store {
	if metrics == nil {
		metrics = observability.NewNopMetrics()
	}
	return &Store{
		boardID:    boardID,
		userID:     userID,
		userName:   userName,
		camera:     board.DefaultCamera(),
		activeTool: ToolSelect,
		cursors:    make(map[string]ports.CursorPosition),
		repo:       repo,
		channel:    channel,
		logger:     logger.With(zap.String("boardID", boardID), zap.String("userID", userID)),
		metrics:    metrics,
	}
}

// BoardID returns the board this store is bound to
func (s *Store) BoardID() string { return s.boardID }

// UserID returns the session user
func (s *Store) UserID() string { return s.userID }

// LoadObjects replaces the entire local object collection with the
// repository's current rows. On fetch failure existing state is left
// untouched.
func (s *Store) LoadObjects(ctx context.Context) error {
	rows, err := s.repo.List(ctx, s.boardID)
	if err != nil {
		s.logger.Error("failed to load board objects", zap.Error(err))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = rows
	return nil
}

// Objects returns a snapshot of the current object collection
func (s *Store) Objects() []*board.Object {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]*board.Object, len(s.objects))
	copy(snapshot, s.objects)
	return snapshot
}

// Object returns the object with the given id, or nil
func (s *Store) Object(id string) *board.Object {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(id)
}

// Camera returns the current view state
func (s *Store) Camera() board.Camera {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.camera
}

// SetCamera replaces the view state
func (s *Store) SetCamera(camera board.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.camera = camera
}

// ViewportCenter returns the world point at the center of the given screen
// viewport, for placing AI-generated content where the user is looking.
func (s *Store) ViewportCenter(screenWidth, screenHeight float64) board.Point {
	s.mu.Lock()
	camera := s.camera
	s.mu.Unlock()
	return geometry.ScreenToWorld(screenWidth/2, screenHeight/2, camera)
}

// Selection returns the selected object ids in selection order
func (s *Store) Selection() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.selection...)
}

// SetSelection replaces the selection
func (s *Store) SetSelection(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = append([]string(nil), ids...)
}

// SelectAll selects every object currently on the board
func (s *Store) SelectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, len(s.objects))
	for i, obj := range s.objects {
		ids[i] = obj.ID
	}
	s.selection = ids
}

// ClearSelection empties the selection and resets the active tool
func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = nil
	s.activeTool = ToolSelect
}

// ActiveTool returns the current tool
func (s *Store) ActiveTool() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeTool
}

// SetTool switches the active tool
func (s *Store) SetTool(tool string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeTool = tool
}

// EditingObjectID returns the id of the object in inline-edit mode, or ""
func (s *Store) EditingObjectID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editingID
}

// SetEditing marks an object as being inline-edited ("" to clear)
func (s *Store) SetEditing(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editingID = id
}

// Cursors returns the last known cursor of every other user
func (s *Store) Cursors() map[string]ports.CursorPosition {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]ports.CursorPosition, len(s.cursors))
	for id, c := range s.cursors {
		out[id] = c
	}
	return out
}

// Presence returns the users currently on the board
func (s *Store) Presence() []ports.PresenceUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ports.PresenceUser(nil), s.presence...)
}

// Wait blocks until every in-flight persistence and broadcast goroutine has
// finished. Used by tests and graceful shutdown.
func (s *Store) Wait() {
	s.wg.Wait()
}

// findLocked returns the local object with the id; callers hold the lock
func (s *Store) findLocked(id string) *board.Object {
	for _, obj := range s.objects {
		if obj.ID == id {
			return obj
		}
	}
	return nil
}

// removeLocked deletes the object from local state and the selection
func (s *Store) removeLocked(id string) {
	for i, obj := range s.objects {
		if obj.ID == id {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			break
		}
	}
	for i, sel := range s.selection {
		if sel == id {
			s.selection = append(s.selection[:i], s.selection[i+1:]...)
			break
		}
	}
	if s.editingID == id {
		s.editingID = ""
	}
}

// persistAsync runs a repository call in the background with a bounded
// timeout. Failures are logged and never surfaced: local state stands and
// reconciliation relies on the next LoadObjects. This availability-first
// behavior is a contract, not an oversight.
func (s *Store) persistAsync(op, objectID string, fn func(ctx context.Context) error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), remoteCallTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			s.logger.Error("persistence failed, local state stands",
				zap.String("op", op),
				zap.String("objectID", objectID),
				zap.Error(err),
			)
		}
	}()
}

// broadcastAsync publishes an event in the background; delivery is
// best-effort and failures only count and log.
func (s *Store) broadcastAsync(event ports.Event) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), remoteCallTimeout)
		defer cancel()
		if err := s.channel.Broadcast(ctx, event); err != nil {
			s.metrics.BroadcastFailures.Inc()
			s.logger.Warn("broadcast failed",
				zap.String("type", string(event.Type)),
				zap.Error(err),
			)
			return
		}
		s.metrics.BroadcastsSent.Inc()
	}()
}

// SendCursor broadcasts the session user's cursor position in world
// coordinates.
func (s *Store) SendCursor(x, y float64) {
	s.broadcastAsync(ports.Event{
		Type:     ports.EventCursor,
		SenderID: s.userID,
		Cursor: &ports.CursorPosition{
			UserID: s.userID,
			Name:   s.userName,
			Color:  geometry.UserColor(s.userID),
			X:      x,
			Y:      y,
		},
	})
}
