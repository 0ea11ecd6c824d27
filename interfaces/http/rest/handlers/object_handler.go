package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/AaronCarney/collabboard-sub001/application/boardstore"
	"github.com/AaronCarney/collabboard-sub001/application/ports"
	"github.com/AaronCarney/collabboard-sub001/domain/board"
	"github.com/AaronCarney/collabboard-sub001/interfaces/http/rest/middleware"
	pkgerrors "github.com/AaronCarney/collabboard-sub001/pkg/errors"
)

// ObjectHandler serves the board_objects REST surface. Writes flow through
// the same broadcast path as direct edits so API callers and live sessions
// stay consistent.
type ObjectHandler struct {
	repo     ports.ObjectRepository
	channels ports.ChannelFactory
	validate *validator.Validate
	logger   *zap.Logger
}

// NewObjectHandler creates the handler
func NewObjectHandler(repo ports.ObjectRepository, channels ports.ChannelFactory, logger *zap.Logger) *ObjectHandler {
	return &ObjectHandler{
		repo:     repo,
		channels: channels,
		validate: validator.New(),
		logger:   logger,
	}
}

// CreateObjectRequest is the POST body for creating an object
type CreateObjectRequest struct {
	Type    board.ObjectType `json:"type" validate:"required"`
	X       float64          `json:"x"`
	Y       float64          `json:"y"`
	Content *string          `json:"content,omitempty"`
	Color   *string          `json:"color,omitempty"`
}

// List handles GET /api/boards/{boardID}/objects
func (h *ObjectHandler) List(w http.ResponseWriter, r *http.Request) {
	boardID := chi.URLParam(r, "boardID")

	objects, err := h.repo.List(r.Context(), boardID)
	if err != nil {
		respondError(w, err)
		return
	}
	if objects == nil {
		objects = []*board.Object{}
	}
	respondJSON(w, http.StatusOK, objects)
}

// Create handles POST /api/boards/{boardID}/objects
func (h *ObjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	boardID := chi.URLParam(r, "boardID")
	userID := middleware.UserIDFrom(r.Context())

	var req CreateObjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, pkgerrors.NewValidation("malformed request body"))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respondError(w, pkgerrors.NewValidation(err.Error()))
		return
	}

	obj := board.NewObject(req.Type, boardID, userID, req.X, req.Y)
	if req.Content != nil {
		obj.Content = *req.Content
	}
	if req.Color != nil {
		obj.Color = *req.Color
	}
	if err := obj.Validate(); err != nil {
		respondError(w, err)
		return
	}

	if err := h.repo.Insert(r.Context(), obj); err != nil {
		respondError(w, err)
		return
	}
	h.broadcastUpsert(r.Context(), boardID, userID, obj)

	respondJSON(w, http.StatusCreated, obj)
}

// UpdateObjectRequest is the PATCH body. Absent fields are left untouched.
type UpdateObjectRequest struct {
	X          *float64          `json:"x,omitempty"`
	Y          *float64          `json:"y,omitempty"`
	Width      *float64          `json:"width,omitempty"`
	Height     *float64          `json:"height,omitempty"`
	Rotation   *float64          `json:"rotation,omitempty"`
	Content    *string           `json:"content,omitempty"`
	Color      *string           `json:"color,omitempty"`
	Opacity    *float64          `json:"opacity,omitempty"`
	FontSize   *float64          `json:"font_size,omitempty"`
	FontFamily *string           `json:"font_family,omitempty"`
	Properties *board.Properties `json:"properties,omitempty"`
}

// Update handles PATCH /api/boards/{boardID}/objects/{id}. The change runs
// through a headless board session so the version bump and the broadcast
// match a direct edit.
func (h *ObjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	boardID := chi.URLParam(r, "boardID")
	id := chi.URLParam(r, "id")
	userID := middleware.UserIDFrom(r.Context())

	var req UpdateObjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, pkgerrors.NewValidation("malformed request body"))
		return
	}

	store := boardstore.New(boardID, userID, "", h.repo, h.channels.Channel(boardID), h.logger, nil)
	if err := store.LoadObjects(r.Context()); err != nil {
		respondError(w, err)
		return
	}

	updated := store.UpdateObject(id, boardstore.Changes{
		X:          req.X,
		Y:          req.Y,
		Width:      req.Width,
		Height:     req.Height,
		Rotation:   req.Rotation,
		Content:    req.Content,
		Color:      req.Color,
		Opacity:    req.Opacity,
		FontSize:   req.FontSize,
		FontFamily: req.FontFamily,
		Properties: req.Properties,
	})
	if updated == nil {
		respondError(w, pkgerrors.NewNotFound("object not found"))
		return
	}
	store.Wait()

	respondJSON(w, http.StatusOK, updated)
}

// Upsert handles PUT /api/boards/{boardID}/objects/{id}. The body carries
// the full object; conflict resolution against concurrent editors happens on
// each client under the version rule, so the row is written as given.
func (h *ObjectHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	boardID := chi.URLParam(r, "boardID")
	id := chi.URLParam(r, "id")
	userID := middleware.UserIDFrom(r.Context())

	var obj board.Object
	if err := json.NewDecoder(r.Body).Decode(&obj); err != nil {
		respondError(w, pkgerrors.NewValidation("malformed request body"))
		return
	}
	if obj.ID != id || obj.BoardID != boardID {
		respondError(w, pkgerrors.NewValidation("object id and board id must match the path"))
		return
	}
	if err := obj.Validate(); err != nil {
		respondError(w, err)
		return
	}

	if err := h.repo.Upsert(r.Context(), []*board.Object{&obj}); err != nil {
		respondError(w, err)
		return
	}
	h.broadcastUpsert(r.Context(), boardID, userID, &obj)

	respondJSON(w, http.StatusOK, &obj)
}

// Delete handles DELETE /api/boards/{boardID}/objects/{id}
func (h *ObjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	boardID := chi.URLParam(r, "boardID")
	id := chi.URLParam(r, "id")
	userID := middleware.UserIDFrom(r.Context())

	if err := h.repo.Delete(r.Context(), boardID, id); err != nil {
		respondError(w, err)
		return
	}

	channel := h.channels.Channel(boardID)
	if err := channel.Broadcast(r.Context(), ports.Event{
		Type:     ports.EventObjectDelete,
		SenderID: userID,
		ObjectID: id,
	}); err != nil {
		h.logger.Warn("failed to broadcast delete", zap.Error(err))
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ObjectHandler) broadcastUpsert(ctx context.Context, boardID, userID string, obj *board.Object) {
	channel := h.channels.Channel(boardID)
	if err := channel.Broadcast(ctx, ports.Event{
		Type:     ports.EventObjectUpsert,
		SenderID: userID,
		Object:   obj.Clone(),
	}); err != nil {
		h.logger.Warn("failed to broadcast upsert", zap.Error(err))
	}
}
