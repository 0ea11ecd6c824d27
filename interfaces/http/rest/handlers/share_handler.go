package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AaronCarney/collabboard-sub001/application/ports"
	"github.com/AaronCarney/collabboard-sub001/interfaces/http/rest/middleware"
	pkgerrors "github.com/AaronCarney/collabboard-sub001/pkg/errors"
)

// ShareHandler serves the board_shares REST surface
type ShareHandler struct {
	repo     ports.ShareRepository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewShareHandler creates the handler
func NewShareHandler(repo ports.ShareRepository, logger *zap.Logger) *ShareHandler {
	return &ShareHandler{
		repo:     repo,
		validate: validator.New(),
		logger:   logger,
	}
}

// CreateShareRequest is the POST body for creating a share link
type CreateShareRequest struct {
	AccessLevel string `json:"access_level" validate:"required,oneof=view edit"`
}

// Create handles POST /api/boards/{boardID}/shares
func (h *ShareHandler) Create(w http.ResponseWriter, r *http.Request) {
	boardID := chi.URLParam(r, "boardID")
	userID := middleware.UserIDFrom(r.Context())

	var req CreateShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, pkgerrors.NewValidation("malformed request body"))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respondError(w, pkgerrors.NewValidation(err.Error()))
		return
	}

	share := &ports.Share{
		ID:          uuid.New().String(),
		BoardID:     boardID,
		Token:       uuid.New().String(),
		AccessLevel: req.AccessLevel,
		CreatedBy:   userID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.repo.Create(r.Context(), share); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, share)
}

// Redeem handles GET /api/shares/{token}, resolving a share link to the
// board and access level it grants.
func (h *ShareHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	share, err := h.repo.GetByToken(r.Context(), token)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"board_id":     share.BoardID,
		"access_level": share.AccessLevel,
	})
}

// List handles GET /api/boards/{boardID}/shares
func (h *ShareHandler) List(w http.ResponseWriter, r *http.Request) {
	boardID := chi.URLParam(r, "boardID")

	shares, err := h.repo.ListByBoard(r.Context(), boardID)
	if err != nil {
		respondError(w, err)
		return
	}
	if shares == nil {
		shares = []*ports.Share{}
	}
	respondJSON(w, http.StatusOK, shares)
}

// Delete handles DELETE /api/shares/{id}
func (h *ShareHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.repo.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
