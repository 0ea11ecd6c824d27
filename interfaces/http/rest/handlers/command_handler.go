package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/AaronCarney/collabboard-sub001/application/boardstore"
	"github.com/AaronCarney/collabboard-sub001/application/commands"
	"github.com/AaronCarney/collabboard-sub001/application/ports"
	"github.com/AaronCarney/collabboard-sub001/interfaces/http/rest/middleware"
	pkgerrors "github.com/AaronCarney/collabboard-sub001/pkg/errors"
	"github.com/AaronCarney/collabboard-sub001/pkg/observability"
)

// CommandHandler runs AI commands through a short-lived headless board
// session, so router mutations broadcast to live peers exactly like edits
// from another user.
type CommandHandler struct {
	service  *commands.Service
	repo     ports.ObjectRepository
	channels ports.ChannelFactory
	validate *validator.Validate
	logger   *zap.Logger
	metrics  *observability.Metrics
}

// NewCommandHandler creates the handler
func NewCommandHandler(service *commands.Service, repo ports.ObjectRepository, channels ports.ChannelFactory, logger *zap.Logger, metrics *observability.Metrics) *CommandHandler {
	return &CommandHandler{
		service:  service,
		repo:     repo,
		channels: channels,
		validate: validator.New(),
		logger:   logger,
		metrics:  metrics,
	}
}

// Execute handles POST /api/boards/{boardID}/ai/command
func (h *CommandHandler) Execute(w http.ResponseWriter, r *http.Request) {
	boardID := chi.URLParam(r, "boardID")
	userID := middleware.UserIDFrom(r.Context())

	var req commands.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, pkgerrors.NewValidation("malformed request body"))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respondError(w, pkgerrors.NewValidation(err.Error()))
		return
	}

	store := boardstore.New(boardID, userID, "AI Assistant", h.repo, h.channels.Channel(boardID), h.logger, h.metrics)
	if err := store.LoadObjects(r.Context()); err != nil {
		respondError(w, pkgerrors.Wrap(err, "failed to load board"))
		return
	}

	// Broadcast is best-effort: a channel that cannot be joined does not
	// fail the command, the mutations are still persisted and returned.
	cleanup, err := store.Subscribe(r.Context())
	if err != nil {
		h.logger.Warn("proceeding without board channel", zap.Error(err))
	} else {
		defer cleanup()
	}

	result, err := h.service.Execute(r.Context(), store, req)
	if err != nil {
		respondError(w, err)
		return
	}
	store.Wait()

	respondJSON(w, http.StatusOK, result)
}
