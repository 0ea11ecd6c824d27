// Package commands runs the AI command path: rate limiting, anaphora
// resolution against session memory, the routed LLM call behind a circuit
// breaker, and applying the produced mutations through the board store.
package commands

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/AaronCarney/collabboard-sub001/application/boardstore"
	"github.com/AaronCarney/collabboard-sub001/application/ports"
	"github.com/AaronCarney/collabboard-sub001/application/ratelimit"
	"github.com/AaronCarney/collabboard-sub001/application/session"
	"github.com/AaronCarney/collabboard-sub001/domain/board"
	pkgerrors "github.com/AaronCarney/collabboard-sub001/pkg/errors"
	"github.com/AaronCarney/collabboard-sub001/pkg/observability"
)

// routeTimeout bounds the external router round trip
const routeTimeout = 30 * time.Second

// Request is one natural-language command against a board
type Request struct {
	Command           string       `json:"command" validate:"required,min=1,max=2000"`
	SelectedObjectIDs []string     `json:"selected_object_ids,omitempty"`
	ViewportCenter    *board.Point `json:"viewport_center,omitempty"`
}

// Result is what the caller gets back after the command has been applied
type Result struct {
	Applied    boardstore.AIApplied `json:"applied"`
	Message    string               `json:"message"`
	TokensUsed int                  `json:"tokens_used"`
	LatencyMS  int64                `json:"latency_ms"`
	IsTemplate bool                 `json:"is_template"`
}

// Service orchestrates command execution for any board session
type Service struct {
	sessions session.Store
	limiter  ratelimit.Limiter
	router   ports.CommandRouter
	breaker  *gobreaker.CircuitBreaker
	logger   *zap.Logger
	metrics  *observability.Metrics
}

// NewService creates a command service. The circuit breaker opens after
// repeated router failures so a degraded LLM backend cannot pile up requests.
func NewService(sessions session.Store, limiter ratelimit.Limiter, router ports.CommandRouter, logger *zap.Logger, metrics *observability.Metrics) *Service {
	if metrics == nil {
		metrics = observability.NewNopMetrics()
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "ai-command-router",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})
	return &Service{
		sessions: sessions,
		limiter:  limiter,
		router:   router,
		breaker:  breaker,
		logger:   logger,
		metrics:  metrics,
	}
}

// Execute runs one command for the store's session user. Rate limiting is
// checked first; then pronouns in the command are resolved against session
// memory when the caller supplied no explicit selection; then the router runs
// and its result is applied exactly like direct edits.
func (s *Service) Execute(ctx context.Context, store *boardstore.Store, req Request) (*Result, error) {
	userID := store.UserID()
	boardID := store.BoardID()
	started := time.Now()

	allowed, err := s.limiter.Allow(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "rate limiter")
	}
	if !allowed {
		s.metrics.RateLimitDenials.Inc()
		return nil, pkgerrors.NewRateLimited("too many commands, try again in a minute")
	}

	entry, err := s.sessions.Get(ctx, userID, boardID)
	if err != nil {
		s.logger.Warn("session lookup failed, continuing without anaphora",
			zap.String("userID", userID),
			zap.Error(err),
		)
	}

	selected := req.SelectedObjectIDs
	if len(selected) == 0 {
		if resolved := session.ResolveAnaphora(req.Command, entry); resolved != nil {
			selected = resolved
			s.logger.Debug("resolved pronoun reference",
				zap.Strings("objectIDs", resolved),
			)
		}
	}

	routeReq := ports.CommandRequest{
		Command:           req.Command,
		BoardID:           boardID,
		UserID:            userID,
		ExistingObjects:   store.Objects(),
		ViewportCenter:    req.ViewportCenter,
		SelectedObjectIDs: selected,
	}

	routed, err := s.breaker.Execute(func() (interface{}, error) {
		routeCtx, cancel := context.WithTimeout(ctx, routeTimeout)
		defer cancel()
		return s.router.Route(routeCtx, routeReq)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "command routing failed")
	}
	result := routed.(*ports.CommandResult)

	applied := store.ApplyAIResult(result)

	if err := s.sessions.Save(ctx, userID, boardID, &session.Entry{
		LastCreatedIDs:  applied.CreatedIDs,
		LastModifiedIDs: applied.ModifiedIDs,
		LastCommandText: req.Command,
		Timestamp:       time.Now(),
	}); err != nil {
		s.logger.Warn("failed to save session memory", zap.Error(err))
	}

	s.metrics.CommandLatency.Observe(time.Since(started).Seconds())

	return &Result{
		Applied:    applied,
		Message:    result.Message,
		TokensUsed: result.TokensUsed,
		LatencyMS:  result.LatencyMS,
		IsTemplate: result.IsTemplate,
	}, nil
}
