// Package websocket exposes the board channels to browser peers. Each
// connection authenticates, joins one board room and exchanges the typed
// channel events as JSON frames.
package websocket

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/AaronCarney/collabboard-sub001/application/ports"
	"github.com/AaronCarney/collabboard-sub001/domain/geometry"
	"github.com/AaronCarney/collabboard-sub001/infrastructure/realtime"
	"github.com/AaronCarney/collabboard-sub001/pkg/observability"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Browser origin enforcement happens at the edge; the token is the
		// credential here.
		return true
	},
}

// Server upgrades HTTP requests into board channel connections
type Server struct {
	hub     *realtime.Hub
	authn   ports.Authenticator
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewServer creates a websocket server on the hub
func NewServer(hub *realtime.Hub, authn ports.Authenticator, logger *zap.Logger, metrics *observability.Metrics) *Server {
	if metrics == nil {
		metrics = observability.NewNopMetrics()
	}
	return &Server{hub: hub, authn: authn, logger: logger, metrics: metrics}
}

// ServeHTTP handles GET /ws?board=<id>&token=<jwt>&name=<display name>
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	boardID := r.URL.Query().Get("board")
	if boardID == "" {
		http.Error(w, "board query parameter required", http.StatusBadRequest)
		return
	}

	token := r.URL.Query().Get("token")
	userID, err := s.authn.UserID(r.Context(), token)
	if err != nil {
		s.logger.Warn("websocket auth failed", zap.Error(err))
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "Anonymous"
	}

	client := newClient(conn, s.hub.Channel(boardID), userID, s.logger.With(
		zap.String("boardID", boardID),
		zap.String("userID", userID),
	), s.metrics)

	user := ports.PresenceUser{
		UserID: userID,
		Name:   name,
		Color:  geometry.UserColor(userID),
	}
	if err := client.start(r.Context(), user); err != nil {
		s.logger.Error("failed to start websocket client", zap.Error(err))
		_ = conn.Close()
	}
}
