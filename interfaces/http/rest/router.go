// Package rest wires the HTTP surface: board object CRUD, share links, AI
// commands, health and metrics.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/AaronCarney/collabboard-sub001/application/commands"
	"github.com/AaronCarney/collabboard-sub001/application/ports"
	"github.com/AaronCarney/collabboard-sub001/interfaces/http/rest/handlers"
	"github.com/AaronCarney/collabboard-sub001/interfaces/http/rest/middleware"
	"github.com/AaronCarney/collabboard-sub001/pkg/observability"
)

// Deps carries everything the router needs
type Deps struct {
	Objects   ports.ObjectRepository
	Shares    ports.ShareRepository
	Channels  ports.ChannelFactory
	Authn     ports.Authenticator
	Commands  *commands.Service
	Logger    *zap.Logger
	Metrics   *observability.Metrics
	Registry  *prometheus.Registry
	WSHandler http.Handler
}

// NewRouter builds the chi router
func NewRouter(deps Deps) chi.Router {
	objectHandler := handlers.NewObjectHandler(deps.Objects, deps.Channels, deps.Logger)
	shareHandler := handlers.NewShareHandler(deps.Shares, deps.Logger)
	commandHandler := handlers.NewCommandHandler(deps.Commands, deps.Objects, deps.Channels, deps.Logger, deps.Metrics)

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestLogger(deps.Logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}
	if deps.WSHandler != nil {
		r.Method(http.MethodGet, "/ws", deps.WSHandler)
	}

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Authenticate(deps.Authn, deps.Logger))

		api.Route("/boards/{boardID}", func(b chi.Router) {
			b.Get("/objects", objectHandler.List)
			b.Post("/objects", objectHandler.Create)
			b.Patch("/objects/{id}", objectHandler.Update)
			b.Put("/objects/{id}", objectHandler.Upsert)
			b.Delete("/objects/{id}", objectHandler.Delete)

			b.Get("/shares", shareHandler.List)
			b.Post("/shares", shareHandler.Create)
			b.Delete("/shares/{id}", shareHandler.Delete)

			b.Post("/ai/command", commandHandler.Execute)
		})

		api.Get("/shares/{token}", shareHandler.Redeem)
	})

	return r
}
