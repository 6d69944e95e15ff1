package server

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"

	v1 "github.com/corkboard/corkboard/internal/api/v1"
	"github.com/corkboard/corkboard/internal/api/ws"
	"github.com/corkboard/corkboard/internal/auth"
	"github.com/corkboard/corkboard/internal/config"
	"github.com/corkboard/corkboard/internal/server/middleware"
	"github.com/corkboard/corkboard/internal/store/postgres"
	redisstore "github.com/corkboard/corkboard/internal/store/redis"
)

func registerAuthRoutes(ctx context.Context, r chi.Router, cfg *config.Config, authSvc *auth.Service) {
	r.Use(middleware.RateLimitByIP(ctx, 5, 10))

	authConfig := huma.DefaultConfig("Corkboard Auth API", "1.0.0")
	authConfig.Servers = []*huma.Server{{URL: "/api/v1"}}
	api := humachi.New(r, authConfig)

	v1.RegisterAuthRoutes(api, authSvc)
}

func registerAPIRoutes(r chi.Router, cfg *config.Config, store *postgres.Store, tickets *redisstore.TicketStore, publisher *ws.Publisher) {
	r.Use(middleware.Auth(cfg.JWT.Secret))

	apiConfig := huma.DefaultConfig("Corkboard API", "1.0.0")
	apiConfig.Servers = []*huma.Server{{URL: "/api/v1"}}
	api := humachi.New(r, apiConfig)

	v1.RegisterTicketRoutes(api, tickets)
	v1.RegisterBoardRoutes(api, store)
	v1.RegisterCardRoutes(api, store, publisher)
	v1.RegisterMessageRoutes(api, store)
}

func registerWSRoutes(r chi.Router, hub *ws.Hub) {
	r.Get("/chat/{boardID}", hub.ServeBoard)
	r.Get("/latest_message_update", hub.ServeInbox)
	r.Get("/echo", hub.ServeEcho)
}
