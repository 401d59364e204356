package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Jojo-not/Ticketing/internal/agents"
	"github.com/Jojo-not/Ticketing/internal/api/http/handlers"
	"github.com/Jojo-not/Ticketing/internal/auth"
	"github.com/Jojo-not/Ticketing/internal/backend"
	"github.com/Jojo-not/Ticketing/internal/config"
	"github.com/Jojo-not/Ticketing/internal/events"
	"github.com/Jojo-not/Ticketing/internal/observability"
	"github.com/Jojo-not/Ticketing/internal/repository"
	"github.com/Jojo-not/Ticketing/internal/session"
	"github.com/Jojo-not/Ticketing/internal/web"
)

// ServerDeps are the collaborators the console server is assembled from.
type ServerDeps struct {
	Config     *config.Config
	Logger     *zap.Logger
	Metrics    *observability.Metrics
	Renderer   *web.Renderer
	Backend    *backend.Client
	ViewState  repository.ViewStateRepository
	Dispatcher events.Dispatcher
	Sessions   *session.Registry
	Tokens     *auth.TokenManager
	Checks     map[string]handlers.Pinger
}

// NewServer builds the fiber app with middlewares and routes registered.
func NewServer(deps ServerDeps) *fiber.App {
	cfg := deps.Config
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
		Immutable:             true,
		ReadTimeout:           cfg.App.RequestTimeout(),
	})
	RegisterMiddlewares(app, deps.Logger, deps.Metrics, cfg.App.RequestTimeout(), deps.Renderer)

	sessionMiddleware := auth.NewSessionMiddleware(deps.Tokens, deps.Sessions, cfg.Session, deps.Logger)
	nav := handlers.NewNavigation(deps.Backend, deps.ViewState, deps.Logger)

	RegisterRoutes(app, RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, deps.Checks),
		Session: handlers.NewSessionHandler(deps.Renderer, nav, deps.Tokens, deps.Sessions, sessionMiddleware, deps.Logger),
		Agents: handlers.NewAgentsHandler(deps.Renderer, nav, agents.Deps{
			Gateway: deps.Backend,
			Pages:   deps.ViewState,
			Events:  deps.Dispatcher,
			Logger:  deps.Logger,
		}, deps.Logger),
		Sidebar:           handlers.NewSidebarHandler(nav),
		SessionMiddleware: sessionMiddleware,
		Metrics:           deps.Metrics,
	})
	return app
}
