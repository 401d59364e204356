package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/Jojo-not/Ticketing/internal/api/http/handlers"
	"github.com/Jojo-not/Ticketing/internal/auth"
	"github.com/Jojo-not/Ticketing/internal/domain"
	"github.com/Jojo-not/Ticketing/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health            *handlers.HealthHandler
	Session           *handlers.SessionHandler
	Agents            *handlers.AgentsHandler
	Sidebar           *handlers.SidebarHandler
	SessionMiddleware *auth.SessionMiddleware
	Metrics           *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	web := app.Group("", cfg.SessionMiddleware.Handle)
	web.Get("/", cfg.Session.Index)
	web.Post("/session", cfg.Session.SignIn)
	web.Get("/logout", cfg.Session.LogoutConfirm)
	web.Post("/logout", cfg.Session.Logout)

	signedIn := web.Group("", auth.RequireSession())
	signedIn.Get("/sidebar/unread", cfg.Sidebar.Unread)
	signedIn.Post("/sidebar/toggle", cfg.Sidebar.Toggle)
	signedIn.Post("/tickets/:id/viewed", cfg.Sidebar.MarkViewed)

	admin := signedIn.Group("/admin/agents", auth.RequireRole(domain.RoleAdmin))
	admin.Get("", cfg.Agents.Page)
	admin.Post("", cfg.Agents.SubmitAdd)
	admin.Post("/reload", cfg.Agents.Reload)
	admin.Post("/search", cfg.Agents.Search)
	admin.Post("/page/prev", cfg.Agents.PrevPage)
	admin.Post("/page/next", cfg.Agents.NextPage)
	admin.Post("/page/:page", cfg.Agents.GoToPage)
	admin.Post("/new", cfg.Agents.OpenAdd)
	admin.Post("/modal/close", cfg.Agents.CloseModal)
	admin.Post("/edit/open", cfg.Agents.OpenEdit)
	admin.Post("/edit/submit", cfg.Agents.SubmitEdit)
	admin.Post("/delete/request", cfg.Agents.RequestDelete)
	admin.Post("/delete/confirm", cfg.Agents.ConfirmDelete)
	admin.Post("/delete/cancel", cfg.Agents.CancelDelete)
	admin.Post("/:id/select", cfg.Agents.Select)
}
