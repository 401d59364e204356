package handlers

import (
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Jojo-not/Ticketing/internal/session"
	"github.com/Jojo-not/Ticketing/internal/sidebar"
)

// Navigation builds the sidebar for pages rendered inside the layout.
type Navigation struct {
	tickets sidebar.TicketSource
	viewed  sidebar.ViewedStore
	logger  *zap.Logger
}

// NewNavigation constructs the sidebar builder.
func NewNavigation(tickets sidebar.TicketSource, viewed sidebar.ViewedStore, logger *zap.Logger) *Navigation {
	return &Navigation{tickets: tickets, viewed: viewed, logger: logger}
}

// State returns the sidebar of s.
func (n *Navigation) State(s *session.Session) *sidebar.State {
	return s.Sidebar(n.tickets, n.viewed, n.logger)
}

// Page returns the template context shared by every signed-in page: the
// user, the sidebar with the current path active and a fresh unread count.
func (n *Navigation) Page(c *fiber.Ctx, s *session.Session) pongo2.Context {
	state := n.State(s)
	state.Navigate(c.Path())
	_, _ = state.Refresh(c.UserContext())
	return pongo2.Context{
		"user":         s.User,
		"sidebar":      state.View(),
		"current_path": c.Path(),
	}
}

// localPath returns p when it is a path on this site, otherwise fallback.
func localPath(p, fallback string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.Contains(p, "\\") {
		return fallback
	}
	return p
}
