package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Jojo-not/Ticketing/internal/api/dto"
	"github.com/Jojo-not/Ticketing/internal/auth"
	"github.com/Jojo-not/Ticketing/internal/domain"
)

// SidebarHandler exposes the navigation state for polling and toggling.
type SidebarHandler struct {
	nav *Navigation
}

// NewSidebarHandler constructs handler.
func NewSidebarHandler(nav *Navigation) *SidebarHandler {
	return &SidebarHandler{nav: nav}
}

// Unread handles GET /sidebar/unread. A failed refresh still answers with
// the last known count.
func (h *SidebarHandler) Unread(c *fiber.Ctx) error {
	s, ok := auth.SessionFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	count, _ := h.nav.State(s).Refresh(c.UserContext())
	return c.JSON(dto.UnreadResponse{Count: count})
}

// Toggle handles POST /sidebar/toggle.
func (h *SidebarHandler) Toggle(c *fiber.Ctx) error {
	s, ok := auth.SessionFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	var req dto.ToggleRequest
	_ = c.BodyParser(&req)

	open := h.nav.State(s).Toggle()
	if auth.WantsJSON(c) {
		return c.JSON(dto.MenuResponse{Open: open})
	}
	return c.Redirect(localPath(req.ReturnTo, "/"), http.StatusSeeOther)
}

// MarkViewed handles POST /tickets/:id/viewed.
func (h *SidebarHandler) MarkViewed(c *fiber.Ctx) error {
	s, ok := auth.SessionFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	id := domain.ID(c.Params("id"))
	if id == "" {
		return fiber.NewError(http.StatusBadRequest, "ticket id required")
	}

	state := h.nav.State(s)
	if err := state.MarkViewed(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(dto.UnreadResponse{Count: state.Unread()})
}
