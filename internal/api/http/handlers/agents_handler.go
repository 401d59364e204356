package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Jojo-not/Ticketing/internal/agents"
	"github.com/Jojo-not/Ticketing/internal/api/dto"
	"github.com/Jojo-not/Ticketing/internal/auth"
	"github.com/Jojo-not/Ticketing/internal/domain"
	"github.com/Jojo-not/Ticketing/internal/session"
	"github.com/Jojo-not/Ticketing/internal/web"
)

const agentsPath = "/admin/agents"

// AgentsHandler serves the agent management screen. Every action mutates
// the session's screen state and redirects back to the list.
type AgentsHandler struct {
	renderer *web.Renderer
	nav      *Navigation
	deps     agents.Deps
	logger   *zap.Logger
}

// NewAgentsHandler constructs handler.
func NewAgentsHandler(renderer *web.Renderer, nav *Navigation, deps agents.Deps, logger *zap.Logger) *AgentsHandler {
	return &AgentsHandler{renderer: renderer, nav: nav, deps: deps, logger: logger}
}

// Page handles GET /admin/agents. The list is fetched on the first visit.
func (h *AgentsHandler) Page(c *fiber.Ctx) error {
	s, screen, err := h.screen(c)
	if err != nil {
		return err
	}
	if !screen.Loaded() {
		h.load(c, screen)
	}

	data := h.nav.Page(c, s)
	data["agents"] = screen.View()
	return h.renderer.Render(c, http.StatusOK, "agents.html", data)
}

// Reload handles POST /admin/agents/reload.
func (h *AgentsHandler) Reload(c *fiber.Ctx) error {
	return h.act(c, func(screen *agents.Screen) error {
		h.load(c, screen)
		return nil
	})
}

// Search handles POST /admin/agents/search.
func (h *AgentsHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	return h.act(c, func(screen *agents.Screen) error {
		screen.Search(c.UserContext(), req.Query)
		return nil
	})
}

// PrevPage handles POST /admin/agents/page/prev.
func (h *AgentsHandler) PrevPage(c *fiber.Ctx) error {
	return h.act(c, func(screen *agents.Screen) error {
		screen.PrevPage(c.UserContext())
		return nil
	})
}

// NextPage handles POST /admin/agents/page/next.
func (h *AgentsHandler) NextPage(c *fiber.Ctx) error {
	return h.act(c, func(screen *agents.Screen) error {
		screen.NextPage(c.UserContext())
		return nil
	})
}

// GoToPage handles POST /admin/agents/page/:page.
func (h *AgentsHandler) GoToPage(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Params("page"))
	if err != nil || page < 1 {
		return fiber.NewError(http.StatusBadRequest, "invalid page")
	}
	return h.act(c, func(screen *agents.Screen) error {
		screen.GoToPage(c.UserContext(), page)
		return nil
	})
}

// OpenAdd handles POST /admin/agents/new.
func (h *AgentsHandler) OpenAdd(c *fiber.Ctx) error {
	return h.act(c, func(screen *agents.Screen) error {
		screen.OpenAdd()
		return nil
	})
}

// SubmitAdd handles POST /admin/agents.
func (h *AgentsHandler) SubmitAdd(c *fiber.Ctx) error {
	var form agents.AddForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	return h.act(c, func(screen *agents.Screen) error {
		return screen.SubmitAdd(c.UserContext(), form)
	})
}

// CloseModal handles POST /admin/agents/modal/close.
func (h *AgentsHandler) CloseModal(c *fiber.Ctx) error {
	return h.act(c, func(screen *agents.Screen) error {
		screen.CloseModal()
		return nil
	})
}

// Select handles POST /admin/agents/:id/select.
func (h *AgentsHandler) Select(c *fiber.Ctx) error {
	id := domain.ID(c.Params("id"))
	return h.act(c, func(screen *agents.Screen) error {
		return screen.Select(id)
	})
}

// OpenEdit handles POST /admin/agents/edit/open.
func (h *AgentsHandler) OpenEdit(c *fiber.Ctx) error {
	return h.act(c, func(screen *agents.Screen) error {
		return screen.OpenEdit()
	})
}

// SubmitEdit handles POST /admin/agents/edit/submit.
func (h *AgentsHandler) SubmitEdit(c *fiber.Ctx) error {
	var form agents.EditForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	return h.act(c, func(screen *agents.Screen) error {
		return screen.SubmitEdit(c.UserContext(), form)
	})
}

// RequestDelete handles POST /admin/agents/delete/request.
func (h *AgentsHandler) RequestDelete(c *fiber.Ctx) error {
	return h.act(c, func(screen *agents.Screen) error {
		return screen.RequestDelete()
	})
}

// CancelDelete handles POST /admin/agents/delete/cancel.
func (h *AgentsHandler) CancelDelete(c *fiber.Ctx) error {
	return h.act(c, func(screen *agents.Screen) error {
		screen.CancelDelete()
		return nil
	})
}

// ConfirmDelete handles POST /admin/agents/delete/confirm.
func (h *AgentsHandler) ConfirmDelete(c *fiber.Ctx) error {
	return h.act(c, func(screen *agents.Screen) error {
		return screen.ConfirmDelete(c.UserContext())
	})
}

func (h *AgentsHandler) screen(c *fiber.Ctx) (*session.Session, *agents.Screen, error) {
	s, ok := auth.SessionFromContext(c)
	if !ok {
		return nil, nil, fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	return s, s.AgentScreen(c.UserContext(), h.deps), nil
}

func (h *AgentsHandler) load(c *fiber.Ctx, screen *agents.Screen) {
	if err := screen.Load(c.UserContext()); err != nil && !errors.Is(err, agents.ErrBusy) {
		h.logger.Warn("agent list unavailable", zap.Error(err))
	}
}

// act runs one screen transition and redirects back to the list. Outcomes
// the user needs to see are already in the screen state as form errors or
// toasts, so only unexpected conditions are logged here.
func (h *AgentsHandler) act(c *fiber.Ctx, fn func(*agents.Screen) error) error {
	_, screen, err := h.screen(c)
	if err != nil {
		return err
	}
	if err := fn(screen); err != nil {
		switch {
		case errors.Is(err, agents.ErrInvalid):
		case errors.Is(err, agents.ErrBusy), errors.Is(err, agents.ErrNoSelection), errors.Is(err, agents.ErrUnknownAgent):
			h.logger.Debug("agent action ignored", zap.String("path", c.Path()), zap.Error(err))
		default:
			h.logger.Debug("agent action failed", zap.String("path", c.Path()), zap.Error(err))
		}
	}
	return c.Redirect(agentsPath, http.StatusSeeOther)
}
