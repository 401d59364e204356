package handlers

import (
	"net/http"
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Jojo-not/Ticketing/internal/api/dto"
	"github.com/Jojo-not/Ticketing/internal/auth"
	"github.com/Jojo-not/Ticketing/internal/domain"
	"github.com/Jojo-not/Ticketing/internal/session"
	"github.com/Jojo-not/Ticketing/internal/web"
)

// SessionHandler signs users in and out of the console.
type SessionHandler struct {
	renderer *web.Renderer
	nav      *Navigation
	tokens   *auth.TokenManager
	sessions *session.Registry
	cookies  *auth.SessionMiddleware
	logger   *zap.Logger
}

// NewSessionHandler constructs handler.
func NewSessionHandler(renderer *web.Renderer, nav *Navigation, tokens *auth.TokenManager, sessions *session.Registry, cookies *auth.SessionMiddleware, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{renderer: renderer, nav: nav, tokens: tokens, sessions: sessions, cookies: cookies, logger: logger}
}

// Index handles GET /. Signed-in admins go straight to the agent screen.
func (h *SessionHandler) Index(c *fiber.Ctx) error {
	s, ok := auth.SessionFromContext(c)
	if ok && s.User.Role == domain.RoleAdmin {
		return c.Redirect(agentsPath, http.StatusSeeOther)
	}

	data := pongo2.Context{}
	if ok {
		data = h.nav.Page(c, s)
		data["signed_in"] = true
	}
	if c.Query("logged_out") != "" {
		data["notice"] = "You have been logged out."
	}
	return h.renderer.Render(c, http.StatusOK, "index.html", data)
}

// SignIn handles POST /session.
func (h *SessionHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	req.Token = strings.TrimSpace(req.Token)
	if req.Token == "" {
		return h.signInFailed(c, http.StatusBadRequest, "token required")
	}

	user, err := h.tokens.Identity(req.Token, req.User())
	if err != nil {
		h.logger.Info("sign-in rejected", zap.Error(err))
		return h.signInFailed(c, http.StatusUnauthorized, "invalid token")
	}

	if previous, ok := auth.SessionFromContext(c); ok {
		h.sessions.Delete(c.UserContext(), previous.ID)
	}
	s := h.sessions.Create(req.Token, user)
	h.cookies.SetCookie(c, s)

	if auth.WantsJSON(c) {
		return c.Status(http.StatusCreated).JSON(fiber.Map{
			"data": dto.SessionResponse{SessionID: s.ID, UserID: user.ID, Name: user.Name, Role: user.Role},
		})
	}
	if user.Role == domain.RoleAdmin {
		return c.Redirect(agentsPath, http.StatusSeeOther)
	}
	return c.Redirect("/", http.StatusSeeOther)
}

// LogoutConfirm handles GET /logout by asking for confirmation.
func (h *SessionHandler) LogoutConfirm(c *fiber.Ctx) error {
	s, ok := auth.SessionFromContext(c)
	if !ok {
		return c.Redirect("/", http.StatusSeeOther)
	}
	data := h.nav.Page(c, s)
	data["return_to"] = localPath(refererPath(c), "/")
	return h.renderer.Render(c, http.StatusOK, "logout.html", data)
}

// Logout handles POST /logout. The session and its stored page are dropped.
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	if s, ok := auth.SessionFromContext(c); ok {
		h.sessions.Delete(c.UserContext(), s.ID)
	}
	h.cookies.ClearCookie(c)

	if auth.WantsJSON(c) {
		return c.SendStatus(http.StatusNoContent)
	}
	return c.Redirect("/?logged_out=1", http.StatusSeeOther)
}

func (h *SessionHandler) signInFailed(c *fiber.Ctx, status int, message string) error {
	if auth.WantsJSON(c) {
		return fiber.NewError(status, message)
	}
	return h.renderer.Render(c, status, "index.html", pongo2.Context{"message": message})
}

func refererPath(c *fiber.Ctx) string {
	ref := c.Get(fiber.HeaderReferer)
	if ref == "" {
		return ""
	}
	if i := strings.Index(ref, "://"); i >= 0 {
		rest := ref[i+3:]
		slash := strings.Index(rest, "/")
		if slash < 0 {
			return "/"
		}
		return rest[slash:]
	}
	return ref
}
