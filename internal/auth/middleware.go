package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Jojo-not/Ticketing/internal/config"
	"github.com/Jojo-not/Ticketing/internal/domain"
	"github.com/Jojo-not/Ticketing/internal/session"
	apperrors "github.com/Jojo-not/Ticketing/pkg/util"
)

const sessionKey = "auth_session"

// SessionMiddleware attaches the caller's session. It reads the session
// cookie first and falls back to an Authorization bearer token, which starts
// a new session.
type SessionMiddleware struct {
	tokens   *TokenManager
	sessions *session.Registry
	cookies  config.SessionConfig
	logger   *zap.Logger
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(tokens *TokenManager, sessions *session.Registry, cookies config.SessionConfig, logger *zap.Logger) *SessionMiddleware {
	return &SessionMiddleware{tokens: tokens, sessions: sessions, cookies: cookies, logger: logger}
}

// Handle resolves the session. Only an invalid bearer token is rejected; use
// RequireSession to protect routes. Repeated bearer requests without the
// cookie reuse the token's session.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	if id := c.Cookies(m.cookies.CookieName); id != "" {
		if s, ok := m.sessions.Get(id); ok {
			c.Locals(sessionKey, s)
			return c.Next()
		}
	}

	token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return c.Next()
	}
	user, err := m.tokens.Identity(token, domain.User{})
	if err != nil {
		m.logger.Debug("bearer token rejected", zap.Error(err))
		return apperrors.NewUnauthorized("invalid token")
	}
	s := m.sessions.ForToken(token, user)
	m.SetCookie(c, s)
	c.Locals(sessionKey, s)
	return c.Next()
}

// SetCookie issues the session cookie for s.
func (m *SessionMiddleware) SetCookie(c *fiber.Ctx, s *session.Session) {
	c.Cookie(&fiber.Cookie{
		Name:     m.cookies.CookieName,
		Value:    s.ID,
		Path:     "/",
		Expires:  time.Now().Add(m.cookies.TTL()),
		HTTPOnly: true,
		Secure:   m.cookies.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie.
func (m *SessionMiddleware) ClearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     m.cookies.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   m.cookies.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// SessionFromContext retrieves the caller's session.
func SessionFromContext(c *fiber.Ctx) (*session.Session, bool) {
	val := c.Locals(sessionKey)
	if val == nil {
		return nil, false
	}
	s, ok := val.(*session.Session)
	return s, ok
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
