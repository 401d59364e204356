package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Jojo-not/Ticketing/internal/agents"
	"github.com/Jojo-not/Ticketing/internal/domain"
	"github.com/Jojo-not/Ticketing/internal/sidebar"
)

// Session is one signed-in browser. The agent screen and the sidebar are
// created on first use and live as long as the session.
type Session struct {
	ID        string
	Token     string
	User      domain.User
	CreatedAt time.Time

	mu       sync.Mutex
	lastSeen time.Time
	screen   *agents.Screen
	side     *sidebar.State
}

// AgentScreen returns the session's agent screen, creating it with deps on
// first call.
func (s *Session) AgentScreen(ctx context.Context, deps agents.Deps) *agents.Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.screen == nil {
		s.screen = agents.NewScreen(ctx, deps, agents.Owner{
			SessionID: s.ID,
			Token:     s.Token,
			User:      s.User,
		})
	}
	return s.screen
}

// Sidebar returns the session's sidebar, creating it on first call.
func (s *Session) Sidebar(tickets sidebar.TicketSource, viewed sidebar.ViewedStore, logger *zap.Logger) *sidebar.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.side == nil {
		s.side = sidebar.NewState(s.User, s.Token, tickets, viewed, logger)
	}
	return s.side
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// release drops the session's view state. On logout the saved page is
// cleared too; an expired session leaves it for the user's next session.
func (s *Session) release(ctx context.Context, logout bool) {
	s.mu.Lock()
	screen := s.screen
	s.screen = nil
	s.side = nil
	s.mu.Unlock()
	if screen != nil && logout {
		screen.Teardown(ctx)
	}
}

// Registry holds live sessions in memory, keyed by their cookie id.
// Sessions started from a bearer token are also indexed by that token.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	byToken  map[string]string
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// NewRegistry builds a registry whose sessions expire after ttl without use.
func NewRegistry(ttl time.Duration, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		sessions: make(map[string]*Session),
		byToken:  make(map[string]string),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger.Named("session"),
	}
}

// Create starts a session for token and user.
func (r *Registry) Create(token string, user domain.User) *Session {
	s := r.newSession(token, user)

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	r.logger.Info("session created", zap.String("session", s.ID), zap.String("role", string(user.Role)))
	return s
}

// ForToken returns the live session previously started for token, or
// starts one. Clients that send a bearer token without keeping the cookie
// share a single session per token.
func (r *Registry) ForToken(token string, user domain.User) *Session {
	now := r.now()

	r.mu.Lock()
	if id, ok := r.byToken[token]; ok {
		if s, ok := r.sessions[id]; ok && !r.expired(s, now) {
			r.mu.Unlock()
			s.touch(now)
			return s
		}
	}
	s := r.newSession(token, user)
	r.sessions[s.ID] = s
	r.byToken[token] = s.ID
	r.mu.Unlock()

	r.logger.Info("bearer session created", zap.String("session", s.ID), zap.String("role", string(user.Role)))
	return s
}

func (r *Registry) newSession(token string, user domain.User) *Session {
	now := r.now()
	return &Session{
		ID:        uuid.NewString(),
		Token:     token,
		User:      user,
		CreatedAt: now,
		lastSeen:  now,
	}
}

// forget drops s from the token index. Callers hold r.mu.
func (r *Registry) forget(s *Session) {
	if id, ok := r.byToken[s.Token]; ok && id == s.ID {
		delete(r.byToken, s.Token)
	}
}

// Get returns a live session and refreshes its idle timer. Expired sessions
// are reported as missing and left for Sweep.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	now := r.now()
	if r.expired(s, now) {
		return nil, false
	}
	s.touch(now)
	return s, true
}

// Delete ends a session on logout and clears its saved page.
func (r *Registry) Delete(ctx context.Context, id string) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
		r.forget(s)
	}
	r.mu.Unlock()
	if !ok {
		return
	}
	s.release(ctx, true)
	r.logger.Info("session ended", zap.String("session", id))
}

// Sweep removes expired sessions and returns how many were removed.
func (r *Registry) Sweep(ctx context.Context) int {
	now := r.now()

	r.mu.Lock()
	var expired []*Session
	for id, s := range r.sessions {
		if r.expired(s, now) {
			expired = append(expired, s)
			delete(r.sessions, id)
			r.forget(s)
		}
	}
	r.mu.Unlock()

	for _, s := range expired {
		s.release(ctx, false)
	}
	if len(expired) > 0 {
		r.logger.Info("expired sessions removed", zap.Int("count", len(expired)))
	}
	return len(expired)
}

// Len returns the number of sessions held, expired or not.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *Registry) expired(s *Session, now time.Time) bool {
	return r.ttl > 0 && s.idleSince(now) > r.ttl
}
