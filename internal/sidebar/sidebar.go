package sidebar

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/Jojo-not/Ticketing/internal/domain"
)

// TicketSource lists the tickets visible to a token.
type TicketSource interface {
	ListTickets(ctx context.Context, token string) ([]domain.Ticket, error)
}

// ViewedStore remembers which tickets a user has opened.
type ViewedStore interface {
	ViewedTicketIDs(ctx context.Context, owner string) ([]domain.ID, error)
	MarkTicketViewed(ctx context.Context, owner string, id domain.ID) error
}

// UnreadCount counts the tickets whose id is not in viewed.
func UnreadCount(tickets []domain.Ticket, viewed []domain.ID) int {
	seen := make(map[domain.ID]struct{}, len(viewed))
	for _, id := range viewed {
		seen[id] = struct{}{}
	}
	n := 0
	for _, t := range tickets {
		if _, ok := seen[t.ID]; !ok {
			n++
		}
	}
	return n
}

// Item is a link as rendered, with its active flag and badge.
type Item struct {
	Name   string
	Path   string
	Active bool
	Badge  int
}

// View is the render-ready sidebar.
type View struct {
	Title    string
	Items    []Item
	MenuOpen bool
	Unread   int
}

// State is the sidebar of one session.
type State struct {
	mu     sync.Mutex
	user   domain.User
	token  string
	active string
	open   bool
	unread int

	tickets TicketSource
	viewed  ViewedStore
	logger  *zap.Logger
}

// NewState creates the sidebar for user. The menu starts open.
func NewState(user domain.User, token string, tickets TicketSource, viewed ViewedStore, logger *zap.Logger) *State {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &State{
		user:    user,
		token:   token,
		open:    true,
		tickets: tickets,
		viewed:  viewed,
		logger:  logger.Named("sidebar"),
	}
}

// Toggle flips the expanded state of the menu.
func (s *State) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = !s.open
	return s.open
}

// Navigate marks the link matching path as active. A path that matches no
// link leaves the previous active link in place.
func (s *State) Navigate(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range ForRole(s.user.Role).Links {
		if l.Path == path {
			s.active = l.Name
			return
		}
	}
}

// Refresh recomputes the unread count. On failure the last known count is
// kept and returned along with the error.
func (s *State) Refresh(ctx context.Context) (int, error) {
	count, err := s.count(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.logger.Warn("refresh unread count", zap.Error(err))
		return s.unread, err
	}
	s.unread = count
	return count, nil
}

func (s *State) count(ctx context.Context) (int, error) {
	if s.tickets == nil {
		return 0, nil
	}
	tickets, err := s.tickets.ListTickets(ctx, s.token)
	if err != nil {
		return 0, err
	}
	var viewed []domain.ID
	if s.viewed != nil {
		viewed, err = s.viewed.ViewedTicketIDs(ctx, s.owner())
		if err != nil {
			return 0, err
		}
	}
	return UnreadCount(tickets, viewed), nil
}

// MarkViewed records ticket id as opened and recounts. A failed recount
// keeps the previous badge; only the store error is returned.
func (s *State) MarkViewed(ctx context.Context, id domain.ID) error {
	if s.viewed == nil {
		return nil
	}
	if err := s.viewed.MarkTicketViewed(ctx, s.owner(), id); err != nil {
		return err
	}
	_, _ = s.Refresh(ctx)
	return nil
}

// Unread returns the last known unread count.
func (s *State) Unread() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unread
}

// View builds the links for the user's role with the active flag and the
// badge applied.
func (s *State) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := ForRole(s.user.Role)
	items := make([]Item, 0, len(set.Links))
	for _, l := range set.Links {
		item := Item{Name: l.Name, Path: l.Path, Active: l.Name == s.active}
		if l.Name == NotificationLink && s.unread > 0 {
			item.Badge = s.unread
		}
		items = append(items, item)
	}
	return View{Title: set.Title, Items: items, MenuOpen: s.open, Unread: s.unread}
}

// owner keys the viewed-ids store; it is the user id when known so the
// set survives new sessions.
func (s *State) owner() string {
	if s.user.ID != "" {
		return "user:" + s.user.ID.String()
	}
	return "token:" + s.token
}
