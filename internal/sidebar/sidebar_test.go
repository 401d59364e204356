package sidebar

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jojo-not/Ticketing/internal/domain"
)

type stubTickets struct {
	tickets []domain.Ticket
	err     error
	tokens  []string
}

func (s *stubTickets) ListTickets(_ context.Context, token string) ([]domain.Ticket, error) {
	s.tokens = append(s.tokens, token)
	return s.tickets, s.err
}

type memViewed struct {
	ids map[string][]domain.ID
}

func (m *memViewed) ViewedTicketIDs(_ context.Context, owner string) ([]domain.ID, error) {
	return m.ids[owner], nil
}

func (m *memViewed) MarkTicketViewed(_ context.Context, owner string, id domain.ID) error {
	if m.ids == nil {
		m.ids = map[string][]domain.ID{}
	}
	m.ids[owner] = append(m.ids[owner], id)
	return nil
}

func tickets(ids ...domain.ID) []domain.Ticket {
	out := make([]domain.Ticket, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Ticket{ID: id})
	}
	return out
}

func TestUnreadCount(t *testing.T) {
	assert.Equal(t, 2, UnreadCount(tickets("1", "2", "3"), []domain.ID{"1"}))
	assert.Equal(t, 0, UnreadCount(nil, []domain.ID{"1"}))
	assert.Equal(t, 3, UnreadCount(tickets("1", "2", "3"), nil))
	assert.Equal(t, 0, UnreadCount(tickets("1", "2"), []domain.ID{"2", "1", "9"}))
}

func TestForRole(t *testing.T) {
	admin := ForRole(domain.RoleAdmin)
	names := make([]string, 0, len(admin.Links))
	for _, l := range admin.Links {
		names = append(names, l.Name)
	}
	assert.Equal(t, []string{"Dashboard", "Agents", "Tickets", "Notification"}, names)
	assert.Len(t, ForRole(domain.RoleStaff).Links, 3)
	assert.Len(t, ForRole(domain.RoleCustomer).Links, 3)
	assert.Empty(t, ForRole("guest").Links)

	admin.Links[0].Name = "changed"
	assert.Equal(t, "Dashboard", ForRole(domain.RoleAdmin).Links[0].Name)
}

func TestRefreshSetsBadgeOnNotificationOnly(t *testing.T) {
	src := &stubTickets{tickets: tickets("1", "2", "3")}
	viewed := &memViewed{ids: map[string][]domain.ID{"user:7": {"1"}}}
	s := NewState(domain.User{ID: "7", Role: domain.RoleAdmin}, "tok", src, viewed, nil)

	count, err := s.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, []string{"tok"}, src.tokens)

	for _, item := range s.View().Items {
		if item.Name == NotificationLink {
			assert.Equal(t, 2, item.Badge)
		} else {
			assert.Zero(t, item.Badge, item.Name)
		}
	}
}

func TestNoBadgeWhenNothingUnread(t *testing.T) {
	src := &stubTickets{tickets: tickets("1")}
	viewed := &memViewed{ids: map[string][]domain.ID{"user:7": {"1"}}}
	s := NewState(domain.User{ID: "7", Role: domain.RoleStaff}, "tok", src, viewed, nil)

	_, err := s.Refresh(context.Background())
	require.NoError(t, err)
	for _, item := range s.View().Items {
		assert.Zero(t, item.Badge)
	}
}

func TestRefreshFailureKeepsPreviousCount(t *testing.T) {
	src := &stubTickets{tickets: tickets("1", "2")}
	s := NewState(domain.User{ID: "7", Role: domain.RoleAdmin}, "tok", src, &memViewed{}, nil)

	_, err := s.Refresh(context.Background())
	require.NoError(t, err)

	src.err = errors.New("backend down")
	count, err := s.Refresh(context.Background())
	require.Error(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, s.Unread())
}

func TestMarkViewedLowersCount(t *testing.T) {
	src := &stubTickets{tickets: tickets("1", "2", "3")}
	viewed := &memViewed{}
	s := NewState(domain.User{ID: "7", Role: domain.RoleAdmin}, "tok", src, viewed, nil)

	_, err := s.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, s.Unread())

	require.NoError(t, s.MarkViewed(context.Background(), "2"))
	assert.Equal(t, 2, s.Unread())
	assert.Equal(t, []domain.ID{"2"}, viewed.ids["user:7"])
}

func TestNavigateAndToggle(t *testing.T) {
	s := NewState(domain.User{Role: domain.RoleAdmin}, "tok", &stubTickets{}, nil, nil)

	s.Navigate("/admin/agents")
	assert.True(t, activeItem(s.View(), "Agents"))

	s.Navigate("/somewhere/else")
	assert.True(t, activeItem(s.View(), "Agents"), "unknown path keeps the active link")

	assert.True(t, s.View().MenuOpen)
	assert.False(t, s.Toggle())
	assert.True(t, s.Toggle())
}

func activeItem(v View, name string) bool {
	for _, item := range v.Items {
		if item.Active {
			return item.Name == name
		}
	}
	return false
}
