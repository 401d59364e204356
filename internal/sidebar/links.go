package sidebar

import "github.com/Jojo-not/Ticketing/internal/domain"

// NotificationLink is the name of the link that carries the unread badge.
const NotificationLink = "Notification"

// Link is a single navigation entry.
type Link struct {
	Name string
	Path string
}

// Links is the navigation set for one role.
type Links struct {
	Title string
	Links []Link
}

var roleLinks = map[domain.Role]Links{
	domain.RoleAdmin: {
		Title: "Admin",
		Links: []Link{
			{Name: "Dashboard", Path: "/admin/dashboard"},
			{Name: "Agents", Path: "/admin/agents"},
			{Name: "Tickets", Path: "/admin/tickets"},
			{Name: NotificationLink, Path: "/admin/notification"},
		},
	},
	domain.RoleStaff: {
		Title: "Agent",
		Links: []Link{
			{Name: "Dashboard", Path: "/agent/dashboard"},
			{Name: "Tickets", Path: "/agent/tickets"},
			{Name: NotificationLink, Path: "/agent/notification"},
		},
	},
	domain.RoleCustomer: {
		Title: "User",
		Links: []Link{
			{Name: "Dashboard", Path: "/user/dashboard"},
			{Name: "Create Ticket", Path: "/user/create-ticket"},
			{Name: "My Tickets", Path: "/user/my-tickets"},
		},
	},
}

// ForRole returns the link set of role. Unknown roles get an empty set.
func ForRole(role domain.Role) Links {
	set, ok := roleLinks[role]
	if !ok {
		return Links{}
	}
	out := Links{Title: set.Title, Links: make([]Link, len(set.Links))}
	copy(out.Links, set.Links)
	return out
}
