package domain

// Ticket is the read-only ticket projection used for unread counts.
type Ticket struct {
	ID ID `json:"id"`
}
