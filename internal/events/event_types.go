package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/Jojo-not/Ticketing/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAgentRegistered EventType = "agent_registered"
	EventAgentUpdated    EventType = "agent_updated"
	EventAgentDeleted    EventType = "agent_deleted"
)

// Actor is the console user who triggered the event.
type Actor struct {
	UserID domain.ID   `json:"user_id"`
	Role   domain.Role `json:"role,omitempty"`
}

// Event represents a change the console made on the backend.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	AgentID   domain.ID   `json:"agent_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// NewEvent stamps a fresh id and time on an event.
func NewEvent(eventType EventType, agentID domain.ID, actor Actor, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		AgentID:   agentID,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// AgentRegisteredPayload payload.
type AgentRegisteredPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Category string `json:"category"`
}

// AgentUpdatedPayload payload.
type AgentUpdatedPayload struct {
	Before domain.AgentUpdate `json:"before"`
	After  domain.AgentUpdate `json:"after"`
}

// AgentDeletedPayload payload.
type AgentDeletedPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
