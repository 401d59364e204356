package dto

import (
	"strings"

	"github.com/Jojo-not/Ticketing/internal/domain"
)

// SignInRequest is posted by the authentication service (or the sign-in
// form) to start a console session.
type SignInRequest struct {
	Token  string `json:"token" form:"token"`
	UserID string `json:"user_id" form:"user_id"`
	Name   string `json:"name" form:"name"`
	Role   string `json:"role" form:"role"`
}

// User returns the identity supplied alongside the token.
func (r SignInRequest) User() domain.User {
	return domain.User{
		ID:   domain.ID(strings.TrimSpace(r.UserID)),
		Name: strings.TrimSpace(r.Name),
		Role: domain.Role(strings.ToLower(strings.TrimSpace(r.Role))),
	}
}

// SessionResponse is returned to API callers after sign-in.
type SessionResponse struct {
	SessionID string      `json:"session_id"`
	UserID    domain.ID   `json:"user_id"`
	Name      string      `json:"name"`
	Role      domain.Role `json:"role"`
}
