package util

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"domain", NewForbidden("admin role required"), "FORBIDDEN", http.StatusForbidden},
		{"wrapped domain", fmt.Errorf("render: %w", NewUnauthorized("invalid token")), "UNAUTHORIZED", http.StatusUnauthorized},
		{"fiber", fiber.NewError(http.StatusBadRequest, "invalid page"), "BAD_REQUEST", http.StatusBadRequest},
		{"fiber not found", fiber.ErrNotFound, "NOT_FOUND", http.StatusNotFound},
		{"request timeout", fiber.ErrRequestTimeout, "TIMEOUT", http.StatusRequestTimeout},
		{"deadline", fmt.Errorf("list agents: %w", context.DeadlineExceeded), "TIMEOUT", http.StatusGatewayTimeout},
		{"plain", errors.New("boom"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDomainError(tt.err)
			assert.Equal(t, tt.code, got.Code)
			assert.Equal(t, tt.status, got.HTTPStatus)
		})
	}

	assert.Nil(t, ToDomainError(nil))
}
