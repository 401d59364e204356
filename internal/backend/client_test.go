package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jojo-not/Ticketing/internal/config"
	"github.com/Jojo-not/Ticketing/internal/domain"
	"github.com/Jojo-not/Ticketing/internal/observability"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.BackendConfig{BaseURL: srv.URL, TimeoutSeconds: 5}, nil, observability.NewMetrics())
}

func TestListAgentsSendsBearerToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/agents", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"agents":[{"id":1,"name":"Ana","email":"ana@example.com","category":"QSA (Quick and Single Accounting)"},{"id":"b-2","name":"Ben","email":"ben@example.com","category":"POS for Retail and F&B"}]}`)
	})

	agents, err := client.ListAgents(context.Background(), "tok-123")
	require.NoError(t, err)
	require.Len(t, agents, 2)
	assert.Equal(t, domain.ID("1"), agents[0].ID)
	assert.Equal(t, domain.ID("b-2"), agents[1].ID)
	assert.Equal(t, "Ben", agents[1].Name)
}

func TestListAgentsUnexpectedShapeYieldsEmptyList(t *testing.T) {
	for _, body := range []string{`{}`, `{"agents":null}`, `{"agents":"nope"}`, `[{"id":1,"name":"a"}]`, `not json`} {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, body)
		})

		agents, err := client.ListAgents(context.Background(), "tok")
		require.NoError(t, err, body)
		assert.Empty(t, agents, body)
		assert.NotNil(t, agents, body)
	}
}

func TestListAgentsNonSuccessStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"Unauthenticated."}`)
	})

	_, err := client.ListAgents(context.Background(), "expired")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Equal(t, "Unauthenticated.", statusErr.Message)
	assert.Equal(t, OpListAgents, statusErr.Op)
}

func TestRegisterAgentPayloadAndEnvelope(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"agent key", `{"agent":{"id":7,"name":"Cara","email":"cara@example.com","category":"QTech Utility Billing System"}}`},
		{"user key", `{"user":{"id":7,"name":"Cara","email":"cara@example.com","category":"QTech Utility Billing System"}}`},
		{"bare", `{"id":7,"name":"Cara","email":"cara@example.com","category":"QTech Utility Billing System"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/api/register", r.URL.Path)
				assert.Empty(t, r.Header.Get("Authorization"))

				var got map[string]any
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				assert.Equal(t, "agent", got["role"])
				assert.Equal(t, "secret123", got["password_confirmation"])

				w.WriteHeader(http.StatusCreated)
				_, _ = io.WriteString(w, tt.body)
			})

			agent, err := client.RegisterAgent(context.Background(), domain.Registration{
				Name:                 "Cara",
				Email:                "cara@example.com",
				Category:             string(domain.CategoryBilling),
				Password:             "secret123",
				PasswordConfirmation: "secret123",
			})
			require.NoError(t, err)
			assert.Equal(t, domain.ID("7"), agent.ID)
			assert.Equal(t, "Cara", agent.Name)
		})
	}
}

func TestRegisterAgentFieldErrors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"message":"invalid","errors":{"email":["The email has already been taken."],"password_confirmation":"The password confirmation does not match."}}`)
	})

	_, err := client.RegisterAgent(context.Background(), domain.Registration{Name: "x"})
	require.Error(t, err)

	fields := FieldErrors(err)
	assert.Equal(t, []string{"The email has already been taken."}, fields["email"])
	assert.Equal(t, []string{"The password confirmation does not match."}, fields["confirmPassword"])
}

func TestUpdateAndDeleteAgent(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []string
	)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls = append(calls, r.Method+" "+r.URL.Path)
		mu.Unlock()
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		if r.Method == http.MethodPut {
			var got domain.AgentUpdate
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			assert.Equal(t, "Dana", got.Name)
			_, _ = io.WriteString(w, `{"message":"Agent updated"}`)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.UpdateAgent(context.Background(), "tok", "4", domain.AgentUpdate{Name: "Dana"}))
	require.NoError(t, client.DeleteAgent(context.Background(), "tok", "4"))
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"PUT /api/agents/4", "DELETE /api/agents/4"}, calls)
}

func TestListTickets(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/allTickets", r.URL.Path)
		_, _ = io.WriteString(w, `[{"id":1},{"id":2},{"id":3}]`)
	})

	tickets, err := client.ListTickets(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, tickets, 3)
	assert.Equal(t, domain.ID("3"), tickets[2].ID)
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	client := NewClient(config.BackendConfig{BaseURL: base, TimeoutSeconds: 1}, nil, nil)
	_, err := client.ListTickets(context.Background(), "tok")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport))
}

func TestCancelledContextSkipsCall(t *testing.T) {
	var called atomic.Bool
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called.Store(true)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.DeleteAgent(ctx, "tok", "1")
	require.ErrorIs(t, err, ErrTransport)
	assert.False(t, called.Load())
}
