package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Jojo-not/Ticketing/internal/config"
	"github.com/Jojo-not/Ticketing/internal/domain"
	"github.com/Jojo-not/Ticketing/internal/observability"
)

// Operation names used in errors, logs and metrics.
const (
	OpListAgents    = "list_agents"
	OpRegisterAgent = "register_agent"
	OpUpdateAgent   = "update_agent"
	OpDeleteAgent   = "delete_agent"
	OpListTickets   = "list_tickets"
)

// Client talks to the ticketing REST backend.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *fiber.Client
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewClient builds a client for the configured base origin.
func NewClient(cfg config.BackendConfig, logger *zap.Logger, metrics *observability.Metrics) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: cfg.BaseURL,
		timeout: cfg.Timeout(),
		http:    &fiber.Client{UserAgent: "ticketing-admin-console"},
		logger:  logger.Named("backend"),
		metrics: metrics,
	}
}

type agentsEnvelope struct {
	Agents json.RawMessage `json:"agents"`
}

type registerEnvelope struct {
	Agent *domain.Agent `json:"agent"`
	User  *domain.Agent `json:"user"`
}

// ListAgents handles GET /api/agents.
func (c *Client) ListAgents(ctx context.Context, token string) ([]domain.Agent, error) {
	body, err := c.do(ctx, OpListAgents, fiber.MethodGet, "/api/agents", token, nil)
	if err != nil {
		return nil, err
	}

	var env agentsEnvelope
	var agents []domain.Agent
	if json.Unmarshal(body, &env) != nil || len(env.Agents) == 0 || json.Unmarshal(env.Agents, &agents) != nil {
		c.logger.Warn("unexpected agents payload", zap.ByteString("body", truncate(body)))
		return []domain.Agent{}, nil
	}
	if agents == nil {
		agents = []domain.Agent{}
	}
	return agents, nil
}

// RegisterAgent handles POST /api/register. The endpoint is unauthenticated.
func (c *Client) RegisterAgent(ctx context.Context, reg domain.Registration) (*domain.Agent, error) {
	if reg.Role == "" {
		reg.Role = domain.RoleAgent
	}
	body, err := c.do(ctx, OpRegisterAgent, fiber.MethodPost, "/api/register", "", reg)
	if err != nil {
		return nil, err
	}

	var env registerEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", OpRegisterAgent, err)
	}
	switch {
	case env.Agent != nil:
		return env.Agent, nil
	case env.User != nil:
		return env.User, nil
	}

	var agent domain.Agent
	if err := json.Unmarshal(body, &agent); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", OpRegisterAgent, err)
	}
	return &agent, nil
}

// UpdateAgent handles PUT /api/agents/:id. The response body is ignored.
func (c *Client) UpdateAgent(ctx context.Context, token string, id domain.ID, update domain.AgentUpdate) error {
	_, err := c.do(ctx, OpUpdateAgent, fiber.MethodPut, "/api/agents/"+id.String(), token, update)
	return err
}

// DeleteAgent handles DELETE /api/agents/:id.
func (c *Client) DeleteAgent(ctx context.Context, token string, id domain.ID) error {
	_, err := c.do(ctx, OpDeleteAgent, fiber.MethodDelete, "/api/agents/"+id.String(), token, nil)
	return err
}

// ListTickets handles GET /api/allTickets.
func (c *Client) ListTickets(ctx context.Context, token string) ([]domain.Ticket, error) {
	body, err := c.do(ctx, OpListTickets, fiber.MethodGet, "/api/allTickets", token, nil)
	if err != nil {
		return nil, err
	}
	var tickets []domain.Ticket
	if err := json.Unmarshal(body, &tickets); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", OpListTickets, err)
	}
	return tickets, nil
}

func (c *Client) do(ctx context.Context, op, method, path, token string, payload any) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	url := c.baseURL + path
	var agent *fiber.Agent
	switch method {
	case fiber.MethodPost:
		agent = c.http.Post(url)
	case fiber.MethodPut:
		agent = c.http.Put(url)
	case fiber.MethodDelete:
		agent = c.http.Delete(url)
	default:
		agent = c.http.Get(url)
	}

	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if token != "" {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	if payload != nil {
		agent.JSON(payload)
	}
	if c.timeout > 0 {
		agent.Timeout(c.timeout)
	}

	start := time.Now()
	status, body, errs := agent.Bytes()
	elapsed := time.Since(start)

	if len(errs) > 0 {
		c.metrics.RecordBackendCall(op, "transport", elapsed)
		c.logger.Error("backend call failed", zap.String("op", op), zap.Errors("errors", errs))
		return nil, &TransportError{Op: op, Err: errors.Join(errs...)}
	}

	c.logger.Debug("backend call",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("latency", elapsed))

	if status < fiber.StatusOK || status >= fiber.StatusMultipleChoices {
		c.metrics.RecordBackendCall(op, "status", elapsed)
		return nil, newStatusError(op, status, body)
	}
	c.metrics.RecordBackendCall(op, "ok", elapsed)
	return body, nil
}

func truncate(body []byte) []byte {
	const limit = 512
	if len(body) > limit {
		return body[:limit]
	}
	return body
}
