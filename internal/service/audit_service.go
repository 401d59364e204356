package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Jojo-not/Ticketing/internal/config"
	"github.com/Jojo-not/Ticketing/internal/events"
)

const (
	auditQueueSize      = 64
	auditWebhookTimeout = 5 * time.Second
)

// AuditService records agent changes made through the console. Every event
// is logged; when a webhook is configured it is also queued for delivery.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.AuditConfig
	http       *fiber.Client
	queue      chan events.Event
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.AuditConfig) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger.Named("audit"),
		cfg:        cfg,
		http:       fiber.AcquireClient(),
		queue:      make(chan events.Event, auditQueueSize),
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventAgentRegistered, a.handle)
	a.dispatcher.Subscribe(events.EventAgentUpdated, a.handle)
	a.dispatcher.Subscribe(events.EventAgentDeleted, a.handle)
}

func (a *AuditService) handle(_ context.Context, event events.Event) error {
	a.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("agent_id", event.AgentID.String()),
		zap.String("actor_id", event.Actor.UserID.String()),
		zap.String("actor_role", string(event.Actor.Role)),
		zap.Any("payload", event.Payload))

	if !a.webhookEnabled() {
		return nil
	}
	select {
	case a.queue <- event:
	default:
		a.logger.Warn("audit queue full; dropping webhook delivery", zap.String("event_id", event.ID))
	}
	return nil
}

// Run delivers queued events to the webhook until ctx is done.
func (a *AuditService) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-a.queue:
			if err := a.Deliver(ctx, event); err != nil {
				a.logger.Warn("audit webhook delivery failed",
					zap.String("event_id", event.ID),
					zap.String("event_type", string(event.Type)),
					zap.Error(err))
			}
		}
	}
}

// Deliver posts one event to the webhook.
func (a *AuditService) Deliver(ctx context.Context, event events.Event) error {
	if !a.webhookEnabled() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	agent := a.http.Post(a.cfg.WebhookURL)
	agent.JSON(event)
	agent.Timeout(auditWebhookTimeout)

	status, _, errs := agent.Bytes()
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	if status < fiber.StatusOK || status >= fiber.StatusMultipleChoices {
		return fmt.Errorf("webhook responded %d", status)
	}
	a.logger.Debug("audit webhook delivered", zap.String("event_id", event.ID), zap.Int("status", status))
	return nil
}

func (a *AuditService) webhookEnabled() bool {
	return strings.TrimSpace(a.cfg.WebhookURL) != ""
}
