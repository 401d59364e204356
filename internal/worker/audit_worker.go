package worker

import (
	"context"

	"github.com/Jojo-not/Ticketing/internal/service"
)

// StartAuditWorker registers audit handlers and starts webhook delivery in
// the background until ctx is cancelled.
func StartAuditWorker(ctx context.Context, auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
	go auditService.Run(ctx)
}
