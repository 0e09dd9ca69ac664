package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/news-gateway/internal/events"
)

// AuditService records administrative actions emitted by the other services.
// Audit failures are observability-only and never affect the request path.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventUserAuthenticated, a.handle)
	a.dispatcher.Subscribe(events.EventUserCreated, a.handle)
	a.dispatcher.Subscribe(events.EventUserDeleted, a.handle)
	a.dispatcher.Subscribe(events.EventTokenCreated, a.handle)
	a.dispatcher.Subscribe(events.EventTokenRevoked, a.handle)
}

func (a *AuditService) handle(_ context.Context, event events.Event) error {
	a.logger.Info("audit",
		zap.String("event", string(event.Type)),
		zap.Int64("actor_id", event.ActorID),
		zap.Time("timestamp", event.Timestamp),
		zap.Any("payload", event.Payload))
	return nil
}
