package usecase

import (
	"context"

	"planewatch-service/internal/domain/entity"
)

// UpdateHandler processes one inbound chat event. Handlers are registered
// with the update router; the first one whose CanHandle accepts the event
// runs it.
type UpdateHandler interface {
	// CanHandle determines if this handler can process the given event
	CanHandle(event *entity.InboundEvent) bool

	// Process handles the event as one background unit of work
	Process(ctx context.Context, event *entity.InboundEvent) error
}
