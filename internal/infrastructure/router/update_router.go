package router

import (
	"planewatch-service/internal/domain/entity"
	"planewatch-service/internal/usecase"
	"planewatch-service/pkg/logger"
)

// UpdateRouter routes inbound events to the appropriate handler
type UpdateRouter struct {
	handlers []usecase.UpdateHandler
	logger   logger.Logger
}

// NewUpdateRouter creates a new update router
func NewUpdateRouter(logger logger.Logger) *UpdateRouter {
	return &UpdateRouter{
		handlers: make([]usecase.UpdateHandler, 0),
		logger:   logger,
	}
}

// Register registers a handler for inbound events
func (r *UpdateRouter) Register(handler usecase.UpdateHandler) {
	r.handlers = append(r.handlers, handler)
	r.logger.Info("Registered handler", "handler", handler)
}

// GetHandler returns the appropriate handler for a given event
func (r *UpdateRouter) GetHandler(event *entity.InboundEvent) usecase.UpdateHandler {
	for _, handler := range r.handlers {
		if handler.CanHandle(event) {
			return handler
		}
	}
	return nil
}
