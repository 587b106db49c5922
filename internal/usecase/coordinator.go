package usecase

import (
	"context"
	"fmt"

	"planewatch-service/internal/domain/entity"
	"planewatch-service/internal/domain/repository"
	"planewatch-service/pkg/logger"
	"planewatch-service/pkg/metrics"
)

// Fixed user-facing replies.
const (
	msgSharePrompt = "Please share your current location with telegram options to receive flight details."
	msgNoFlights   = "No information found at this moment. Please try again later."
	msgLookupFail  = "Failed to retrieve information. Please try again later."
)

// RequestCoordinator runs one location update through the pipeline: validate,
// look up nearby flights, dispatch the reports. Every failure path ends in a
// user-facing text or a log entry; nothing escapes the background unit.
type RequestCoordinator struct {
	lookup     FlightFinder
	dispatcher Dispatcher
	transport  repository.TransportRepository
	logger     logger.Logger
	metrics    *metrics.Metrics
}

// NewRequestCoordinator creates a new request coordinator
func NewRequestCoordinator(
	lookup FlightFinder,
	dispatcher Dispatcher,
	transport repository.TransportRepository,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *RequestCoordinator {
	return &RequestCoordinator{
		lookup:     lookup,
		dispatcher: dispatcher,
		transport:  transport,
		logger:     logger,
		metrics:    metrics,
	}
}

var _ UpdateHandler = (*RequestCoordinator)(nil)

// CanHandle accepts every message-bearing event; users without a location
// get the share prompt instead of silence.
func (c *RequestCoordinator) CanHandle(event *entity.InboundEvent) bool {
	return event != nil && event.Message != nil
}

// Process runs the pipeline for one inbound event.
func (c *RequestCoordinator) Process(ctx context.Context, event *entity.InboundEvent) error {
	recipientID := event.RecipientID()

	if !event.HasCoordinates() {
		c.logger.Debug("Update without coordinates", "recipientId", recipientID)
		if err := c.transport.SendText(ctx, recipientID, msgSharePrompt); err != nil {
			return fmt.Errorf("failed to send location prompt: %w", err)
		}
		return nil
	}

	loc := event.LocationUpdate()
	records, err := c.lookup.FindFlights(ctx, loc)
	if err != nil {
		c.logger.Error("Failed to retrieve flight information",
			"recipientId", recipientID, "error", err)
		c.metrics.ErrorsCount.WithLabelValues("lookup").Inc()
		if sendErr := c.transport.SendText(ctx, recipientID, msgLookupFail); sendErr != nil {
			c.logger.Error("Failed to send failure reply", "recipientId", recipientID, "error", sendErr)
		}
		return nil
	}

	if len(records) == 0 {
		c.logger.Info("No flights found", "recipientId", recipientID)
		if err := c.transport.SendText(ctx, recipientID, msgNoFlights); err != nil {
			return fmt.Errorf("failed to send empty-result reply: %w", err)
		}
		return nil
	}

	mode := ModeNew
	if event.Kind == entity.EventEditedMessage {
		mode = ModeUpdate
	}

	if err := c.dispatcher.Deliver(ctx, recipientID, records, mode, loc.Live); err != nil {
		c.metrics.ErrorsCount.WithLabelValues("dispatch").Inc()
		return fmt.Errorf("failed to deliver reports: %w", err)
	}

	return nil
}
