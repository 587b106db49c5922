package usecase

import (
	"context"
	"fmt"

	"planewatch-service/internal/domain/entity"
	"planewatch-service/internal/domain/repository"
	"planewatch-service/pkg/logger"
	"planewatch-service/pkg/metrics"
	"planewatch-service/pkg/utils"
)

// DeliveryMode selects between sending new report messages and updating a
// previously sent live message.
type DeliveryMode string

const (
	ModeNew    DeliveryMode = "new"
	ModeUpdate DeliveryMode = "update"
)

// Dispatcher is the delivery capability consumed by the coordinator.
type Dispatcher interface {
	Deliver(ctx context.Context, recipientID int64, records []*entity.FlightRecord, mode DeliveryMode, live bool) error
}

// ReportDispatcher renders records and delivers them through the chat
// transport, tracking live message identity per recipient in the registry.
type ReportDispatcher struct {
	transport repository.TransportRepository
	registry  repository.LiveMessageRepository
	formatter *utils.ReportFormatter
	logger    logger.Logger
	metrics   *metrics.Metrics
}

// NewReportDispatcher creates a new report dispatcher
func NewReportDispatcher(
	transport repository.TransportRepository,
	registry repository.LiveMessageRepository,
	formatter *utils.ReportFormatter,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *ReportDispatcher {
	return &ReportDispatcher{
		transport: transport,
		registry:  registry,
		formatter: formatter,
		logger:    logger,
		metrics:   metrics,
	}
}

// Deliver sends or updates one message per record. In live mode the first
// sent message is registered so later updates can edit it in place.
func (d *ReportDispatcher) Deliver(ctx context.Context, recipientID int64, records []*entity.FlightRecord, mode DeliveryMode, live bool) error {
	for _, record := range records {
		text := d.formatter.Render(record)

		switch mode {
		case ModeUpdate:
			if err := d.update(ctx, recipientID, text, live); err != nil {
				return err
			}
		default:
			if err := d.sendNew(ctx, recipientID, text, live); err != nil {
				return err
			}
		}
	}
	return nil
}

// sendNew sends a fresh report message, registering it when live sharing is on.
func (d *ReportDispatcher) sendNew(ctx context.Context, recipientID int64, text string, live bool) error {
	messageID, err := d.transport.SendReport(ctx, recipientID, text)
	if err != nil {
		d.metrics.ErrorsCount.WithLabelValues("send_report").Inc()
		return fmt.Errorf("failed to send report: %w", err)
	}
	d.metrics.ReportsSent.Inc()

	if live {
		if err := d.registry.Put(ctx, recipientID, messageID); err != nil {
			d.logger.Error("Failed to register live message",
				"recipientId", recipientID, "messageId", messageID, "error", err)
		}
	}
	return nil
}

// update edits the tracked live message in place. A recipient with no
// registry entry resyncs: the report is sent as a new message and registered
// again, instead of silently dropping the update.
func (d *ReportDispatcher) update(ctx context.Context, recipientID int64, text string, live bool) error {
	entry, err := d.registry.Get(ctx, recipientID)
	if err != nil {
		d.logger.Error("Live message lookup failed, resyncing", "recipientId", recipientID, "error", err)
		entry = nil
	}

	if entry == nil {
		d.logger.Warn("No live message registered for recipient, sending new report",
			"recipientId", recipientID)
		return d.sendNew(ctx, recipientID, text, true)
	}

	if err := d.transport.EditReport(ctx, recipientID, entry.MessageID, text); err != nil {
		d.metrics.ErrorsCount.WithLabelValues("edit_report").Inc()
		return fmt.Errorf("failed to edit report: %w", err)
	}
	d.metrics.ReportsEdited.Inc()

	if live {
		// Refresh the TTL so a long live-sharing session keeps its entry.
		if err := d.registry.Put(ctx, recipientID, entry.MessageID); err != nil {
			d.logger.Error("Failed to refresh live message",
				"recipientId", recipientID, "error", err)
		}
	}
	return nil
}
