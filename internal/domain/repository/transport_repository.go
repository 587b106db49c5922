package repository

import (
	"context"
)

// TransportRepository defines the chat transport operations the pipeline
// consumes: plain text replies, report messages, and in-place report edits.
type TransportRepository interface {
	SendText(ctx context.Context, recipientID int64, text string) error
	SendReport(ctx context.Context, recipientID int64, text string) (int64, error)
	EditReport(ctx context.Context, recipientID int64, messageID int64, text string) error
}
