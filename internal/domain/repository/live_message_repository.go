package repository

import (
	"context"

	"planewatch-service/internal/domain/entity"
)

// LiveMessageRepository is the keyed store behind the dispatcher's live
// message tracking. Get returns (nil, nil) when no entry exists for the
// recipient; entries expire per the implementation's TTL policy.
type LiveMessageRepository interface {
	Get(ctx context.Context, recipientID int64) (*entity.LiveMessage, error)
	Put(ctx context.Context, recipientID int64, messageID int64) error
	Delete(ctx context.Context, recipientID int64) error
}
