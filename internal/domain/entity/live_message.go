package entity

import (
	"time"
)

// LiveMessage tracks the last report message sent in live mode for one
// recipient, so later location edits can update it in place.
type LiveMessage struct {
	RecipientID int64     `bson:"recipientId"`
	MessageID   int64     `bson:"messageId"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}
