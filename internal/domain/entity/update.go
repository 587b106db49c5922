package entity

// EventKind tags how an inbound update arrived. A fresh message starts a new
// report, an edited message (Telegram re-edits the location message while live
// sharing is on) updates an existing one.
type EventKind string

const (
	EventNewMessage    EventKind = "message"
	EventEditedMessage EventKind = "edited_message"
)

// Update is the minimal recognized shape of a Telegram webhook payload.
// Exactly one of Message/EditedMessage is expected per update.
type Update struct {
	UpdateID      int64    `json:"update_id"`
	Message       *Message `json:"message,omitempty"`
	EditedMessage *Message `json:"edited_message,omitempty"`
}

// Message is the inner message shape the pipeline consumes.
type Message struct {
	MessageID int64     `json:"message_id"`
	Chat      Chat      `json:"chat"`
	Location  *Location `json:"location,omitempty"`
}

// Chat identifies the recipient of replies.
type Chat struct {
	ID int64 `json:"id"`
}

// Location is a shared position. Latitude and longitude are pointers so that
// absence is distinguishable from a coordinate of exactly zero.
type Location struct {
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	LivePeriod int      `json:"live_period,omitempty"`
}

// InboundEvent is the explicit tagged variant decoded once at the transport
// boundary; downstream code never looks at payload key presence again.
type InboundEvent struct {
	Kind    EventKind
	Message *Message
}

// Event converts the raw update into its tagged form. The second return is
// false when the update carries neither a message nor an edited message.
func (u *Update) Event() (*InboundEvent, bool) {
	switch {
	case u.Message != nil:
		return &InboundEvent{Kind: EventNewMessage, Message: u.Message}, true
	case u.EditedMessage != nil:
		return &InboundEvent{Kind: EventEditedMessage, Message: u.EditedMessage}, true
	default:
		return nil, false
	}
}

// RecipientID returns the chat the event came from.
func (e *InboundEvent) RecipientID() int64 {
	if e.Message == nil {
		return 0
	}
	return e.Message.Chat.ID
}

// HasCoordinates reports whether both latitude and longitude are present.
func (e *InboundEvent) HasCoordinates() bool {
	loc := e.Message.Location
	return loc != nil && loc.Latitude != nil && loc.Longitude != nil
}

// LocationUpdate builds the validated pipeline input. Callers must check
// HasCoordinates first.
func (e *InboundEvent) LocationUpdate() LocationUpdate {
	loc := e.Message.Location
	return LocationUpdate{
		RecipientID: e.Message.Chat.ID,
		Latitude:    *loc.Latitude,
		Longitude:   *loc.Longitude,
		Live:        loc.LivePeriod > 0,
	}
}
