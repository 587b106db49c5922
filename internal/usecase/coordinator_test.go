package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planewatch-service/internal/domain/entity"
	"planewatch-service/pkg/logger"
)

func locationEvent(kind entity.EventKind, chatID int64, lat, lon float64, livePeriod int) *entity.InboundEvent {
	return &entity.InboundEvent{
		Kind: kind,
		Message: &entity.Message{
			Chat: entity.Chat{ID: chatID},
			Location: &entity.Location{
				Latitude:   &lat,
				Longitude:  &lon,
				LivePeriod: livePeriod,
			},
		},
	}
}

func TestCanHandleRequiresMessage(t *testing.T) {
	c := NewRequestCoordinator(&fakeFinder{}, &fakeDispatcher{}, &fakeTransport{}, logger.NewNop(), testMetrics)

	assert.True(t, c.CanHandle(locationEvent(entity.EventNewMessage, 1, 0, 0, 0)))
	assert.True(t, c.CanHandle(&entity.InboundEvent{Kind: entity.EventNewMessage, Message: &entity.Message{}}))
	assert.False(t, c.CanHandle(&entity.InboundEvent{Kind: entity.EventNewMessage}))
	assert.False(t, c.CanHandle(nil))
}

func TestProcessWithoutCoordinatesSendsPrompt(t *testing.T) {
	transport := &fakeTransport{}
	finder := &fakeFinder{}
	c := NewRequestCoordinator(finder, &fakeDispatcher{}, transport, logger.NewNop(), testMetrics)

	event := &entity.InboundEvent{
		Kind:    entity.EventNewMessage,
		Message: &entity.Message{Chat: entity.Chat{ID: 42}},
	}
	err := c.Process(context.Background(), event)
	require.NoError(t, err)

	require.Len(t, transport.texts, 1)
	assert.Equal(t, int64(42), transport.texts[0].recipientID)
	assert.Equal(t, msgSharePrompt, transport.texts[0].text)
	assert.Zero(t, finder.calls)
}

func TestProcessNoFlightsSendsSingleReply(t *testing.T) {
	transport := &fakeTransport{}
	dispatcher := &fakeDispatcher{}
	c := NewRequestCoordinator(&fakeFinder{}, dispatcher, transport, logger.NewNop(), testMetrics)

	err := c.Process(context.Background(), locationEvent(entity.EventNewMessage, 42, 51.5, -0.1, 0))
	require.NoError(t, err)

	require.Len(t, transport.texts, 1)
	assert.Equal(t, msgNoFlights, transport.texts[0].text)
	assert.Empty(t, dispatcher.calls)
}

func TestProcessLookupFailureRepliesAndSwallows(t *testing.T) {
	transport := &fakeTransport{}
	dispatcher := &fakeDispatcher{}
	finder := &fakeFinder{err: errors.New("feed unavailable")}
	c := NewRequestCoordinator(finder, dispatcher, transport, logger.NewNop(), testMetrics)

	// Provider failures end in a user-facing reply, not a handler error.
	err := c.Process(context.Background(), locationEvent(entity.EventNewMessage, 42, 51.5, -0.1, 0))
	require.NoError(t, err)

	require.Len(t, transport.texts, 1)
	assert.Equal(t, msgLookupFail, transport.texts[0].text)
	assert.Empty(t, dispatcher.calls)
}

func TestProcessDispatchesNewMessage(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	finder := &fakeFinder{records: []*entity.FlightRecord{{ID: "aaa"}}}
	c := NewRequestCoordinator(finder, dispatcher, &fakeTransport{}, logger.NewNop(), testMetrics)

	err := c.Process(context.Background(), locationEvent(entity.EventNewMessage, 42, 51.5, -0.1, 900))
	require.NoError(t, err)

	require.Len(t, dispatcher.calls, 1)
	call := dispatcher.calls[0]
	assert.Equal(t, int64(42), call.recipientID)
	assert.Equal(t, ModeNew, call.mode)
	assert.True(t, call.live)
	assert.Len(t, call.records, 1)

	assert.Equal(t, 51.5, finder.lastLoc.Latitude)
	assert.Equal(t, -0.1, finder.lastLoc.Longitude)
}

func TestProcessEditedMessageDispatchesUpdate(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	finder := &fakeFinder{records: []*entity.FlightRecord{{ID: "aaa"}}}
	c := NewRequestCoordinator(finder, dispatcher, &fakeTransport{}, logger.NewNop(), testMetrics)

	err := c.Process(context.Background(), locationEvent(entity.EventEditedMessage, 42, 51.5, -0.1, 900))
	require.NoError(t, err)

	require.Len(t, dispatcher.calls, 1)
	assert.Equal(t, ModeUpdate, dispatcher.calls[0].mode)
}

func TestProcessDispatchFailurePropagates(t *testing.T) {
	dispatcher := &fakeDispatcher{err: errors.New("chat not found")}
	finder := &fakeFinder{records: []*entity.FlightRecord{{ID: "aaa"}}}
	c := NewRequestCoordinator(finder, dispatcher, &fakeTransport{}, logger.NewNop(), testMetrics)

	err := c.Process(context.Background(), locationEvent(entity.EventNewMessage, 42, 51.5, -0.1, 0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to deliver reports")
}
