package usecase

import (
	"context"
	"errors"

	"planewatch-service/internal/domain/entity"
	"planewatch-service/pkg/metrics"
)

// Shared across the package's tests; promauto registers on the default
// registry, so the metrics are created exactly once per test binary.
var testMetrics = metrics.NewMetrics("test_usecase")

type fakeFlightRepo struct {
	records    []*entity.FlightRecord
	searchErr  error
	details    map[string]*entity.FlightDetail
	detailErrs map[string]error

	searchCalls int
	detailCalls []string
}

func (f *fakeFlightRepo) SearchBounds(ctx context.Context, box entity.BoundingBox) ([]*entity.FlightRecord, error) {
	f.searchCalls++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.records, nil
}

func (f *fakeFlightRepo) FlightDetail(ctx context.Context, flightID string) (*entity.FlightDetail, error) {
	f.detailCalls = append(f.detailCalls, flightID)
	if err, ok := f.detailErrs[flightID]; ok {
		return nil, err
	}
	return f.details[flightID], nil
}

type fakeAirlineRepo struct {
	byCode map[string]*entity.Airline
	err    error
}

func (f *fakeAirlineRepo) GetByCode(ctx context.Context, code string) (*entity.Airline, error) {
	if f.err != nil {
		return nil, f.err
	}
	if a, ok := f.byCode[code]; ok {
		return a, nil
	}
	return nil, errors.New("record not found")
}

type sentMessage struct {
	recipientID int64
	messageID   int64
	text        string
}

type fakeTransport struct {
	texts   []sentMessage
	reports []sentMessage
	edits   []sentMessage

	nextMessageID int64
	sendTextErr   error
	sendReportErr error
	editErr       error
}

func (f *fakeTransport) SendText(ctx context.Context, recipientID int64, text string) error {
	if f.sendTextErr != nil {
		return f.sendTextErr
	}
	f.texts = append(f.texts, sentMessage{recipientID: recipientID, text: text})
	return nil
}

func (f *fakeTransport) SendReport(ctx context.Context, recipientID int64, text string) (int64, error) {
	if f.sendReportErr != nil {
		return 0, f.sendReportErr
	}
	f.nextMessageID++
	f.reports = append(f.reports, sentMessage{recipientID: recipientID, messageID: f.nextMessageID, text: text})
	return f.nextMessageID, nil
}

func (f *fakeTransport) EditReport(ctx context.Context, recipientID int64, messageID int64, text string) error {
	if f.editErr != nil {
		return f.editErr
	}
	f.edits = append(f.edits, sentMessage{recipientID: recipientID, messageID: messageID, text: text})
	return nil
}

type fakeFinder struct {
	records []*entity.FlightRecord
	err     error
	calls   int
	lastLoc entity.LocationUpdate
}

func (f *fakeFinder) FindFlights(ctx context.Context, loc entity.LocationUpdate) ([]*entity.FlightRecord, error) {
	f.calls++
	f.lastLoc = loc
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

type deliverCall struct {
	recipientID int64
	records     []*entity.FlightRecord
	mode        DeliveryMode
	live        bool
}

type fakeDispatcher struct {
	calls []deliverCall
	err   error
}

func (f *fakeDispatcher) Deliver(ctx context.Context, recipientID int64, records []*entity.FlightRecord, mode DeliveryMode, live bool) error {
	f.calls = append(f.calls, deliverCall{recipientID: recipientID, records: records, mode: mode, live: live})
	return f.err
}
