package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planewatch-service/internal/domain/entity"
)

func newTestFormatter(t *testing.T, tz string) *ReportFormatter {
	t.Helper()
	f, err := NewReportFormatter(tz)
	require.NoError(t, err)
	return f
}

func TestRenderEmptyRecord(t *testing.T) {
	f := newTestFormatter(t, "UTC")

	out := f.Render(&entity.FlightRecord{})

	assert.NotEmpty(t, out)
	assert.Contains(t, out, "<b>Flight Information</b>")
	assert.Contains(t, out, "<b>Aircraft History:</b>")
	assert.Contains(t, out, "Powered by <code>FlightRadar24</code>")
}

func TestRenderContainsIdentifier(t *testing.T) {
	f := newTestFormatter(t, "UTC")

	out := f.Render(&entity.FlightRecord{ID: "2f1abc", Number: "BA117", Callsign: "BAW117"})

	assert.Contains(t, out, "<b>Flight ID:</b> 2f1abc")
	assert.Contains(t, out, "<b>Flight Number:</b> BA117")
	assert.Contains(t, out, "<b>Flight CallSign:</b> BAW117")
}

func TestRenderTimestampVsString(t *testing.T) {
	f := newTestFormatter(t, "UTC")

	record := &entity.FlightRecord{TimeDetails: entity.TimeDetails{
		Real: entity.TimePhase{
			Departure: entity.NewUnixTime(1700000000),
			Arrival:   entity.NewTextTime("1700000000"),
		},
	}}
	out := f.Render(record)

	expected := time.Unix(1700000000, 0).UTC().Format(TIME_LAYOUT)
	assert.Contains(t, out, "Departure: "+expected)
	// A numeric-looking string passes through unmodified.
	assert.Contains(t, out, "Arrival: 1700000000\n")
}

func TestRenderScheduledTimesAreLocalized(t *testing.T) {
	f := newTestFormatter(t, "Asia/Tehran")

	ts := int64(1700000000)
	record := &entity.FlightRecord{TimeDetails: entity.TimeDetails{
		Scheduled: entity.TimePhase{Departure: entity.NewUnixTime(ts)},
		Real:      entity.TimePhase{Departure: entity.NewUnixTime(ts)},
	}}
	out := f.Render(record)

	loc, err := time.LoadLocation("Asia/Tehran")
	require.NoError(t, err)
	localized := time.Unix(ts, 0).In(loc).Format(TIME_LAYOUT)
	naive := time.Unix(ts, 0).UTC().Format(TIME_LAYOUT)

	assert.Contains(t, out, localized)
	assert.Contains(t, out, naive)
	assert.NotEqual(t, localized, naive)
}

func TestRenderHistoryEntries(t *testing.T) {
	f := newTestFormatter(t, "UTC")

	record := &entity.FlightRecord{AircraftHistory: []entity.HistoryEntry{
		{OriginAirport: "Heathrow", DestinationAirport: "JFK"},
		{OriginAirport: "JFK", DestinationAirport: "Heathrow"},
	}}
	out := f.Render(record)

	assert.Contains(t, out, "<code>Heathrow -> JFK</code>")
	assert.Contains(t, out, "<code>JFK -> Heathrow</code>")
	// Provider search order is preserved.
	assert.Less(t,
		strings.Index(out, "Heathrow -> JFK"),
		strings.Index(out, "JFK -> Heathrow"))
}

func TestRenderEmptyHistoryKeepsHeader(t *testing.T) {
	f := newTestFormatter(t, "UTC")

	out := f.Render(&entity.FlightRecord{})

	idx := strings.Index(out, "<b>Aircraft History:</b>")
	require.GreaterOrEqual(t, idx, 0)
	tail := out[idx:]
	assert.Contains(t, tail, "--------------------")
	assert.NotContains(t, tail, "<code> -> </code>")
}

func TestRenderOnGroundStatus(t *testing.T) {
	f := newTestFormatter(t, "UTC")

	assert.Contains(t, f.Render(&entity.FlightRecord{OnGround: true}), "<b>Status:</b> On Ground")
	assert.Contains(t, f.Render(&entity.FlightRecord{}), "<b>Status:</b> On Air")
}

func TestNewReportFormatterRejectsUnknownZone(t *testing.T) {
	_, err := NewReportFormatter("Nowhere/Invalid")
	assert.Error(t, err)
}
