package utils

import (
	"fmt"
	"strings"
	"time"

	"planewatch-service/internal/domain/entity"
)

// Display layout for unix timestamps
const TIME_LAYOUT = "2006-01-02 15:04:05"

// REPORT_TEMPLATE is the fixed-section report body. Bold labels and code
// spans are the markup vocabulary the chat transport understands.
const REPORT_TEMPLATE = `<b>Flight Information</b>
<b>Flight ID:</b> %s
<b>Flight Number:</b> %s
<b>Flight CallSign:</b> %s
--------------------
<b>Airline Name:</b> %s (%s)
--------------------
<b>Aircraft Name:</b> %s (%s)
--------------------
<b>Origin Airport Country Name:</b> %s (%s)
<b>Origin Airport Name:</b> %s (%s)
--------------------
<b>Destination Airport Country Name:</b> %s (%s)
<b>Destination Airport Name:</b> %s (%s)
--------------------
<b>Altitude:</b> %d
<b>Heading:</b> %d
<b>Speed:</b> %d
<b>Vertical Speed:</b> %d
<b>Status:</b> %s
<b>Status Text:</b> %s
--------------------
<b>Time Details:</b>

    Scheduled:
        Departure: %s
        Arrival: %s
    Real:
        Departure: %s
        Arrival: %s
    Estimated:
        Departure: %s
        Arrival: %s
--------------------
<b>Aircraft History:</b>
%s
--------------------
Powered by <code>FlightRadar24</code>`

// ReportFormatter renders flight records into display text. Scheduled times
// are localized to the configured zone; real and estimated times are
// formatted in UTC without zone conversion, matching the provider's own
// display convention for in-progress times.
type ReportFormatter struct {
	scheduleZone *time.Location
}

// NewReportFormatter creates a formatter localizing scheduled times to tzName
func NewReportFormatter(tzName string) (*ReportFormatter, error) {
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule timezone %q: %w", tzName, err)
	}
	return &ReportFormatter{scheduleZone: loc}, nil
}

// Render produces the report text for one flight record. Total function:
// every absent field degrades to an empty string, never an error.
func (f *ReportFormatter) Render(record *entity.FlightRecord) string {
	td := record.TimeDetails

	return fmt.Sprintf(REPORT_TEMPLATE,
		record.ID,
		record.Number,
		record.Callsign,
		record.AirlineName, record.AirlineCode,
		record.AircraftName, record.AircraftCode,
		record.OriginAirportCountryName, record.OriginAirportCountryCode,
		record.OriginAirportName, record.OriginAirportCode,
		record.DestinationAirportCountryName, record.DestinationAirportCountryCode,
		record.DestinationAirportName, record.DestinationAirportCode,
		record.Altitude,
		record.Heading,
		record.Speed,
		record.VerticalSpeed,
		record.Status(),
		record.StatusText,
		f.formatTime(td.Scheduled.Departure, f.scheduleZone),
		f.formatTime(td.Scheduled.Arrival, f.scheduleZone),
		f.formatTime(td.Real.Departure, time.UTC),
		f.formatTime(td.Real.Arrival, time.UTC),
		f.formatTime(td.Estimated.Departure, time.UTC),
		f.formatTime(td.Estimated.Arrival, time.UTC),
		f.formatHistory(record.AircraftHistory),
	)
}

// formatTime renders a single time value: unix timestamps get the display
// layout in the given zone, strings pass through untouched.
func (f *ReportFormatter) formatTime(v entity.TimeValue, loc *time.Location) string {
	switch v.Kind {
	case entity.TimeUnix:
		return time.Unix(v.Unix, 0).In(loc).Format(TIME_LAYOUT)
	case entity.TimeText:
		return v.Text
	default:
		return ""
	}
}

// formatHistory renders one line per history entry, empty body when there is
// no history. Entries with a missing airport never reach the formatter; the
// provider boundary drops them.
func (f *ReportFormatter) formatHistory(history []entity.HistoryEntry) string {
	lines := make([]string, 0, len(history))
	for _, item := range history {
		lines = append(lines, fmt.Sprintf("\t\t\t - <code>%s -> %s</code>",
			item.OriginAirport, item.DestinationAirport))
	}
	return strings.Join(lines, "\n")
}
