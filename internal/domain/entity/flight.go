package entity

// HistoryEntry is one leg of an aircraft's recent route history.
type HistoryEntry struct {
	OriginAirport      string
	DestinationAirport string
}

// TimePhase holds the departure and arrival values for one phase of a flight.
type TimePhase struct {
	Departure TimeValue
	Arrival   TimeValue
}

// TimeDetails groups the three time phases reported by the provider.
type TimeDetails struct {
	Scheduled TimePhase
	Real      TimePhase
	Estimated TimePhase
}

// FlightRecord is the normalized report unit for one flight. It is built from
// two provider calls: the zone search fills the kinematic state, the detail
// fetch fills the rest. Every field defaults to its zero value when the
// provider omits it.
type FlightRecord struct {
	ID       string
	Number   string
	Callsign string

	AirlineName string
	AirlineCode string

	AircraftName    string
	AircraftCode    string
	AircraftHistory []HistoryEntry

	OriginAirportCountryName string
	OriginAirportCountryCode string
	OriginAirportName        string
	OriginAirportCode        string

	DestinationAirportCountryName string
	DestinationAirportCountryCode string
	DestinationAirportName        string
	DestinationAirportCode        string

	Altitude      int
	Heading       int
	Speed         int
	VerticalSpeed int
	OnGround      bool
	StatusText    string
	StatusIcon    string

	TimeDetails TimeDetails
}

// Status renders the on-ground flag the way reports display it.
func (f *FlightRecord) Status() string {
	if f.OnGround {
		return "On Ground"
	}
	return "On Air"
}

// FlightDetail carries the fields only available from the per-flight detail
// lookup. History entries missing either airport name are excluded by the
// provider boundary before the detail reaches here.
type FlightDetail struct {
	Number string

	AirlineName string
	AirlineCode string

	AircraftName    string
	AircraftCode    string
	AircraftHistory []HistoryEntry

	OriginAirportCountryName string
	OriginAirportCountryCode string
	OriginAirportName        string
	OriginAirportCode        string

	DestinationAirportCountryName string
	DestinationAirportCountryCode string
	DestinationAirportName        string
	DestinationAirportCode        string

	StatusText string
	StatusIcon string

	TimeDetails TimeDetails
}

// MergeDetail fills the record with detail data. Detail values win over the
// lightweight search values except where the detail is empty.
func (f *FlightRecord) MergeDetail(d *FlightDetail) {
	if d == nil {
		return
	}
	if d.Number != "" {
		f.Number = d.Number
	}
	if d.AirlineName != "" {
		f.AirlineName = d.AirlineName
	}
	if d.AirlineCode != "" {
		f.AirlineCode = d.AirlineCode
	}
	if d.AircraftName != "" {
		f.AircraftName = d.AircraftName
	}
	if d.AircraftCode != "" {
		f.AircraftCode = d.AircraftCode
	}
	f.AircraftHistory = d.AircraftHistory

	f.OriginAirportCountryName = d.OriginAirportCountryName
	f.OriginAirportCountryCode = d.OriginAirportCountryCode
	f.OriginAirportName = d.OriginAirportName
	f.OriginAirportCode = d.OriginAirportCode

	f.DestinationAirportCountryName = d.DestinationAirportCountryName
	f.DestinationAirportCountryCode = d.DestinationAirportCountryCode
	f.DestinationAirportName = d.DestinationAirportName
	f.DestinationAirportCode = d.DestinationAirportCode

	f.StatusText = d.StatusText
	f.StatusIcon = d.StatusIcon
	f.TimeDetails = d.TimeDetails
}
