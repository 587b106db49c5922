package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"planewatch-service/internal/domain/entity"
	"planewatch-service/internal/domain/repository"
	"planewatch-service/pkg/logger"
)

// Feed endpoint query flags, matching what the live map itself requests.
const feedFlags = "faa=1&satellite=1&mlat=1&flarm=1&adsb=1&gnd=1&air=1&vehicles=0&estimated=1&gliders=1&stats=0&maxage=14400"

// FlightRadarRepository implements FlightRepository against the FlightRadar24
// feed endpoints: a zone search keyed by bounds and a per-flight click
// handler for details. All heterogeneous nested JSON is decoded here, once;
// downstream code only sees typed entities.
type FlightRadarRepository struct {
	logger  logger.Logger
	baseURL string
	http    *http.Client
}

// NewFlightRadarRepository creates a new FlightRadar24 repository
func NewFlightRadarRepository(baseURL string, client *http.Client, logger logger.Logger) repository.FlightRepository {
	return &FlightRadarRepository{
		logger:  logger,
		baseURL: baseURL,
		http:    client,
	}
}

// SearchBounds enumerates flights currently inside the box. The feed returns
// one JSON object whose dynamic keys are flight identifiers; document order
// is preserved by streaming the object instead of decoding into a map.
func (r *FlightRadarRepository) SearchBounds(ctx context.Context, box entity.BoundingBox) ([]*entity.FlightRecord, error) {
	searchURL := fmt.Sprintf("%s/zones/fcgi/feed.js?bounds=%s&%s",
		r.baseURL, url.QueryEscape(box.Bounds()), feedFlags)

	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}

	resp, err := r.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to search flights: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("flight search returned status %d", resp.StatusCode)
	}

	dec := json.NewDecoder(resp.Body)
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	var records []*entity.FlightRecord
	for dec.More() {
		keyToken, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to decode search response: %w", err)
		}
		key, _ := keyToken.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to decode search response: %w", err)
		}

		// Non-array values are feed metadata (full_count, version, ...)
		if len(raw) == 0 || raw[0] != '[' {
			continue
		}

		records = append(records, parseFeedRow(key, raw))
	}

	r.logger.Info("Flight search completed", "bounds", box.Bounds(), "count", len(records))
	return records, nil
}

// FlightDetail fetches and normalizes the full detail for one flight handle.
func (r *FlightRadarRepository) FlightDetail(ctx context.Context, flightID string) (*entity.FlightDetail, error) {
	detailURL := fmt.Sprintf("%s/clickhandler/?flight=%s", r.baseURL, url.QueryEscape(flightID))

	req, err := http.NewRequestWithContext(ctx, "GET", detailURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create detail request: %w", err)
	}

	resp, err := r.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch flight detail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("flight detail returned status %d for %s", resp.StatusCode, flightID)
	}

	var detail detailResponse
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return nil, fmt.Errorf("failed to decode flight detail: %w", err)
	}

	return detail.toEntity(), nil
}

// ---- feed row decoding ----

// Positions of the fields this service consumes inside a feed row.
const (
	rowHeading       = 3
	rowAltitude      = 4
	rowSpeed         = 5
	rowAircraftCode  = 8
	rowOriginIATA    = 11
	rowDestIATA      = 12
	rowNumber        = 13
	rowOnGround      = 14
	rowVerticalSpeed = 15
	rowCallsign      = 16
	rowAirlineICAO   = 18
)

// parseFeedRow builds a lightweight flight handle from one feed array. Any
// malformed or missing cell degrades to the zero value.
func parseFeedRow(id string, raw json.RawMessage) *entity.FlightRecord {
	var row []json.RawMessage
	if err := json.Unmarshal(raw, &row); err != nil {
		return &entity.FlightRecord{ID: id}
	}

	return &entity.FlightRecord{
		ID:                     id,
		Number:                 stringAt(row, rowNumber),
		Callsign:               stringAt(row, rowCallsign),
		AirlineCode:            stringAt(row, rowAirlineICAO),
		AircraftCode:           stringAt(row, rowAircraftCode),
		OriginAirportCode:      stringAt(row, rowOriginIATA),
		DestinationAirportCode: stringAt(row, rowDestIATA),
		Altitude:               intAt(row, rowAltitude),
		Heading:                intAt(row, rowHeading),
		Speed:                  intAt(row, rowSpeed),
		VerticalSpeed:          intAt(row, rowVerticalSpeed),
		OnGround:               intAt(row, rowOnGround) != 0,
	}
}

func stringAt(row []json.RawMessage, i int) string {
	if i >= len(row) {
		return ""
	}
	var s string
	if err := json.Unmarshal(row[i], &s); err != nil {
		return ""
	}
	return s
}

func intAt(row []json.RawMessage, i int) int {
	if i >= len(row) {
		return 0
	}
	var f float64
	if err := json.Unmarshal(row[i], &f); err != nil {
		return 0
	}
	return int(f)
}

// ---- detail decoding ----

type detailResponse struct {
	Identification struct {
		Number struct {
			Default string `json:"default"`
		} `json:"number"`
		Callsign string `json:"callsign"`
	} `json:"identification"`
	Status struct {
		Text string `json:"text"`
		Icon string `json:"icon"`
	} `json:"status"`
	Aircraft struct {
		Model struct {
			Code string `json:"code"`
			Text string `json:"text"`
		} `json:"model"`
	} `json:"aircraft"`
	Airline struct {
		Name string `json:"name"`
		Code struct {
			ICAO string `json:"icao"`
		} `json:"code"`
	} `json:"airline"`
	Airport struct {
		Origin      airportInfo `json:"origin"`
		Destination airportInfo `json:"destination"`
	} `json:"airport"`
	Time struct {
		Scheduled timePair `json:"scheduled"`
		Real      timePair `json:"real"`
		Estimated timePair `json:"estimated"`
	} `json:"time"`
	FlightHistory struct {
		Aircraft []historyItem `json:"aircraft"`
	} `json:"flightHistory"`
}

type airportInfo struct {
	Name string `json:"name"`
	Code struct {
		IATA string `json:"iata"`
	} `json:"code"`
	Position struct {
		Country struct {
			Name string `json:"name"`
			Code string `json:"code"`
		} `json:"country"`
	} `json:"position"`
}

type timePair struct {
	Departure entity.TimeValue `json:"departure"`
	Arrival   entity.TimeValue `json:"arrival"`
}

type historyItem struct {
	Airport struct {
		Origin struct {
			Name string `json:"name"`
		} `json:"origin"`
		Destination struct {
			Name string `json:"name"`
		} `json:"destination"`
	} `json:"airport"`
}

// toEntity normalizes the detail payload. History entries missing either
// airport name are dropped here so the formatter never sees them.
func (d *detailResponse) toEntity() *entity.FlightDetail {
	history := make([]entity.HistoryEntry, 0, len(d.FlightHistory.Aircraft))
	for _, item := range d.FlightHistory.Aircraft {
		if item.Airport.Origin.Name == "" || item.Airport.Destination.Name == "" {
			continue
		}
		history = append(history, entity.HistoryEntry{
			OriginAirport:      item.Airport.Origin.Name,
			DestinationAirport: item.Airport.Destination.Name,
		})
	}

	return &entity.FlightDetail{
		Number:       d.Identification.Number.Default,
		AirlineName:  d.Airline.Name,
		AirlineCode:  d.Airline.Code.ICAO,
		AircraftName: d.Aircraft.Model.Text,
		AircraftCode: d.Aircraft.Model.Code,

		AircraftHistory: history,

		OriginAirportCountryName: d.Airport.Origin.Position.Country.Name,
		OriginAirportCountryCode: d.Airport.Origin.Position.Country.Code,
		OriginAirportName:        d.Airport.Origin.Name,
		OriginAirportCode:        d.Airport.Origin.Code.IATA,

		DestinationAirportCountryName: d.Airport.Destination.Position.Country.Name,
		DestinationAirportCountryCode: d.Airport.Destination.Position.Country.Code,
		DestinationAirportName:        d.Airport.Destination.Name,
		DestinationAirportCode:        d.Airport.Destination.Code.IATA,

		StatusText: d.Status.Text,
		StatusIcon: d.Status.Icon,

		TimeDetails: entity.TimeDetails{
			Scheduled: entity.TimePhase{Departure: d.Time.Scheduled.Departure, Arrival: d.Time.Scheduled.Arrival},
			Real:      entity.TimePhase{Departure: d.Time.Real.Departure, Arrival: d.Time.Real.Arrival},
			Estimated: entity.TimePhase{Departure: d.Time.Estimated.Departure, Arrival: d.Time.Estimated.Arrival},
		},
	}
}
