package usecase

import (
	"context"
	"fmt"
	"time"

	"planewatch-service/internal/domain/entity"
	"planewatch-service/internal/domain/repository"
	"planewatch-service/pkg/logger"
	"planewatch-service/pkg/metrics"
	"planewatch-service/pkg/utils"
)

// FlightFinder is the lookup capability consumed by the coordinator.
type FlightFinder interface {
	FindFlights(ctx context.Context, loc entity.LocationUpdate) ([]*entity.FlightRecord, error)
}

// FlightLookup orchestrates the two-stage provider call: enumerate flights in
// a box around the user, then fetch detail per flight and merge it into the
// handle. One query per call, provider order preserved.
type FlightLookup struct {
	flightRepo  repository.FlightRepository
	airlineRepo repository.AirlineRepository
	logger      logger.Logger
	metrics     *metrics.Metrics
	radiusKm    float64
}

// NewFlightLookup creates a new flight lookup service. airlineRepo may be nil
// when no reference database is configured.
func NewFlightLookup(
	flightRepo repository.FlightRepository,
	airlineRepo repository.AirlineRepository,
	logger logger.Logger,
	metrics *metrics.Metrics,
	radiusKm float64,
) *FlightLookup {
	return &FlightLookup{
		flightRepo:  flightRepo,
		airlineRepo: airlineRepo,
		logger:      logger,
		metrics:     metrics,
		radiusKm:    radiusKm,
	}
}

// FindFlights returns the normalized records for all flights currently near
// the location. An empty result is not an error. A failed detail fetch keeps
// the handle with its search-level data only, so one bad record does not
// abort the whole batch; a failed search propagates.
func (s *FlightLookup) FindFlights(ctx context.Context, loc entity.LocationUpdate) ([]*entity.FlightRecord, error) {
	start := time.Now()

	box := utils.BoundsAround(loc.Latitude, loc.Longitude, s.radiusKm)
	s.logger.Info("Searching flights", "bounds", box.Bounds(), "recipientId", loc.RecipientID)

	records, err := s.flightRepo.SearchBounds(ctx, box)
	if err != nil {
		s.metrics.ErrorsCount.WithLabelValues("flight_search").Inc()
		return nil, fmt.Errorf("flight search failed: %w", err)
	}

	for _, record := range records {
		detail, err := s.flightRepo.FlightDetail(ctx, record.ID)
		if err != nil {
			s.logger.Warn("Failed to fetch flight detail, keeping search data only",
				"flightId", record.ID, "error", err)
			s.metrics.ErrorsCount.WithLabelValues("flight_detail").Inc()
			continue
		}
		record.MergeDetail(detail)

		s.backfillAirline(ctx, record)
	}

	s.metrics.FlightsFound.Add(float64(len(records)))
	s.metrics.LookupTime.Observe(time.Since(start).Seconds())
	s.logger.Info("Flight lookup completed", "count", len(records), "elapsed", time.Since(start))

	return records, nil
}

// backfillAirline fills a missing airline name from reference data when a
// database is configured. Best effort; a miss leaves the field empty.
func (s *FlightLookup) backfillAirline(ctx context.Context, record *entity.FlightRecord) {
	if s.airlineRepo == nil || record.AirlineName != "" || record.AirlineCode == "" {
		return
	}

	airline, err := s.airlineRepo.GetByCode(ctx, record.AirlineCode)
	if err != nil {
		s.logger.Debug("No airline reference entry", "code", record.AirlineCode, "error", err)
		return
	}
	record.AirlineName = airline.Name
}
