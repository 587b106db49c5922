package repository

import (
	"context"

	"planewatch-service/internal/domain/entity"
)

// FlightRepository defines the two-stage flight provider: an area search
// returning lightweight handles, then a per-flight detail fetch.
type FlightRepository interface {
	SearchBounds(ctx context.Context, box entity.BoundingBox) ([]*entity.FlightRecord, error)
	FlightDetail(ctx context.Context, flightID string) (*entity.FlightDetail, error)
}
