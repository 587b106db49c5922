package repository

import (
	"context"

	"planewatch-service/internal/domain/entity"
)

// AirlineRepository looks up airline reference data by ICAO code. Used to
// backfill airline names the provider detail omits.
type AirlineRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.Airline, error)
}
