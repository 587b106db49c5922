package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airline is a reference-data row keyed by ICAO code.
type Airline struct {
	ID        uint
	Code      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}
