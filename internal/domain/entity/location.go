package entity

import "fmt"

// LocationUpdate is one validated inbound location shared by a user. It is
// read once per pipeline run and discarded.
type LocationUpdate struct {
	RecipientID int64
	Latitude    float64
	Longitude   float64
	Live        bool
}

// BoundingBox is a rectangular lat/lon region in degrees, derived from a
// center point and a radius. Immutable, used once per request.
type BoundingBox struct {
	North float64
	South float64
	West  float64
	East  float64
}

// Bounds renders the box in the provider's query order: north,south,west,east.
func (b BoundingBox) Bounds() string {
	return fmt.Sprintf("%f,%f,%f,%f", b.North, b.South, b.West, b.East)
}
