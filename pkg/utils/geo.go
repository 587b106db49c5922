package utils

import (
	"math"

	"planewatch-service/internal/domain/entity"
)

// Mean earth radius in kilometers
const earthRadiusKm = 6371.0088

// BoundsAround derives the bounding box for an area flight query by
// projecting the center point along the four cardinal bearings. Pure
// function; behavior at the poles is undefined and not handled specially.
func BoundsAround(lat, lon, radiusKm float64) entity.BoundingBox {
	north, _ := destination(lat, lon, 0, radiusKm)
	_, east := destination(lat, lon, 90, radiusKm)
	south, _ := destination(lat, lon, 180, radiusKm)
	_, west := destination(lat, lon, 270, radiusKm)

	return entity.BoundingBox{
		North: north,
		South: south,
		West:  west,
		East:  east,
	}
}

// destination computes the great-circle destination point at the given
// distance and initial bearing from (lat, lon), all in degrees and km.
func destination(lat, lon, bearing, distanceKm float64) (float64, float64) {
	phi1 := lat * math.Pi / 180
	lambda1 := lon * math.Pi / 180
	theta := bearing * math.Pi / 180
	delta := distanceKm / earthRadiusKm

	sinPhi2 := math.Sin(phi1)*math.Cos(delta) + math.Cos(phi1)*math.Sin(delta)*math.Cos(theta)
	phi2 := math.Asin(sinPhi2)
	lambda2 := lambda1 + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(phi1),
		math.Cos(delta)-math.Sin(phi1)*sinPhi2,
	)

	lat2 := phi2 * 180 / math.Pi
	lon2 := lambda2 * 180 / math.Pi

	// Normalize longitude to [-180, 180)
	lon2 = math.Mod(lon2+540, 360) - 180

	return lat2, lon2
}

// HaversineKm returns the great-circle distance between two points in km.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
