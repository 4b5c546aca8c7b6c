package transit

import "math"

const earthRadiusMeters = 6371000.0

type Location struct {
	Latitude  float64 `json:"lat" groups:"basic"`
	Longitude float64 `json:"lon" groups:"basic"`
}

// DistanceTo returns the great-circle distance in meters between the two
// points, using the haversine formula
func (l Location) DistanceTo(other Location) float64 {
	phi1 := l.Latitude * math.Pi / 180
	phi2 := other.Latitude * math.Pi / 180
	deltaPhi := (other.Latitude - l.Latitude) * math.Pi / 180
	deltaLambda := (other.Longitude - l.Longitude) * math.Pi / 180

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}
