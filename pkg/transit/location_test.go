package transit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceToKnownPoints(t *testing.T) {
	tests := []struct {
		name     string
		from     Location
		to       Location
		expected float64
		delta    float64
	}{
		{
			name:     "Lisbon to Porto",
			from:     Location{Latitude: 38.7223, Longitude: -9.1393},
			to:       Location{Latitude: 41.1579, Longitude: -8.6291},
			expected: 274000,
			delta:    2000,
		},
		{
			name:     "Antipodal points on the equator",
			from:     Location{Latitude: 0, Longitude: 0},
			to:       Location{Latitude: 0, Longitude: 180},
			expected: math.Pi * 6371000,
			delta:    1,
		},
		{
			name:     "Across a stop's road",
			from:     Location{Latitude: 38.70, Longitude: -9.13},
			to:       Location{Latitude: 38.7001, Longitude: -9.13},
			expected: 11.1,
			delta:    0.1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.from.DistanceTo(tt.to), tt.delta)
		})
	}
}

func TestDistanceToIsSymmetric(t *testing.T) {
	a := Location{Latitude: 38.70, Longitude: -9.13}
	b := Location{Latitude: 41.1579, Longitude: -8.6291}

	assert.Equal(t, a.DistanceTo(b), b.DistanceTo(a))
}

func TestDistanceToSelfIsZero(t *testing.T) {
	points := []Location{
		{Latitude: 0, Longitude: 0},
		{Latitude: 38.70, Longitude: -9.13},
		{Latitude: -90, Longitude: 180},
	}

	for _, point := range points {
		distance := point.DistanceTo(point)

		assert.False(t, math.IsNaN(distance))
		assert.Zero(t, distance)
	}
}

func TestDistanceToIsNonNegative(t *testing.T) {
	pairs := [][2]Location{
		{{Latitude: 90, Longitude: 0}, {Latitude: -90, Longitude: 0}},
		{{Latitude: 38.70, Longitude: -9.13}, {Latitude: 38.70, Longitude: -9.13001}},
		{{Latitude: -45, Longitude: -170}, {Latitude: 45, Longitude: 170}},
	}

	for _, pair := range pairs {
		distance := pair[0].DistanceTo(pair[1])

		assert.False(t, math.IsNaN(distance))
		assert.GreaterOrEqual(t, distance, 0.0)
	}
}
