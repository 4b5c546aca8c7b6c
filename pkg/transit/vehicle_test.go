package transit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormaliseSpeed(t *testing.T) {
	tests := []struct {
		name     string
		raw      float64
		expected float64
	}{
		{
			name:     "above threshold is km/h",
			raw:      45,
			expected: 12.5,
		},
		{
			name:     "below threshold is already m/s",
			raw:      10,
			expected: 10,
		},
		{
			name:     "exactly the threshold stays m/s",
			raw:      40,
			expected: 40,
		},
		{
			name:     "just above the threshold converts",
			raw:      40.5,
			expected: 11.25,
		},
		{
			name:     "zero",
			raw:      0,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vehicle := Vehicle{Speed: tt.raw}

			assert.InDelta(t, tt.expected, vehicle.NormaliseSpeed(), 0.0001)
		})
	}
}
