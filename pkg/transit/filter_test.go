package transit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesLineFilter(t *testing.T) {
	tests := []struct {
		name     string
		filter   string
		labels   []string
		expected bool
	}{
		{
			name:     "empty filter matches everything",
			filter:   "",
			labels:   []string{"1512"},
			expected: true,
		},
		{
			name:     "empty filter matches even without labels",
			filter:   "",
			labels:   nil,
			expected: true,
		},
		{
			name:     "substring match",
			filter:   "15",
			labels:   []string{"1512", "2704"},
			expected: true,
		},
		{
			name:     "case insensitive substring",
			filter:   "42",
			labels:   []string{"Line 042A"},
			expected: true,
		},
		{
			name:     "mixed case filter",
			filter:   "LINE",
			labels:   []string{"line 042a"},
			expected: true,
		},
		{
			name:     "no label contains the filter",
			filter:   "9999",
			labels:   []string{"1512", "2704"},
			expected: false,
		},
		{
			name:     "non-empty filter with no labels",
			filter:   "15",
			labels:   nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MatchesLineFilter(tt.filter, tt.labels...))
		})
	}
}
