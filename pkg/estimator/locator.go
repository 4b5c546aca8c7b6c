package estimator

import (
	"sort"

	"github.com/chegada/chegada/pkg/transit"
)

const DefaultNearbyLimit = 7

// FindNearby returns the closest stops to a point, ascending by distance,
// keeping only stops whose lines match the filter. Ties keep catalog order
func FindNearby(location transit.Location, lineFilter string, stops []transit.Stop, limit int) []transit.NearbyStop {
	candidates := []transit.NearbyStop{}

	for _, stop := range stops {
		if !transit.MatchesLineFilter(lineFilter, stop.Lines...) {
			continue
		}

		candidates = append(candidates, transit.NearbyStop{
			Stop:           stop,
			DistanceMeters: int(location.DistanceTo(stop.Location)),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].DistanceMeters < candidates[j].DistanceMeters
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return candidates
}
