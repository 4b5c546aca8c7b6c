package carris

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/chegada/chegada/pkg/transit"
)

// looseFloat decodes a JSON number that the upstream API sometimes encodes
// as a string. Absent values stay nil (use a pointer), unparsable values
// decode as NaN - either way a bad record is skipped, never a failed payload
type looseFloat float64

func (f *looseFloat) UnmarshalJSON(data []byte) error {
	*f = looseFloat(math.NaN())

	var number float64
	if err := json.Unmarshal(data, &number); err == nil {
		*f = looseFloat(number)
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		if number, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil {
			*f = looseFloat(number)
		}
	}

	return nil
}

func (f *looseFloat) value() (float64, bool) {
	if f == nil || math.IsNaN(float64(*f)) {
		return 0, false
	}

	return float64(*f), true
}

type apiStop struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Lat   *looseFloat `json:"lat"`
	Lon   *looseFloat `json:"lon"`
	Lines []string    `json:"lines"`
}

// asStop converts the wire record, reporting false for stops without usable
// coordinates so callers can skip them rather than fail the batch
func (s apiStop) asStop() (transit.Stop, bool) {
	lat, latOK := s.Lat.value()
	lon, lonOK := s.Lon.value()

	if !latOK || !lonOK {
		return transit.Stop{}, false
	}

	return transit.Stop{
		ID:   s.ID,
		Name: s.Name,
		Location: transit.Location{
			Latitude:  lat,
			Longitude: lon,
		},
		Lines: s.Lines,
	}, true
}

type apiVehicle struct {
	ID        string      `json:"id"`
	Lat       *looseFloat `json:"lat"`
	Lon       *looseFloat `json:"lon"`
	Speed     *looseFloat `json:"speed"`
	TripID    string      `json:"trip_id"`
	PatternID string      `json:"pattern_id"`
	RouteID   string      `json:"route_id"`
}

func (v apiVehicle) asVehicle() transit.Vehicle {
	vehicle := transit.Vehicle{
		ID:        v.ID,
		TripID:    v.TripID,
		PatternID: v.PatternID,
		RouteID:   v.RouteID,
	}

	lat, latOK := v.Lat.value()
	lon, lonOK := v.Lon.value()
	if latOK && lonOK {
		vehicle.Location = &transit.Location{
			Latitude:  lat,
			Longitude: lon,
		}
	}

	if speed, ok := v.Speed.value(); ok {
		vehicle.Speed = speed
	}

	return vehicle
}
