package transit

// Vehicle is a single snapshot from the live vehicle feed. It is never
// persisted - each feed fetch produces a fresh set of observations.
type Vehicle struct {
	ID string

	// Location is nil when the feed omitted coordinates for this vehicle
	Location *Location

	// Speed as reported by the feed. The unit is ambiguous upstream - see
	// NormaliseSpeed
	Speed float64

	TripID    string
	PatternID string
	RouteID   string
}

// The upstream feed mixes speed units between vehicles. Anything above this
// is assumed to be km/h, anything at or below it m/s. The threshold is an
// approximation inherited from the feed's known behaviour - do not "fix" it
const speedUnitThreshold = 40.0

// NormaliseSpeed returns the reported speed in m/s
func (v *Vehicle) NormaliseSpeed() float64 {
	if v.Speed > speedUnitThreshold {
		return v.Speed * 1000 / 3600
	}

	return v.Speed
}
