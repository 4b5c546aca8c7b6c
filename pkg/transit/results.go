package transit

type NearbyStop struct {
	Stop

	DistanceMeters int `json:"distance_m" groups:"basic"`
}

type VehicleMatch struct {
	VehicleID string `json:"vehicle_id" groups:"basic"`

	DistanceMeters int     `json:"distance_m" groups:"basic"`
	ETAMinutes     float64 `json:"eta_minutes" groups:"basic"`

	Location Location `json:"location" groups:"basic"`
}

type ScheduledArrival struct {
	ETASeconds int     `json:"eta_seconds" groups:"basic"`
	ETAMinutes float64 `json:"eta_minutes" groups:"basic"`
}

type EstimateType string

const (
	EstimateTypeRealtime EstimateType = "realtime"
	EstimateTypeSchedule EstimateType = "schedule"
	EstimateTypeNone     EstimateType = "none"
)

// ArrivalEstimate is the terminal outcome of an estimation request. Exactly
// one of Vehicles or Scheduled is populated, matching Type; a "none" result
// is valid and carries a user-facing message, it is not an error
type ArrivalEstimate struct {
	Type EstimateType `json:"type" groups:"basic"`

	Stop *Stop `json:"stop" groups:"basic"`

	Vehicles  []VehicleMatch     `json:"vehicles,omitempty" groups:"basic"`
	Scheduled []ScheduledArrival `json:"scheduled,omitempty" groups:"basic"`

	Message string `json:"message,omitempty" groups:"basic"`
}
