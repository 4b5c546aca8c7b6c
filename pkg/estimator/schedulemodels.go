package estimator

// StopTime is a row of the GTFS stop_times.txt extract. Only the columns the
// resolver needs are mapped; arrival_time stays a string because GTFS allows
// hours of 24 and above for services running past midnight
type StopTime struct {
	TripID       string `csv:"trip_id"`
	ArrivalTime  string `csv:"arrival_time"`
	StopID       string `csv:"stop_id"`
	StopSequence string `csv:"stop_sequence"`
}
