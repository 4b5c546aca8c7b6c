package estimator

import (
	"context"
	"time"

	"github.com/chegada/chegada/pkg/stopcache"
	"github.com/chegada/chegada/pkg/transit"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

// NoDataMessage is the user-facing explanation attached to a "none" outcome
const NoDataMessage = "Sem dados em tempo real. Tenta mais tarde."

type VehicleFeedProvider interface {
	Vehicles(ctx context.Context) ([]transit.Vehicle, error)
}

type StopDetailProvider interface {
	Stop(ctx context.Context, id string) (*transit.Stop, error)
}

// Estimator composes the stop catalog cache, live vehicle feed and schedule
// resolver into the two operations the API exposes. Outcomes are attempted
// in strict order per request: realtime, then schedule, then none. Each
// upstream is tried once - a failed stage falls through to the next
type Estimator struct {
	StopCache  *stopcache.Cache
	Feed       VehicleFeedProvider
	StopDetail StopDetailProvider
	Schedule   *ScheduleResolver

	now func() time.Time
}

func New(stopCache *stopcache.Cache, feed VehicleFeedProvider, stopDetail StopDetailProvider, schedule *ScheduleResolver) *Estimator {
	return &Estimator{
		StopCache:  stopCache,
		Feed:       feed,
		StopDetail: stopDetail,
		Schedule:   schedule,

		now: time.Now,
	}
}

// LocateNearby returns the closest catalog stops to a point, refreshing the
// catalog first if it has gone stale
func (e *Estimator) LocateNearby(ctx context.Context, location transit.Location, lineFilter string) ([]transit.NearbyStop, error) {
	stops, err := e.StopCache.Get(ctx)
	if err != nil {
		return nil, err
	}

	return FindNearby(location, lineFilter, stops, DefaultNearbyLimit), nil
}

// EstimateArrival estimates when a bus matching the line filter arrives at
// the stop. Stop detail lookup failure is terminal; everything downstream of
// it degrades instead of failing
func (e *Estimator) EstimateArrival(ctx context.Context, stopID string, lineFilter string) (*transit.ArrivalEstimate, error) {
	var stop *transit.Stop
	var stopErr error
	var vehicles []transit.Vehicle

	// the stop detail lookup and the vehicle feed don't depend on each
	// other, so fetch them concurrently
	p := pool.New()
	p.Go(func() {
		stop, stopErr = e.StopDetail.Stop(ctx, stopID)
	})
	p.Go(func() {
		feedVehicles, err := e.Feed.Vehicles(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Vehicle feed unavailable - falling back to schedule")
			return
		}

		vehicles = feedVehicles
	})
	p.Wait()

	if stopErr != nil {
		return nil, stopErr
	}

	matches := MatchVehicles(stop, lineFilter, vehicles, DefaultVehicleLimit)
	if len(matches) > 0 {
		return &transit.ArrivalEstimate{
			Type:     transit.EstimateTypeRealtime,
			Stop:     stop,
			Vehicles: matches,
		}, nil
	}

	scheduled := e.Schedule.ScheduledArrivals(ctx, stopID, e.now(), DefaultScheduleLimit)
	if len(scheduled) > 0 {
		return &transit.ArrivalEstimate{
			Type:      transit.EstimateTypeSchedule,
			Stop:      stop,
			Scheduled: scheduled,
		}, nil
	}

	return &transit.ArrivalEstimate{
		Type:    transit.EstimateTypeNone,
		Stop:    stop,
		Message: NoDataMessage,
	}, nil
}
