package estimator

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/chegada/chegada/pkg/redis_client"
	"github.com/chegada/chegada/pkg/transit"
	"github.com/chegada/chegada/pkg/util"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
)

const DefaultScheduleLimit = 5

type ScheduleProvider interface {
	GTFS(ctx context.Context) ([]byte, error)
}

// ScheduleResolver resolves next scheduled arrivals for a stop from the
// static GTFS extract. It is the fallback behind the live vehicle feed, so
// every failure path degrades to an empty result instead of an error
type ScheduleResolver struct {
	provider ScheduleProvider

	// per-stop arrival time lists, keyed on stop ID. Optional - nil when
	// Redis is not configured, in which case every miss hits the extract
	redisCache *cache.Cache[string]
}

func NewScheduleResolver(provider ScheduleProvider) *ScheduleResolver {
	resolver := &ScheduleResolver{provider: provider}

	if redis_client.Client != nil {
		redisStore := redisstore.NewRedis(redis_client.Client, store.WithExpiration(90*time.Minute))
		resolver.redisCache = cache.New[string](redisStore)
	}

	// Allow us to ignore those naughty records that have missing columns
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.FieldsPerRecord = -1
		return r
	})

	return resolver
}

// ScheduledArrivals returns up to limit upcoming arrivals at the stop,
// ascending by seconds-until-arrival. Arrival times at or before now have
// already departed and are dropped
func (r *ScheduleResolver) ScheduledArrivals(ctx context.Context, stopID string, now time.Time, limit int) []transit.ScheduledArrival {
	arrivalTimes, err := r.arrivalTimes(ctx, stopID)
	if err != nil {
		log.Warn().Err(err).Str("stop", stopID).Msg("Schedule extract unavailable")
		return []transit.ScheduledArrival{}
	}

	secondsUntil := []int{}

	for _, arrivalTime := range arrivalTimes {
		arrival, err := resolveArrivalInstant(arrivalTime, now)
		if err != nil {
			// bad row, not a bad extract
			continue
		}

		if !arrival.After(now) {
			continue
		}

		secondsUntil = append(secondsUntil, int(arrival.Sub(now).Seconds()))
	}

	sort.Ints(secondsUntil)

	if len(secondsUntil) > limit {
		secondsUntil = secondsUntil[:limit]
	}

	arrivals := []transit.ScheduledArrival{}
	for _, seconds := range secondsUntil {
		arrivals = append(arrivals, transit.ScheduledArrival{
			ETASeconds: seconds,
			ETAMinutes: math.Round(float64(seconds)/60*10) / 10,
		})
	}

	return arrivals
}

// resolveArrivalInstant combines a GTFS HH:MM:SS arrival time with now's
// calendar date. Hours of 24 and above are the GTFS convention for services
// running past midnight and land on the following day
func resolveArrivalInstant(arrivalTime string, now time.Time) (time.Time, error) {
	parts := strings.Split(arrivalTime, ":")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("malformed arrival time %q", arrivalTime)
	}

	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, err
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, err
	}
	second, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, err
	}

	if hour < 0 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return time.Time{}, fmt.Errorf("arrival time %q out of range", arrivalTime)
	}

	timeOfDay := time.Date(0, time.January, 1, hour%24, minute, second, 0, now.Location())
	arrival := util.AddTimeToDate(now, timeOfDay)

	if hour >= 24 {
		arrival = arrival.AddDate(0, 0, 1)
	}

	return arrival, nil
}

func (r *ScheduleResolver) cacheKey(stopID string) string {
	return fmt.Sprintf("chegada:stoptimes:%s", stopID)
}

// arrivalTimes returns the raw arrival_time values for a stop, from the
// Redis cache when possible, otherwise by streaming stop_times.txt out of
// the GTFS zip
func (r *ScheduleResolver) arrivalTimes(ctx context.Context, stopID string) ([]string, error) {
	if r.redisCache != nil {
		cached, err := r.redisCache.Get(ctx, r.cacheKey(stopID))
		if err == nil {
			var arrivalTimes []string
			if err := json.Unmarshal([]byte(cached), &arrivalTimes); err == nil {
				return arrivalTimes, nil
			}
		}
	}

	arrivalTimes, err := r.arrivalTimesFromExtract(ctx, stopID)
	if err != nil {
		return nil, err
	}

	if r.redisCache != nil {
		encoded, _ := json.Marshal(arrivalTimes)
		if err := r.redisCache.Set(ctx, r.cacheKey(stopID), string(encoded)); err != nil {
			log.Debug().Err(err).Str("stop", stopID).Msg("Failed caching schedule lookup")
		}
	}

	return arrivalTimes, nil
}

func (r *ScheduleResolver) arrivalTimesFromExtract(ctx context.Context, stopID string) ([]string, error) {
	body, err := r.provider.GTFS(ctx)
	if err != nil {
		return nil, err
	}

	archive, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, err
	}

	for _, zipFile := range archive.File {
		if zipFile.Name != "stop_times.txt" {
			continue
		}

		fileReader, err := zipFile.Open()
		if err != nil {
			return nil, err
		}
		defer fileReader.Close()

		rows := make(chan StopTime)
		streamErr := make(chan error, 1)
		go func() {
			streamErr <- gocsv.UnmarshalToChan(fileReader, rows)
		}()

		arrivalTimes := []string{}
		for row := range rows {
			if row.StopID == stopID {
				arrivalTimes = append(arrivalTimes, row.ArrivalTime)
			}
		}

		if err := <-streamErr; err != nil {
			// keep whatever parsed before the stream broke
			log.Warn().Err(err).Msg("stop_times.txt stream ended early")
		}

		return arrivalTimes, nil
	}

	return nil, fmt.Errorf("gtfs extract has no stop_times.txt")
}
