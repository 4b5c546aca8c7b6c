package stopcache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chegada/chegada/pkg/transit"
	"github.com/rs/zerolog/log"
)

// StalenessThreshold is the maximum age of the catalog snapshot before a
// refresh is required
const StalenessThreshold = 600 * time.Second

// ErrNoCatalog is returned when a refresh fails and no snapshot has ever
// been fetched. Once a snapshot exists, refresh failures are absorbed and
// the stale snapshot served instead
var ErrNoCatalog = errors.New("stop catalog unavailable")

type CatalogProvider interface {
	Stops(ctx context.Context) ([]transit.Stop, error)
}

// Cache holds the last fetched stop catalog. Reads share a reader lock;
// refreshes take the writer lock and swap snapshot and timestamp together,
// so a refresh either fully happens or leaves the entry untouched. Callers
// that race a stale cache coalesce onto a single upstream fetch
type Cache struct {
	provider CatalogProvider

	mutex     sync.RWMutex
	stops     []transit.Stop
	fetchedAt time.Time

	now func() time.Time
}

func New(provider CatalogProvider) *Cache {
	return &Cache{
		provider: provider,
		now:      time.Now,
	}
}

func (c *Cache) stale() bool {
	return c.fetchedAt.IsZero() || c.now().Sub(c.fetchedAt) > StalenessThreshold
}

// Get returns the current catalog snapshot, refreshing it first when it has
// expired or was never populated
func (c *Cache) Get(ctx context.Context) ([]transit.Stop, error) {
	c.mutex.RLock()
	if !c.stale() {
		stops := c.stops
		c.mutex.RUnlock()
		return stops, nil
	}
	c.mutex.RUnlock()

	c.mutex.Lock()
	defer c.mutex.Unlock()

	// another caller may have refreshed while we waited on the lock
	if !c.stale() {
		return c.stops, nil
	}

	stops, err := c.provider.Stops(ctx)
	if err != nil {
		if c.fetchedAt.IsZero() {
			return nil, fmt.Errorf("%w: %s", ErrNoCatalog, err)
		}

		log.Warn().Err(err).Msg("Stop catalog refresh failed - serving stale snapshot")
		return c.stops, nil
	}

	c.stops = stops
	c.fetchedAt = c.now()

	log.Debug().Int("stops", len(stops)).Msg("Stop catalog refreshed")

	return c.stops, nil
}
