package carris

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/chegada/chegada/pkg/transit"
	"github.com/chegada/chegada/pkg/util"
	"github.com/rs/zerolog/log"
)

const defaultBaseURL = "https://api.carrismetropolitana.pt/v1"

// The upstream API sits behind a CDN that rejects requests with no browser
// user agent
const userAgent = "Mozilla/5.0"

const (
	VehicleFeedJSON   = "json"
	VehicleFeedGTFSRT = "gtfsrt"
)

// Client talks to the Carris Metropolitana v1 API. Every call is a single
// attempt with a bounded timeout - retries and fallback are the caller's
// concern
type Client struct {
	BaseURL     string
	VehicleFeed string

	httpClient *http.Client

	// the GTFS schedule extract is a large zip, so it gets a longer deadline
	gtfsClient *http.Client
}

func NewClient() *Client {
	env := util.GetEnvironmentVariables()

	baseURL := defaultBaseURL
	if env["CHEGADA_CARRIS_API"] != "" {
		baseURL = env["CHEGADA_CARRIS_API"]
	}

	vehicleFeed := VehicleFeedJSON
	if env["CHEGADA_VEHICLE_FEED"] != "" {
		vehicleFeed = env["CHEGADA_VEHICLE_FEED"]
	}

	return &Client{
		BaseURL:     baseURL,
		VehicleFeed: vehicleFeed,

		httpClient: &http.Client{Timeout: 30 * time.Second},
		gtfsClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *Client) get(ctx context.Context, client *http.Client, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	return client.Do(req)
}

// Stops fetches the full stop catalog. Stops without usable coordinates are
// skipped rather than failing the batch
func (c *Client) Stops(ctx context.Context) ([]transit.Stop, error) {
	resp, err := c.get(ctx, c.httpClient, "/stops")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stop catalog request returned %d", resp.StatusCode)
	}

	var records []apiStop
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, err
	}

	stops := make([]transit.Stop, 0, len(records))
	skipped := 0
	for _, record := range records {
		stop, ok := record.asStop()
		if !ok {
			skipped++
			continue
		}

		stops = append(stops, stop)
	}

	if skipped > 0 {
		log.Debug().Int("skipped", skipped).Msg("Stop records without usable coordinates")
	}

	return stops, nil
}

// Stop fetches a single stop record. Any lookup failure maps to
// transit.ErrStopNotFound - a stop the upstream cannot produce a record for
// cannot have an arrival estimated, whatever the reason
func (c *Client) Stop(ctx context.Context, id string) (*transit.Stop, error) {
	resp, err := c.get(ctx, c.httpClient, "/stops/"+id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", transit.ErrStopNotFound, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: stop detail request returned %d", transit.ErrStopNotFound, resp.StatusCode)
	}

	var record apiStop
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("%w: %s", transit.ErrStopNotFound, err)
	}

	stop, ok := record.asStop()
	if !ok {
		return nil, transit.ErrStopNotFound
	}

	return &stop, nil
}

// Vehicles fetches the current live vehicle snapshot, from either the JSON
// feed or the GTFS-RT vehicle positions feed depending on configuration
func (c *Client) Vehicles(ctx context.Context) ([]transit.Vehicle, error) {
	if c.VehicleFeed == VehicleFeedGTFSRT {
		return c.vehiclesGTFSRT(ctx)
	}

	resp, err := c.get(ctx, c.httpClient, "/vehicles")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vehicle feed request returned %d", resp.StatusCode)
	}

	var records []apiVehicle
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, err
	}

	vehicles := make([]transit.Vehicle, 0, len(records))
	for _, record := range records {
		vehicles = append(vehicles, record.asVehicle())
	}

	return vehicles, nil
}

// GTFS downloads the static GTFS schedule extract as a zip
func (c *Client) GTFS(ctx context.Context) ([]byte, error) {
	resp, err := c.get(ctx, c.gtfsClient, "/gtfs")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gtfs request returned %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
