package carris

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/chegada/chegada/pkg/transit"
	"google.golang.org/protobuf/proto"
)

func (c *Client) vehiclesGTFSRT(ctx context.Context) ([]transit.Vehicle, error) {
	resp, err := c.get(ctx, c.httpClient, "/gtfs/rt/vehicle-positions")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gtfs-rt request returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	feed := gtfs.FeedMessage{}
	if err := proto.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("failed parsing GTFS-RT protobuf: %w", err)
	}

	var vehicles []transit.Vehicle

	for _, entity := range feed.Entity {
		vehiclePosition := entity.GetVehicle()
		if vehiclePosition == nil {
			continue
		}

		// Skip any records that haven't been updated in over 20 minutes
		if vehiclePosition.Timestamp != nil {
			recordedAtTime := time.Unix(int64(*vehiclePosition.Timestamp), 0)
			if time.Now().UTC().Sub(recordedAtTime).Minutes() > 20 {
				continue
			}
		}

		trip := vehiclePosition.GetTrip()

		vehicle := transit.Vehicle{
			ID:      vehiclePosition.GetVehicle().GetId(),
			TripID:  trip.GetTripId(),
			RouteID: trip.GetRouteId(),
		}

		if position := vehiclePosition.GetPosition(); position != nil {
			vehicle.Location = &transit.Location{
				Latitude:  float64(position.GetLatitude()),
				Longitude: float64(position.GetLongitude()),
			}
			vehicle.Speed = float64(position.GetSpeed())
		}

		vehicles = append(vehicles, vehicle)
	}

	return vehicles, nil
}
