package routes

import (
	"math"
	"strconv"
	"strings"

	"github.com/chegada/chegada/pkg/estimator"
	"github.com/chegada/chegada/pkg/transit"
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
)

type estimationRouter struct {
	estimator *estimator.Estimator
}

func EstimationRouter(router fiber.Router, arrivalEstimator *estimator.Estimator) {
	r := &estimationRouter{estimator: arrivalEstimator}

	router.Get("/nearby_stops", r.nearbyStops)
	router.Get("/arrival", r.arrival)
}

func parseCoordinate(value string) (float64, bool) {
	coordinate, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(coordinate) || math.IsInf(coordinate, 0) {
		return 0, false
	}

	return coordinate, true
}

func (r *estimationRouter) nearbyStops(c *fiber.Ctx) error {
	lat, latOK := parseCoordinate(c.Query("lat"))
	lon, lonOK := parseCoordinate(c.Query("lon"))

	if !latOK || !lonOK {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameters lat and lon must be valid coordinates",
		})
	}

	lineFilter := strings.TrimSpace(c.Query("line"))

	nearbyStops, err := r.estimator.LocateNearby(c.Context(), transit.Location{
		Latitude:  lat,
		Longitude: lon,
	}, lineFilter)

	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Could not retrieve the stop catalog",
		})
	}

	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, nearbyStops)

	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce nearbyStops",
		})
	}

	return c.JSON(reduced)
}

func (r *estimationRouter) arrival(c *fiber.Ctx) error {
	stopID := c.Query("stop_id")
	if stopID == "" {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter stop_id is required",
		})
	}

	lineFilter := strings.TrimSpace(c.Query("line"))

	estimate, err := r.estimator.EstimateArrival(c.Context(), stopID, lineFilter)

	// the estimator only errors when the stop lookup fails - the vehicle
	// feed and schedule stages degrade instead. An unresolvable stop is
	// reported as not found, never as a generic failure
	if err != nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Stop matching Stop Identifier",
		})
	}

	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, estimate)

	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce estimate",
		})
	}

	return c.JSON(reduced)
}
