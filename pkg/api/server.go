package api

import (
	"github.com/chegada/chegada/pkg/api/routes"
	"github.com/chegada/chegada/pkg/estimator"
	"github.com/gofiber/fiber/v2"
)

func SetupServer(listen string, arrivalEstimator *estimator.Estimator) error {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	webApp.Get("/version", routes.APIVersion)

	group := webApp.Group("/api")
	routes.EstimationRouter(group, arrivalEstimator)

	return webApp.Listen(listen)
}
