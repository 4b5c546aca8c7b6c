package api

import (
	"github.com/chegada/chegada/pkg/carris"
	"github.com/chegada/chegada/pkg/estimator"
	"github.com/chegada/chegada/pkg/redis_client"
	"github.com/chegada/chegada/pkg/stopcache"
	"github.com/chegada/chegada/pkg/util"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the arrival estimation web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
				},
				Action: func(c *cli.Context) error {
					env := util.GetEnvironmentVariables()

					if env["CHEGADA_REDIS_ADDRESS"] != "" {
						if err := redis_client.Connect(); err != nil {
							return err
						}
					} else {
						log.Info().Msg("No Redis configured - schedule lookups will not be cached")
					}

					client := carris.NewClient()

					arrivalEstimator := estimator.New(
						stopcache.New(client),
						client,
						client,
						estimator.NewScheduleResolver(client),
					)

					return SetupServer(c.String("listen"), arrivalEstimator)
				},
			},
		},
	}
}
