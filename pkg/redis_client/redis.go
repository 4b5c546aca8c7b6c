package redis_client

import (
	"context"
	"strconv"

	"github.com/chegada/chegada/pkg/util"
	"github.com/redis/go-redis/v9"
)

var Client *redis.Client

const defaultConnectionAddress = "localhost:6379"
const defaultConnectionPassword = ""
const defaultDatabase = 0

// Connect sets up the shared Redis client used for the schedule lookup
// cache. Redis is optional - when CHEGADA_REDIS_ADDRESS is not set the
// client stays nil and callers skip caching
func Connect() error {
	address := defaultConnectionAddress
	password := defaultConnectionPassword
	database := defaultDatabase

	env := util.GetEnvironmentVariables()

	if env["CHEGADA_REDIS_ADDRESS"] != "" {
		address = env["CHEGADA_REDIS_ADDRESS"]
	}

	if env["CHEGADA_REDIS_PASSWORD"] != "" {
		password = env["CHEGADA_REDIS_PASSWORD"]
	}

	if env["CHEGADA_REDIS_DATABASE"] != "" {
		if n, err := strconv.Atoi(env["CHEGADA_REDIS_DATABASE"]); err == nil {
			database = n
		} else {
			return err
		}
	}

	Client = redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       database,
	})

	statusCmd := Client.Ping(context.Background())

	return statusCmd.Err()
}
