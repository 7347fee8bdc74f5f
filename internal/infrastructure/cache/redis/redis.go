package redis

import (
	"context"
	"time"

	"github.com/alimikegami/pos-microservices/storefront-service/config"
	"github.com/redis/go-redis/v9"
)

// CreateRedisClient connects and pings with a short deadline so a wrong address fails
// at startup rather than on the first cart request.
func CreateRedisClient(conf config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Address,
		Password: conf.Password,
		DB:       conf.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}
