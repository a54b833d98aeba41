package redisclient

import (
	"fmt"

	"markethub-messaging/config"

	"github.com/redis/go-redis/v9"
)

// New builds a redis client from application config.
func New(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}
