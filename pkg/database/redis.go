package database

import (
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/Yogabut/task-management/configs"
	"github.com/Yogabut/task-management/internal/config"
	"github.com/Yogabut/task-management/pkg/logger"
)

func ConnectRedis(cfg configs.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password: "",
		DB:       0,
	})
	if err := client.Ping(config.Ctx).Err(); err != nil {
		logger.ErrorLogger.Error("Redis connection error", zap.Error(err))
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	return client
}
