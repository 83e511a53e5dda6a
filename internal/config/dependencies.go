package config

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
)

var (
	// Shared dependencies used across handlers
	DB               *sql.DB
	SecretKey        = []byte("secret")
	AdminInviteToken string
	UploadDir        = "uploads"
	Validate         = validator.New()
	Ctx              = context.Background()
	RedisClient      *redis.Client
)
