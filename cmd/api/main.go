package main

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"

	"github.com/Yogabut/task-management/configs"
	v1 "github.com/Yogabut/task-management/internal/api/v1"
	"github.com/Yogabut/task-management/internal/config"
	"github.com/Yogabut/task-management/internal/middleware"
	"github.com/Yogabut/task-management/internal/repository"
	"github.com/Yogabut/task-management/pkg/database"
	"github.com/Yogabut/task-management/pkg/logger"
)

func main() {
	logger.InitLoggers()
	defer logger.SyncLoggers()
	logger.SystemLogger.Info("Starting application", zap.String("time", time.Now().Format(time.RFC3339)))

	cfg := configs.LoadConfig()
	config.SecretKey = []byte(cfg.JWTSecret)
	config.AdminInviteToken = cfg.AdminInviteToken
	config.UploadDir = cfg.UploadDir

	config.DB = database.ConnectDB(cfg)
	defer config.DB.Close()
	logger.SystemLogger.Info("Database connected")

	repository.CreateTableIfNotExists(config.DB)

	config.RedisClient = database.ConnectRedis(cfg)
	defer config.RedisClient.Close()

	app := fiber.New()

	app.Use(middleware.ErrorHandler())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
	}))

	// Serve uploaded profile images
	app.Static("/"+cfg.UploadDir, "./"+cfg.UploadDir)

	v1.RegisterRoutes(app)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.SystemLogger.Info("Application ready", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		logger.ErrorLogger.Error("Application failed to start", zap.Error(err))
	}
}
