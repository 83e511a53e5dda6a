package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort         int
	DBHost           string
	DBPort           int
	DBUser           string
	DBPassword       string
	DBName           string
	DBNameTest       string
	RedisHost        string
	RedisPort        int
	JWTSecret        string
	AdminInviteToken string
	UploadDir        string
}

func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		// Stay quiet under test runs
		if os.Getenv("GO_ENV") != "test" {
			log.Println("No .env file found, using default values")
		}
	}

	httpPort, err := strconv.Atoi(os.Getenv("HTTP_PORT"))
	if err != nil {
		httpPort = 3004
	}

	dbPort, err := strconv.Atoi(os.Getenv("DB_PORT"))
	if err != nil {
		dbPort = 5432
	}

	redisPort, err := strconv.Atoi(os.Getenv("REDIS_PORT"))
	if err != nil {
		redisPort = 6379
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "secret"
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	return Config{
		HTTPPort:         httpPort,
		DBHost:           os.Getenv("DB_HOST"),
		DBPort:           dbPort,
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           os.Getenv("DB_NAME"),
		DBNameTest:       os.Getenv("DB_NAME_TEST"),
		RedisHost:        os.Getenv("REDIS_HOST"),
		RedisPort:        redisPort,
		JWTSecret:        jwtSecret,
		AdminInviteToken: os.Getenv("ADMIN_INVITE_TOKEN"),
		UploadDir:        uploadDir,
	}
}
