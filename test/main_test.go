package test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/Yogabut/task-management/configs"
	v1 "github.com/Yogabut/task-management/internal/api/v1"
	"github.com/Yogabut/task-management/internal/config"
	"github.com/Yogabut/task-management/internal/middleware"
	"github.com/Yogabut/task-management/internal/repository"
	"github.com/Yogabut/task-management/pkg/database"
	"github.com/Yogabut/task-management/pkg/logger"
)

func connectDBTest(cfg configs.Config) *sql.DB {
	psqlconn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBNameTest)
	db, err := sql.Open("postgres", psqlconn)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	return db
}

func TestMain(m *testing.M) {
	logger.InitLoggers()
	defer logger.SyncLoggers()

	os.Setenv("GO_ENV", "test")

	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			logger.SystemLogger.Info("No .env file found, using default values")
		}
	}

	cfg := configs.LoadConfig()
	config.SecretKey = []byte(cfg.JWTSecret)
	config.AdminInviteToken = cfg.AdminInviteToken

	config.DB = connectDBTest(cfg)
	defer config.DB.Close()

	repository.CreateTableIfNotExists(config.DB)

	config.RedisClient = database.ConnectRedis(cfg)
	defer config.RedisClient.Close()

	code := m.Run()

	repository.DeleteAllTable(config.DB)

	os.Exit(code)
}

// CreateTestApp wires the real route table into a fresh Fiber app.
func CreateTestApp() *fiber.App {
	app := fiber.New()
	app.Use(middleware.ErrorHandler())
	v1.RegisterRoutes(app)
	return app
}

// doJSON issues a JSON request against the test app and decodes the
// response body.
func doJSON(t *testing.T, app *fiber.App, method, url, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Error encoding request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil && err != io.EOF {
		t.Fatalf("Error decoding response for %s %s: %v", method, url, err)
	}
	resp.Body.Close()
	return resp, result
}

// CreateTestAdmin inserts an admin directly and logs it in.
func CreateTestAdmin(app *fiber.App, t *testing.T) (string, int) {
	t.Helper()

	uniqueEmail := fmt.Sprintf("admin_%d@example.com", time.Now().UnixNano())
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("adminpass"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("Error hashing admin password: %v", err)
	}
	var adminID int
	err = config.DB.QueryRow(
		"INSERT INTO users (name, email, password, role) VALUES ($1, $2, $3, 'admin') RETURNING id",
		"Test Admin", uniqueEmail, string(hashedPassword),
	).Scan(&adminID)
	if err != nil {
		t.Fatalf("Error inserting admin user: %v", err)
	}

	resp, result := doJSON(t, app, "POST", "/api/auth/login", "", map[string]string{
		"email":    uniqueEmail,
		"password": "adminpass",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Admin login returned %d", resp.StatusCode)
	}
	data, ok := result["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected data field in admin login response")
	}
	token, ok := data["token"].(string)
	if !ok || token == "" {
		t.Fatalf("Expected valid admin token")
	}
	return token, adminID
}

// CreateTestMember registers a fresh member account and logs it in.
func CreateTestMember(app *fiber.App, t *testing.T) (string, int) {
	t.Helper()

	uniqueEmail := fmt.Sprintf("member_%d@example.com", time.Now().UnixNano())
	resp, result := doJSON(t, app, "POST", "/api/auth/register", "", map[string]string{
		"name":     "Test Member",
		"email":    uniqueEmail,
		"password": "memberpass",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Member registration returned %d", resp.StatusCode)
	}
	data, ok := result["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected data field in register response")
	}
	token, ok := data["token"].(string)
	if !ok || token == "" {
		t.Fatalf("Expected valid member token")
	}
	memberID, ok := data["id"].(float64)
	if !ok {
		t.Fatalf("Expected member id in register response")
	}
	return token, int(memberID)
}

// createProject creates a project through the API and returns its id.
func createProject(t *testing.T, app *fiber.App, adminToken string, body map[string]interface{}) int {
	t.Helper()

	resp, result := doJSON(t, app, "POST", "/api/projects/", adminToken, body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Create project returned %d: %v", resp.StatusCode, result["message"])
	}
	data := result["data"].(map[string]interface{})
	return int(data["id"].(float64))
}

// createTask creates a task through the API and returns its id.
func createTask(t *testing.T, app *fiber.App, adminToken string, body map[string]interface{}) int {
	t.Helper()

	resp, result := doJSON(t, app, "POST", "/api/tasks/", adminToken, body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Create task returned %d: %v", resp.StatusCode, result["message"])
	}
	data := result["data"].(map[string]interface{})
	return int(data["id"].(float64))
}
