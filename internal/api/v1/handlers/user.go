package handlers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Yogabut/task-management/internal/config"
	"github.com/Yogabut/task-management/internal/models"
	"github.com/Yogabut/task-management/pkg/logger"
)

func userCacheKey(userID int) string {
	return fmt.Sprintf("user:%d", userID)
}

// GetAllUsers lists every member account with per-status counts of their
// assigned tasks. Admin only (route middleware).
func GetAllUsers(c *fiber.Ctx) error {
	rows, err := config.DB.Query(
		"SELECT id, name, email, role, COALESCE(profile_image_url, ''), created_at, updated_at FROM users WHERE role = $1 ORDER BY id",
		models.RoleMember)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching users", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}
	defer rows.Close()

	users := []models.UserWithTaskCounts{}
	for rows.Next() {
		var user models.UserWithTaskCounts
		err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Role,
			&user.ProfileImageURL, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			logger.ErrorLogger.Error("Error scanning users", zap.Error(err))
			return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		logger.ErrorLogger.Error("Error iterating over users", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	countQuery := `
		SELECT COUNT(*) FROM task_assignees ta
		JOIN tasks t ON t.id = ta.task_id
		WHERE ta.user_id = $1 AND t.status = $2`
	for i := range users {
		user := &users[i]
		g, ctx := errgroup.WithContext(config.Ctx)
		g.Go(func() error {
			return config.DB.QueryRowContext(ctx, countQuery, user.ID, models.TaskPending).Scan(&user.PendingTasks)
		})
		g.Go(func() error {
			return config.DB.QueryRowContext(ctx, countQuery, user.ID, models.TaskInProgress).Scan(&user.InProgressTasks)
		})
		g.Go(func() error {
			return config.DB.QueryRowContext(ctx, countQuery, user.ID, models.TaskCompleted).Scan(&user.CompletedTasks)
		})
		if err := g.Wait(); err != nil {
			logger.ErrorLogger.Error("Error counting user tasks", zap.Error(err))
			return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
		}
	}

	logger.AuditLogger.Info("Users fetched", zap.Int("count", len(users)))
	return c.JSON(fiber.Map{"success": true, "count": len(users), "data": users})
}

// GetUser returns a single user by id. Admin only (route middleware).
func GetUser(c *fiber.Ctx) error {
	targetID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid user ID", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{"message": "Invalid user ID"})
	}

	cacheKey := userCacheKey(targetID)
	if cached, err := config.RedisClient.Get(config.Ctx, cacheKey).Result(); err == nil {
		var user models.User
		if err = json.Unmarshal([]byte(cached), &user); err == nil {
			return c.JSON(fiber.Map{"success": true, "data": user})
		}
	}

	var user models.User
	err = config.DB.QueryRow(
		"SELECT id, name, email, role, COALESCE(profile_image_url, ''), created_at, updated_at FROM users WHERE id = $1",
		targetID).Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.ProfileImageURL, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		logger.SecurityLogger.Warn("User not found", zap.Int("target_id", targetID))
		return c.Status(404).JSON(fiber.Map{"message": "User not found"})
	}

	if userJSON, err := json.Marshal(user); err == nil {
		config.RedisClient.SetEX(config.Ctx, cacheKey, userJSON, time.Hour)
	}

	return c.JSON(fiber.Map{"success": true, "data": user})
}
