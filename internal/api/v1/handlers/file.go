package handlers

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Yogabut/task-management/internal/config"
	"github.com/Yogabut/task-management/pkg/logger"
)

func validateImage(file *multipart.FileHeader) error {
	// 5MB cap
	if file.Size > 5<<20 {
		return fiber.NewError(fiber.StatusBadRequest, "File size exceeds the limit of 5MB")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowedExts := map[string]bool{".jpg": true, ".jpeg": true, ".png": true}
	if !allowedExts[ext] {
		return fiber.NewError(fiber.StatusBadRequest, "File type not allowed")
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.Contains(contentType, "image") {
		return fiber.NewError(fiber.StatusBadRequest, "File must be an image")
	}

	return nil
}

// UploadProfileImage stores a profile picture on disk and records its URL
// on the authenticated user.
func UploadProfileImage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int)

	if _, err := os.Stat(config.UploadDir); os.IsNotExist(err) {
		if err := os.Mkdir(config.UploadDir, os.ModePerm); err != nil {
			logger.ErrorLogger.Error("Error creating upload directory", zap.Error(err))
			return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
		}
	}

	file, err := c.FormFile("image")
	if err != nil {
		logger.ErrorLogger.Error("Error reading uploaded file", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{"message": "No image file provided"})
	}

	if err := validateImage(file); err != nil {
		logger.ErrorLogger.Error("Invalid uploaded file", zap.Error(err))
		if fiberErr, ok := err.(*fiber.Error); ok {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
		}
		return c.Status(400).JSON(fiber.Map{"message": err.Error()})
	}

	filename := fmt.Sprintf("%d_%d%s", userID, time.Now().UnixNano(), strings.ToLower(filepath.Ext(file.Filename)))
	dest := filepath.Join(config.UploadDir, filename)
	if err := c.SaveFile(file, dest); err != nil {
		logger.ErrorLogger.Error("Error saving uploaded file", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	imageURL := fmt.Sprintf("/%s/%s", config.UploadDir, filename)
	_, err = config.DB.Exec(
		"UPDATE users SET profile_image_url = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2",
		imageURL, userID)
	if err != nil {
		logger.ErrorLogger.Error("Error updating profile image", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	config.RedisClient.Del(config.Ctx, userCacheKey(userID))

	logger.AuditLogger.Info("Profile image uploaded", zap.Int("user_id", userID), zap.String("url", imageURL))
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"imageUrl": imageURL}})
}
