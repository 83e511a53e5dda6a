package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Yogabut/task-management/internal/config"
	"github.com/Yogabut/task-management/internal/models"
	"github.com/Yogabut/task-management/pkg/logger"
)

// generateToken issues an HS256 bearer token carrying the principal.
func generateToken(userID int, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(7 * 24 * time.Hour).Unix(),
	})
	return token.SignedString(config.SecretKey)
}

func Register(c *fiber.Ctx) error {
	type RegisterRequest struct {
		Name             string `json:"name" validate:"required"`
		Email            string `json:"email" validate:"required,email"`
		Password         string `json:"password" validate:"required,min=6"`
		ProfileImageURL  string `json:"profileImageUrl"`
		AdminInviteToken string `json:"adminInviteToken"`
	}

	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in register", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{"message": "Bad request"})
	}

	if err := config.Validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error during register", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"error":   err.Error(),
		})
	}

	// A valid invite token promotes the registration to admin.
	role := models.RoleMember
	if req.AdminInviteToken != "" && req.AdminInviteToken == config.AdminInviteToken {
		role = models.RoleAdmin
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.ErrorLogger.Error("Error hashing password", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	var userID int
	err = config.DB.QueryRow(
		"INSERT INTO users (name, email, password, role, profile_image_url) VALUES ($1, $2, $3, $4, $5) RETURNING id",
		req.Name, req.Email, string(hashedPassword), role, req.ProfileImageURL).Scan(&userID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			logger.SecurityLogger.Warn("Duplicate email registration", zap.String("email", req.Email))
			return c.Status(400).JSON(fiber.Map{"message": "User already exists"})
		}
		logger.ErrorLogger.Error("Error creating user", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	tokenString, err := generateToken(userID, role)
	if err != nil {
		logger.ErrorLogger.Error("Error generating token", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	logger.AuditLogger.Info("User registered", zap.Int("user_id", userID), zap.String("role", role))
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":              userID,
			"name":            req.Name,
			"email":           req.Email,
			"role":            role,
			"profileImageUrl": req.ProfileImageURL,
			"token":           tokenString,
		},
	})
}

func Login(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in login", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{"message": "Bad request"})
	}

	if err := config.Validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error during login", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"error":   err.Error(),
		})
	}

	var user models.User
	err := config.DB.QueryRow(
		"SELECT id, name, email, password, role, COALESCE(profile_image_url, '') FROM users WHERE email = $1",
		req.Email).Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.Role, &user.ProfileImageURL)
	if err != nil {
		logger.SecurityLogger.Warn("Login for unknown email", zap.String("email", req.Email))
		return c.Status(401).JSON(fiber.Map{"message": "Invalid email or password"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		logger.SecurityLogger.Warn("Invalid password", zap.String("email", req.Email))
		return c.Status(401).JSON(fiber.Map{"message": "Invalid email or password"})
	}

	tokenString, err := generateToken(user.ID, user.Role)
	if err != nil {
		logger.ErrorLogger.Error("Error generating token", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	logger.AuditLogger.Info("Login success", zap.Int("user_id", user.ID), zap.String("role", user.Role))
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":              user.ID,
			"name":            user.Name,
			"email":           user.Email,
			"role":            user.Role,
			"profileImageUrl": user.ProfileImageURL,
			"token":           tokenString,
		},
	})
}

func GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int)

	var user models.User
	err := config.DB.QueryRow(
		"SELECT id, name, email, role, COALESCE(profile_image_url, ''), created_at, updated_at FROM users WHERE id = $1",
		userID).Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.ProfileImageURL, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		logger.ErrorLogger.Error("Profile not found", zap.Int("user_id", userID), zap.Error(err))
		return c.Status(404).JSON(fiber.Map{"message": "User not found"})
	}

	return c.JSON(fiber.Map{"success": true, "data": user})
}

func UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int)
	role := c.Locals("role").(string)

	type UpdateProfileRequest struct {
		Name     *string `json:"name"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in update profile", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{"message": "Bad request"})
	}

	var user models.User
	err := config.DB.QueryRow(
		"SELECT id, name, email, password FROM users WHERE id = $1",
		userID).Scan(&user.ID, &user.Name, &user.Email, &user.Password)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "User not found"})
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.ErrorLogger.Error("Error hashing password", zap.Error(err))
			return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
		}
		user.Password = string(hashed)
	}

	_, err = config.DB.Exec(
		"UPDATE users SET name = $1, email = $2, password = $3, updated_at = CURRENT_TIMESTAMP WHERE id = $4",
		user.Name, user.Email, user.Password, userID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return c.Status(400).JSON(fiber.Map{"message": "Email already in use"})
		}
		logger.ErrorLogger.Error("Error updating profile", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	config.RedisClient.Del(config.Ctx, userCacheKey(userID))

	tokenString, err := generateToken(userID, role)
	if err != nil {
		logger.ErrorLogger.Error("Error generating token", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	logger.AuditLogger.Info("Profile updated", zap.Int("user_id", userID))
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile updated successfully",
		"data": fiber.Map{
			"id":    userID,
			"name":  user.Name,
			"email": user.Email,
			"role":  role,
			"token": tokenString,
		},
	})
}
