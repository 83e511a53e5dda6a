package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/Yogabut/task-management/internal/config"
	"github.com/Yogabut/task-management/internal/models"
	"github.com/Yogabut/task-management/pkg/logger"
)

// UseToken resolves the request principal from the bearer token and
// stores it in locals. Every private route passes through here; handlers
// never read auth state from anywhere else.
func UseToken(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "No token provided"})
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token format"})
	}
	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return config.SecretKey, nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token claims"})
	}
	if exp, ok := claims["exp"].(float64); !ok || int64(exp) < time.Now().Unix() {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Token expired"})
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid user ID in token"})
	}
	role, ok := claims["role"].(string)
	if !ok || (role != models.RoleAdmin && role != models.RoleMember) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid role in token"})
	}
	c.Locals("userID", int(userID))
	c.Locals("role", role)
	return c.Next()
}

// AdminOnly gates route groups whose every operation is admin scoped.
// Must run after UseToken.
func AdminOnly(c *fiber.Ctx) error {
	role := c.Locals("role").(string)
	if role != models.RoleAdmin {
		logger.SecurityLogger.Warn("Admin-only route denied",
			zap.String("role", role),
			zap.String("url", c.OriginalURL()),
		)
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied. Admin only."})
	}
	return c.Next()
}
