package middleware

import (
	"aftech-backend/config"
	"aftech-backend/models"
	"aftech-backend/repositories"
	"aftech-backend/services"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuthMiddlewareStruct struct {
	DB    *gorm.DB
	users *services.UserService
}

func NewAuthMiddleware(db *gorm.DB) *AuthMiddlewareStruct {
	return &AuthMiddlewareStruct{
		DB:    db,
		users: services.NewUserService(repositories.NewUserRepository(db)),
	}
}

// AuthMiddleware accepts a bearer access token bound to a live session and
// stores userID (float64) and sessionID in Locals.
func (a *AuthMiddlewareStruct) AuthMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if authHeader == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Missing Authorization header",
		})
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Invalid Authorization header format",
		})
	}

	claims, err := services.ParseToken(tokenParts[1])
	if err != nil || claims.Type != services.TokenAccess {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Unauthorized: Invalid token",
		})
	}

	if _, err := a.users.ValidateSession(claims.SessionID); err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Unauthorized: Invalid sessionID",
		})
	}

	ctx.Locals("userID", float64(claims.UserID))
	ctx.Locals("sessionID", claims.SessionID)
	return ctx.Next()
}

// CheckRole lets the request through when the caller's profile role is one
// of roles.
func (a *AuthMiddlewareStruct) CheckRole(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userID").(float64)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Unauthorized: Invalid user ID",
			})
		}

		var profile models.UserProfile
		if err := a.DB.Where("user_id = ?", uint(userID)).First(&profile).Error; err != nil {
			config.LogWarn(config.GetLogger(), "middleware", "CheckRole", "no profile for user", userID)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "Forbidden: Profile not found",
			})
		}
		if !allowed[profile.Role] {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "Forbidden: You do not have permission",
			})
		}
		c.Locals("role", profile.Role)
		return c.Next()
	}
}
