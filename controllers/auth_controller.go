package controllers

import (
	"aftech-backend/config"
	"aftech-backend/controllers/helpers"
	"aftech-backend/repositories"
	"aftech-backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuthController struct {
	DB    *gorm.DB
	users *services.UserService
}

func NewAuthController(DB *gorm.DB) *AuthController {
	return &AuthController{DB: DB, users: services.NewUserService(repositories.NewUserRepository(DB))}
}

// Login accepts a username or an email in the "username" or "email" field.
func (c *AuthController) Login(ctx *fiber.Ctx) error {
	var input struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request",
		})
	}
	login := input.Username
	if login == "" {
		login = input.Email
	}

	result, err := c.users.Login(login, input.Password, ctx.IP(), ctx.Get("User-Agent"))
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "Login", err)
	}

	ctx.Cookie(config.GetTokenCookie(result.RefreshToken))

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":       true,
		"message":       "Login successfully",
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
		"user": fiber.Map{
			"id":       result.User.ID,
			"email":    result.User.Email,
			"username": result.User.Username,
			"name":     result.User.Name,
		},
	})
}

// RefreshToken reads the refresh token from the cookie, falling back to
// the request body.
func (c *AuthController) RefreshToken(ctx *fiber.Ctx) error {
	tokenString := ctx.Cookies("refresh_token")
	if tokenString == "" {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		_ = ctx.BodyParser(&body)
		tokenString = body.RefreshToken
	}
	if tokenString == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Unauthorized - refresh token not found",
		})
	}

	access, err := c.users.Refresh(tokenString)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "RefreshToken", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":      true,
		"message":      "Token refreshed successfully",
		"access_token": access,
	})
}

func (c *AuthController) Logout(ctx *fiber.Ctx) error {
	sessionID, ok := ctx.Locals("sessionID").(string)
	if !ok || sessionID == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "invalid session",
		})
	}
	if err := c.users.Logout(sessionID); err != nil {
		return helpers.RespondError(ctx, "controllers", "Logout", err)
	}

	ctx.Cookie(config.GetTokenCookie(""))

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Logout successful",
	})
}

func (c *AuthController) IsLoggedIn(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "User is logged in",
	})
}
