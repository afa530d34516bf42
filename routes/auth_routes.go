package routes

import (
	"aftech-backend/config"
	"aftech-backend/controllers"
	"aftech-backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, deps Dependencies, auth *middleware.AuthMiddlewareStruct) {
	authController := controllers.NewAuthController(deps.DB)

	api := app.Group(config.MAIN_ROUTES + "/auth")
	api.Post("/login", authController.Login)
	api.Post("/refresh", authController.RefreshToken)
	api.Get("/logout", auth.AuthMiddleware, authController.Logout)
	api.Get("/is-logged-in", auth.AuthMiddleware, authController.IsLoggedIn)
}
