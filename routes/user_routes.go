package routes

import (
	"aftech-backend/config"
	"aftech-backend/controllers"
	"aftech-backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App, deps Dependencies, auth *middleware.AuthMiddlewareStruct) {
	userController := controllers.NewUserController(deps.DB)
	historyController := controllers.NewHistoryController(deps.DB)

	core := app.Group(config.MAIN_ROUTES+"/core", auth.AuthMiddleware)
	core.Get("/user-profile/me", userController.GetProfile)

	users := app.Group(config.MAIN_ROUTES+"/users", auth.AuthMiddleware, auth.CheckRole(adminRoles...))
	users.Get("/", userController.GetAllUsers)
	users.Post("/", userController.CreateUser)
	users.Get("/:id", userController.GetUserByID)
	users.Delete("/:id", userController.DeleteUser)

	history := app.Group(config.MAIN_ROUTES+"/history", auth.AuthMiddleware, auth.CheckRole(adminRoles...))
	history.Get("/", historyController.GetHistory)
}
