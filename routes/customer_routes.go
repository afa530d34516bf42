package routes

import (
	"aftech-backend/config"
	"aftech-backend/controllers"
	"aftech-backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupCustomerRoutes(app *fiber.App, deps Dependencies, auth *middleware.AuthMiddlewareStruct) {
	api := app.Group(config.MAIN_ROUTES+"/customers", auth.AuthMiddleware)
	customerController := controllers.NewCustomerController(deps.DB, deps.ImportLocker)

	api.Get("/", customerController.GetAllCustomers)
	api.Post("/", customerController.CreateCustomer)
	api.Post("/import", auth.CheckRole(adminRoles...), customerController.ImportCustomers)
	api.Get("/export", auth.CheckRole(adminRoles...), customerController.ExportCustomers)
	api.Get("/:id", customerController.GetCustomerByID)
	api.Patch("/:id", customerController.UpdateCustomer)
	api.Delete("/:id", customerController.DeleteCustomer)
}
