package routes

import (
	"aftech-backend/config"
	"aftech-backend/controllers"
	"aftech-backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupTechnicianRoutes(app *fiber.App, deps Dependencies, auth *middleware.AuthMiddlewareStruct) {
	api := app.Group(config.MAIN_ROUTES+"/technicians", auth.AuthMiddleware)
	technicianController := controllers.NewTechnicianController(deps.DB)

	api.Get("/", technicianController.GetAllTechnicians)
	api.Post("/", technicianController.CreateTechnician)
	api.Get("/:id", technicianController.GetTechnicianByID)
	api.Patch("/:id", technicianController.UpdateTechnician)
	api.Delete("/:id", technicianController.DeleteTechnician)
}
