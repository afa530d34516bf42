package routes

import (
	"aftech-backend/config"
	"aftech-backend/controllers"
	"aftech-backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupJobCardRoutes(app *fiber.App, deps Dependencies, auth *middleware.AuthMiddlewareStruct) {
	api := app.Group(config.MAIN_ROUTES+"/jobcards", auth.AuthMiddleware)
	jobCardController := controllers.NewJobCardController(deps.DB, deps.ReportCache, deps.Hooks...)

	api.Get("/", jobCardController.GetAllJobCards)
	api.Post("/", jobCardController.CreateJobCard)
	api.Get("/:id", jobCardController.GetJobCardByID)
	api.Patch("/:id", jobCardController.UpdateJobCard)
	api.Delete("/:id", jobCardController.DeleteJobCard)
}
