package routes

import (
	"aftech-backend/config"
	"aftech-backend/controllers"
	"aftech-backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupDashboardRoutes(app *fiber.App, deps Dependencies, auth *middleware.AuthMiddlewareStruct) {
	dashboardController := controllers.NewDashboardController(deps.DB, deps.ReportCache)

	stats := app.Group(config.MAIN_ROUTES+"/stats", auth.AuthMiddleware)
	stats.Get("/jobs-per-day", dashboardController.JobsPerDay)
	stats.Get("/jobs-per-type", dashboardController.JobsPerType)
	stats.Get("/top-technicians", dashboardController.TopTechnicians)

	// these sit at the API root, so the middleware goes on each route
	api := app.Group(config.MAIN_ROUTES)
	api.Get("/regions-with-jobcards", auth.AuthMiddleware, dashboardController.RegionsWithJobCards)
	api.Get("/customers-with-jobcards", auth.AuthMiddleware, dashboardController.CustomersWithJobCards)
	api.Get("/total-jobcards", auth.AuthMiddleware, dashboardController.TotalJobCards)
}
