package routes

import (
	"aftech-backend/config"
	"aftech-backend/controllers"
	"aftech-backend/middleware"
	"aftech-backend/models"
	"aftech-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupLookupRoutes(app *fiber.App, deps Dependencies, auth *middleware.AuthMiddlewareStruct) {
	db := deps.DB
	deletes := services.NewDeletionService(db)

	regions := app.Group(config.MAIN_ROUTES+"/regions", auth.AuthMiddleware)
	regions.Get("/", controllers.ListNamed[models.Region](db, "Regions"))
	regions.Post("/", controllers.CreateNamed(db, "Region", func(name string) *models.Region { return &models.Region{Name: name} }))
	regions.Get("/:id", controllers.GetNamed[models.Region](db, "Region"))
	regions.Patch("/:id", controllers.UpdateNamed[models.Region](db, "Region"))
	regions.Delete("/:id", controllers.DeleteWith("Region", deletes.DeleteRegion))

	agents := app.Group(config.MAIN_ROUTES+"/support-agents", auth.AuthMiddleware)
	agents.Get("/", controllers.ListNamed[models.SupportAgent](db, "Support agents"))
	agents.Post("/", controllers.CreateNamed(db, "Support agent", func(name string) *models.SupportAgent { return &models.SupportAgent{Name: name} }))
	agents.Get("/:id", controllers.GetNamed[models.SupportAgent](db, "Support agent"))
	agents.Patch("/:id", controllers.UpdateNamed[models.SupportAgent](db, "Support agent"))
	agents.Delete("/:id", controllers.DeleteWith("Support agent", deletes.DeleteSupportAgent))

	accessories := app.Group(config.MAIN_ROUTES+"/accessories", auth.AuthMiddleware)
	accessories.Get("/", controllers.ListNamed[models.Accessory](db, "Accessories"))
	accessories.Post("/", controllers.CreateNamed(db, "Accessory", func(name string) *models.Accessory { return &models.Accessory{Name: name} }))
	accessories.Get("/:id", controllers.GetNamed[models.Accessory](db, "Accessory"))
	accessories.Patch("/:id", controllers.UpdateNamed[models.Accessory](db, "Accessory"))
	accessories.Delete("/:id", controllers.DeleteWith("Accessory", deletes.DeleteAccessory))

	jobTypes := app.Group(config.MAIN_ROUTES+"/job-types", auth.AuthMiddleware)
	jobTypes.Get("/", controllers.ListNamed[models.JobType](db, "Job types"))
	jobTypes.Post("/", controllers.CreateNamed(db, "Job type", func(name string) *models.JobType { return &models.JobType{Name: name} }))
	jobTypes.Get("/:id", controllers.GetNamed[models.JobType](db, "Job type"))
	jobTypes.Patch("/:id", controllers.UpdateNamed[models.JobType](db, "Job type"))
	jobTypes.Delete("/:id", controllers.DeleteWith("Job type", deletes.DeleteJobType))
}
