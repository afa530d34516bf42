package routes

import (
	"aftech-backend/middleware"
	"aftech-backend/models"
	"aftech-backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Dependencies are shared by every route group.
type Dependencies struct {
	DB           *gorm.DB
	ReportCache  services.ReportCache
	ImportLocker services.ImportLocker
	Hooks        []services.PostCreateHook
}

var adminRoles = []string{models.RoleSuperAdmin, models.RoleAdmin}

// SetupRoutes mounts the whole API under MAIN_ROUTES.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	if deps.ReportCache == nil {
		deps.ReportCache = services.NopReportCache{}
	}
	if deps.ImportLocker == nil {
		deps.ImportLocker = services.NewLocalImportLocker()
	}
	auth := middleware.NewAuthMiddleware(deps.DB)

	SetupAuthRoutes(app, deps, auth)
	SetupLookupRoutes(app, deps, auth)
	SetupTechnicianRoutes(app, deps, auth)
	SetupCustomerRoutes(app, deps, auth)
	SetupJobCardRoutes(app, deps, auth)
	SetupDashboardRoutes(app, deps, auth)
	SetupInventoryRoutes(app, deps, auth)
	SetupUserRoutes(app, deps, auth)
}
