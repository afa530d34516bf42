package routes

import (
	"aftech-backend/config"
	"aftech-backend/controllers"
	"aftech-backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupInventoryRoutes(app *fiber.App, deps Dependencies, auth *middleware.AuthMiddlewareStruct) {
	api := app.Group(config.MAIN_ROUTES+"/inventory", auth.AuthMiddleware)
	inventoryController := controllers.NewInventoryController(deps.DB)
	warehouseController := controllers.NewWarehouseController(deps.DB)
	stockTakeController := controllers.NewStockTakeController(deps.DB)

	api.Get("/itemtypes", inventoryController.GetItemTypes)
	api.Post("/itemtypes", inventoryController.CreateItemType)
	api.Delete("/itemtypes/:id", inventoryController.DeleteItemType)
	api.Get("/stock-statuses", inventoryController.GetStockStatuses)
	api.Post("/stock-statuses", inventoryController.CreateStockStatus)
	api.Delete("/stock-statuses/:id", inventoryController.DeleteStockStatus)

	api.Get("/warehouses", warehouseController.GetAllWarehouses)
	api.Post("/warehouses", warehouseController.CreateWarehouse)
	api.Get("/warehouses/:id", warehouseController.GetWarehouseByID)
	api.Patch("/warehouses/:id", warehouseController.UpdateWarehouse)
	api.Delete("/warehouses/:id", warehouseController.DeleteWarehouse)

	api.Get("/stock-take-overview", stockTakeController.GetAllStockTakes)
	api.Post("/stock-take-overview", stockTakeController.CreateStockTake)
	api.Get("/stock-take-overview/:id", stockTakeController.GetStockTakeByID)
	api.Get("/stock-take-overview/:id/progress", stockTakeController.GetProgressStockTake)
	api.Delete("/stock-take-overview/:id", stockTakeController.DeleteStockTake)
	api.Get("/stock-take-items", stockTakeController.GetStockTakeItems)
	api.Post("/stock-take-items", stockTakeController.CreateStockTakeItem)
	api.Get("/stock-take-items-serials", stockTakeController.GetStockTakeSerials)
	api.Post("/stock-take-items-serials", stockTakeController.CreateStockTakeSerial)
	api.Post("/stock-takes", stockTakeController.SubmitStockTake)
}
