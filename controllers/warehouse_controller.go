package controllers

import (
	"aftech-backend/controllers/helpers"
	"aftech-backend/services"
	"aftech-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// WarehouseController manages stock locations of every kind.
type WarehouseController struct {
	DB        *gorm.DB
	inventory *services.InventoryService
	deletes   *services.DeletionService
}

func NewWarehouseController(db *gorm.DB) *WarehouseController {
	return &WarehouseController{
		DB:        db,
		inventory: services.NewInventoryService(db),
		deletes:   services.NewDeletionService(db),
	}
}

func (c *WarehouseController) GetAllWarehouses(ctx *fiber.Ctx) error {
	regionID, err := utils.ParseOptionalID("region", ctx.Query("region"))
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "GetAllWarehouses", err)
	}
	locations, err := c.inventory.ListLocations(ctx.UserContext(), regionID)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "GetAllWarehouses", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Warehouses found", "data": locations})
}

func (c *WarehouseController) GetWarehouseByID(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx)
	if err != nil {
		return helpers.InvalidID(ctx)
	}
	location, err := c.inventory.GetLocation(ctx.UserContext(), id)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "GetWarehouseByID", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Warehouse found", "data": location})
}

func (c *WarehouseController) CreateWarehouse(ctx *fiber.Ctx) error {
	var input services.StockLocationInput
	if err := ctx.BodyParser(&input); err != nil {
		return helpers.BadBody(ctx, err)
	}
	location, err := c.inventory.SaveLocation(ctx.UserContext(), 0, input)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "CreateWarehouse", err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Warehouse created successfully", "data": location})
}

func (c *WarehouseController) UpdateWarehouse(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx)
	if err != nil {
		return helpers.InvalidID(ctx)
	}
	current, err := c.inventory.GetLocation(ctx.UserContext(), id)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "UpdateWarehouse", err)
	}
	input := services.StockLocationInput{
		Name:        current.Name,
		Region:      current.RegionID,
		Technician:  current.TechnicianID,
		Customer:    current.CustomerID,
		IsWarehouse: current.IsWarehouse,
	}
	if err := ctx.BodyParser(&input); err != nil {
		return helpers.BadBody(ctx, err)
	}
	location, err := c.inventory.SaveLocation(ctx.UserContext(), id, input)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "UpdateWarehouse", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Warehouse updated successfully", "data": location})
}

func (c *WarehouseController) DeleteWarehouse(ctx *fiber.Ctx) error {
	return DeleteWith("Warehouse", c.deletes.DeleteStockLocation)(ctx)
}
