package controllers

import (
	"aftech-backend/controllers/helpers"
	"aftech-backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type InventoryController struct {
	DB        *gorm.DB
	inventory *services.InventoryService
	deletes   *services.DeletionService
}

func NewInventoryController(db *gorm.DB) *InventoryController {
	return &InventoryController{
		DB:        db,
		inventory: services.NewInventoryService(db),
		deletes:   services.NewDeletionService(db),
	}
}

func (c *InventoryController) GetItemTypes(ctx *fiber.Ctx) error {
	items, err := c.inventory.ListItemTypes(ctx.UserContext())
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "GetItemTypes", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Item types found", "data": items})
}

func (c *InventoryController) CreateItemType(ctx *fiber.Ctx) error {
	var input services.ItemTypeInput
	if err := ctx.BodyParser(&input); err != nil {
		return helpers.BadBody(ctx, err)
	}
	item, err := c.inventory.CreateItemType(ctx.UserContext(), input)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "CreateItemType", err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Item type created successfully", "data": item})
}

func (c *InventoryController) DeleteItemType(ctx *fiber.Ctx) error {
	return DeleteWith("Item type", c.deletes.DeleteItemType)(ctx)
}

func (c *InventoryController) GetStockStatuses(ctx *fiber.Ctx) error {
	statuses, err := c.inventory.ListStockStatuses(ctx.UserContext())
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "GetStockStatuses", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Stock statuses found", "data": statuses})
}

func (c *InventoryController) CreateStockStatus(ctx *fiber.Ctx) error {
	var input services.StockStatusInput
	if err := ctx.BodyParser(&input); err != nil {
		return helpers.BadBody(ctx, err)
	}
	status, err := c.inventory.CreateStockStatus(ctx.UserContext(), input)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "CreateStockStatus", err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Stock status created successfully", "data": status})
}

func (c *InventoryController) DeleteStockStatus(ctx *fiber.Ctx) error {
	return DeleteWith("Stock status", c.deletes.DeleteStockStatus)(ctx)
}
