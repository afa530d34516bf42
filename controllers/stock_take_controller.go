package controllers

import (
	"aftech-backend/controllers/helpers"
	"aftech-backend/services"
	"aftech-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type StockTakeController struct {
	DB        *gorm.DB
	inventory *services.InventoryService
	deletes   *services.DeletionService
}

func NewStockTakeController(DB *gorm.DB) *StockTakeController {
	return &StockTakeController{
		DB:        DB,
		inventory: services.NewInventoryService(DB),
		deletes:   services.NewDeletionService(DB),
	}
}

func (c *StockTakeController) GetAllStockTakes(ctx *fiber.Ctx) error {
	userID, err := utils.ParseOptionalID("user", ctx.Query("user"))
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "GetAllStockTakes", err)
	}
	takes, err := c.inventory.ListStockTakes(ctx.UserContext(), userID)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "GetAllStockTakes", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Stock takes found", "data": takes})
}

func (c *StockTakeController) GetStockTakeByID(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx)
	if err != nil {
		return helpers.InvalidID(ctx)
	}
	take, err := c.inventory.GetStockTake(ctx.UserContext(), id)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "GetStockTakeByID", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Stock take found", "data": take})
}

func (c *StockTakeController) GetProgressStockTake(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx)
	if err != nil {
		return helpers.InvalidID(ctx)
	}
	progress, err := c.inventory.StockTakeProgress(ctx.UserContext(), id)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "GetProgressStockTake", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Stock take progress found", "data": progress})
}

// CreateStockTake records the caller as the counter unless a user is given.
func (c *StockTakeController) CreateStockTake(ctx *fiber.Ctx) error {
	var input services.StockTakeInput
	if err := ctx.BodyParser(&input); err != nil {
		return helpers.BadBody(ctx, err)
	}
	if input.User == 0 {
		input.User = uint(helpers.ActorID(ctx))
	}
	take, err := c.inventory.CreateStockTake(ctx.UserContext(), input)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "CreateStockTake", err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Stock take created successfully", "data": take})
}

func (c *StockTakeController) DeleteStockTake(ctx *fiber.Ctx) error {
	return DeleteWith("Stock take", c.deletes.DeleteStockTake)(ctx)
}

func (c *StockTakeController) GetStockTakeItems(ctx *fiber.Ctx) error {
	stockTakeID, err := utils.ParseOptionalID("id", ctx.Query("id"))
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "GetStockTakeItems", err)
	}
	items, err := c.inventory.ListItems(ctx.UserContext(), stockTakeID)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "GetStockTakeItems", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Stock take items found", "data": items})
}

func (c *StockTakeController) CreateStockTakeItem(ctx *fiber.Ctx) error {
	var input services.StockTakeItemInput
	if err := ctx.BodyParser(&input); err != nil {
		return helpers.BadBody(ctx, err)
	}
	item, err := c.inventory.CreateItem(ctx.UserContext(), input)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "CreateStockTakeItem", err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Stock take item created successfully", "data": item})
}

func (c *StockTakeController) GetStockTakeSerials(ctx *fiber.Ctx) error {
	itemID, err := utils.ParseOptionalID("item", ctx.Query("item"))
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "GetStockTakeSerials", err)
	}
	serials, err := c.inventory.ListSerials(ctx.UserContext(), itemID)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "GetStockTakeSerials", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Serials found", "data": serials})
}

func (c *StockTakeController) CreateStockTakeSerial(ctx *fiber.Ctx) error {
	var input services.StockTakeSerialInput
	if err := ctx.BodyParser(&input); err != nil {
		return helpers.BadBody(ctx, err)
	}
	serial, err := c.inventory.CreateSerial(ctx.UserContext(), input)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "CreateStockTakeSerial", err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Serial created successfully", "data": serial})
}

// SubmitStockTake stores a complete count in one request.
func (c *StockTakeController) SubmitStockTake(ctx *fiber.Ctx) error {
	var input services.StockTakeSubmission
	if err := ctx.BodyParser(&input); err != nil {
		return helpers.BadBody(ctx, err)
	}
	if input.User == 0 {
		input.User = uint(helpers.ActorID(ctx))
	}
	take, err := c.inventory.Submit(ctx.UserContext(), input)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "SubmitStockTake", err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Stock take submitted successfully", "data": take})
}
