package controllers

import (
	"aftech-backend/controllers/helpers"
	"aftech-backend/services"
	"aftech-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TechnicianController struct {
	DB       *gorm.DB
	registry *services.RegistryService
	deletes  *services.DeletionService
}

func NewTechnicianController(db *gorm.DB) *TechnicianController {
	return &TechnicianController{
		DB:       db,
		registry: services.NewRegistryService(db),
		deletes:  services.NewDeletionService(db),
	}
}

func (c *TechnicianController) GetAllTechnicians(ctx *fiber.Ctx) error {
	regionID, err := utils.ParseOptionalID("region", ctx.Query("region"))
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "GetAllTechnicians", err)
	}
	technicians, err := c.registry.ListTechnicians(ctx.UserContext(), regionID)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "GetAllTechnicians", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Technicians found", "data": technicians})
}

func (c *TechnicianController) GetTechnicianByID(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx)
	if err != nil {
		return helpers.InvalidID(ctx)
	}
	technician, err := c.registry.GetTechnician(ctx.UserContext(), id)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "GetTechnicianByID", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Technician found", "data": technician})
}

func (c *TechnicianController) CreateTechnician(ctx *fiber.Ctx) error {
	var input services.TechnicianInput
	if err := ctx.BodyParser(&input); err != nil {
		return helpers.BadBody(ctx, err)
	}
	technician, err := c.registry.SaveTechnician(ctx.UserContext(), 0, input, helpers.ActorID(ctx))
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "CreateTechnician", err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Technician created successfully", "data": technician})
}

func (c *TechnicianController) UpdateTechnician(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx)
	if err != nil {
		return helpers.InvalidID(ctx)
	}
	current, err := c.registry.GetTechnician(ctx.UserContext(), id)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "UpdateTechnician", err)
	}
	input := services.TechnicianInput{Name: current.Name, Initials: current.Initials, Region: current.RegionID}
	if err := ctx.BodyParser(&input); err != nil {
		return helpers.BadBody(ctx, err)
	}
	technician, err := c.registry.SaveTechnician(ctx.UserContext(), id, input, helpers.ActorID(ctx))
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "UpdateTechnician", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Technician updated successfully", "data": technician})
}

func (c *TechnicianController) DeleteTechnician(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx)
	if err != nil {
		return helpers.InvalidID(ctx)
	}
	if err := c.deletes.DeleteTechnician(ctx.UserContext(), id, helpers.ActorID(ctx)); err != nil {
		return helpers.RespondError(ctx, "controllers", "DeleteTechnician", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Technician deleted successfully"})
}
