package controllers

import (
	"aftech-backend/controllers/helpers"
	"aftech-backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type JobCardController struct {
	DB       *gorm.DB
	jobCards *services.JobCardService
}

func NewJobCardController(db *gorm.DB, cache services.ReportCache, hooks ...services.PostCreateHook) *JobCardController {
	return &JobCardController{DB: db, jobCards: services.NewJobCardService(db, cache, hooks...)}
}

func (c *JobCardController) GetAllJobCards(ctx *fiber.Ctx) error {
	f, err := parseJobCardFilter(ctx, jobCardListParams)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "GetAllJobCards", err)
	}
	jobCards, err := c.jobCards.List(ctx.UserContext(), f)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "GetAllJobCards", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "JobCards found", "data": jobCards})
}

func (c *JobCardController) GetJobCardByID(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx)
	if err != nil {
		return helpers.InvalidID(ctx)
	}
	jobCard, err := c.jobCards.Get(ctx.UserContext(), id)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "GetJobCardByID", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "JobCard found", "data": jobCard})
}

func (c *JobCardController) CreateJobCard(ctx *fiber.Ctx) error {
	var input services.JobCardInput
	if err := ctx.BodyParser(&input); err != nil {
		return helpers.BadBody(ctx, err)
	}
	jobCard, err := c.jobCards.Create(ctx.UserContext(), input, helpers.ActorID(ctx))
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "CreateJobCard", err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":   true,
		"message":   "JobCard created successfully.",
		"unique_id": jobCard.UniqueID,
		"data":      jobCard,
	})
}

func (c *JobCardController) UpdateJobCard(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx)
	if err != nil {
		return helpers.InvalidID(ctx)
	}
	var patch services.JobCardPatch
	if err := ctx.BodyParser(&patch); err != nil {
		return helpers.BadBody(ctx, err)
	}
	jobCard, err := c.jobCards.Update(ctx.UserContext(), id, patch, helpers.ActorID(ctx))
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "UpdateJobCard", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "JobCard updated successfully.", "data": jobCard})
}

func (c *JobCardController) DeleteJobCard(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx)
	if err != nil {
		return helpers.InvalidID(ctx)
	}
	if err := c.jobCards.Delete(ctx.UserContext(), id, helpers.ActorID(ctx)); err != nil {
		return helpers.RespondError(ctx, "controllers", "DeleteJobCard", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "JobCard deleted successfully."})
}
