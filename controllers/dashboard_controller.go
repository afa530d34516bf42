package controllers

import (
	"aftech-backend/controllers/helpers"
	"aftech-backend/services"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DashboardController serves the job card reports.
type DashboardController struct {
	DB      *gorm.DB
	reports *services.ReportService
}

func NewDashboardController(db *gorm.DB, cache services.ReportCache) *DashboardController {
	return &DashboardController{DB: db, reports: services.NewReportService(db, cache)}
}

func (c *DashboardController) JobsPerDay(ctx *fiber.Ctx) error {
	f, err := parseJobCardFilter(ctx, reportParams)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "JobsPerDay", err)
	}
	data, err := c.reports.JobsPerDay(ctx.UserContext(), f)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "JobsPerDay", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Jobs per day found", "data": data})
}

func (c *DashboardController) JobsPerType(ctx *fiber.Ctx) error {
	f, err := parseJobCardFilter(ctx, reportParams)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "JobsPerType", err)
	}
	data, err := c.reports.JobsPerType(ctx.UserContext(), f)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "JobsPerType", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Jobs per type found", "data": data})
}

func (c *DashboardController) TopTechnicians(ctx *fiber.Ctx) error {
	f, err := parseJobCardFilter(ctx, reportParams)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "TopTechnicians", err)
	}
	limit := services.DefaultTopTechnicians
	if raw := ctx.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Validation failed",
				"errors":  fiber.Map{"limit": "A valid positive integer is required."},
			})
		}
		limit = v
	}
	data, err := c.reports.TopTechnicians(ctx.UserContext(), f, limit)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "TopTechnicians", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Top technicians found", "data": data})
}

func (c *DashboardController) RegionsWithJobCards(ctx *fiber.Ctx) error {
	f, err := parseJobCardFilter(ctx, reportParams)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "RegionsWithJobCards", err)
	}
	data, err := c.reports.RegionsWithJobCards(ctx.UserContext(), f)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "RegionsWithJobCards", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Regions found", "data": data})
}

func (c *DashboardController) CustomersWithJobCards(ctx *fiber.Ctx) error {
	f, err := parseJobCardFilter(ctx, reportParams)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "CustomersWithJobCards", err)
	}
	data, err := c.reports.CustomersWithJobCards(ctx.UserContext(), f)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "CustomersWithJobCards", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Customers found", "data": data})
}

func (c *DashboardController) TotalJobCards(ctx *fiber.Ctx) error {
	f, err := parseJobCardFilter(ctx, reportParams)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "TotalJobCards", err)
	}
	count, err := c.reports.TotalJobCards(ctx.UserContext(), f)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "TotalJobCards", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Total job cards", "data": fiber.Map{"count": count}})
}
