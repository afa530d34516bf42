package controllers

import (
	"aftech-backend/controllers/helpers"
	"aftech-backend/models"
	"aftech-backend/utils"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const historyLimit = 500

type HistoryController struct {
	DB *gorm.DB
}

func NewHistoryController(db *gorm.DB) *HistoryController {
	return &HistoryController{DB: db}
}

// GetHistory lists the newest entries first, optionally for one entity.
func (c *HistoryController) GetHistory(ctx *fiber.Ctx) error {
	entityID, err := utils.ParseOptionalID("entity_id", ctx.Query("entity_id"))
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "GetHistory", err)
	}

	q := c.DB.WithContext(ctx.UserContext()).Order("created_at DESC, id DESC").Limit(historyLimit)
	if entity := strings.TrimSpace(ctx.Query("entity")); entity != "" {
		q = q.Where("entity = ?", entity)
	}
	if entityID != nil {
		q = q.Where("entity_id = ?", *entityID)
	}

	var entries []models.ChangeHistory
	if err := q.Find(&entries).Error; err != nil {
		return helpers.RespondError(ctx, "controllers", "GetHistory", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "History found", "data": entries})
}
