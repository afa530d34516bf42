package controllers

import (
	"aftech-backend/controllers/helpers"
	"aftech-backend/utils"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// NameInput is the body for the name-only lookups: regions, support
// agents, accessories and job types.
type NameInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

func parseName(ctx *fiber.Ctx) (string, error) {
	var input NameInput
	if err := ctx.BodyParser(&input); err != nil {
		return "", err
	}
	input.Name = strings.TrimSpace(input.Name)
	if err := utils.ValidateStruct(input); err != nil {
		return "", err
	}
	return input.Name, nil
}

func ListNamed[T any](db *gorm.DB, label string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		var out []T
		if err := db.WithContext(ctx.UserContext()).Order("name").Find(&out).Error; err != nil {
			return helpers.RespondError(ctx, "controllers", "ListNamed", err)
		}
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": label + " found", "data": out})
	}
}

func GetNamed[T any](db *gorm.DB, label string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, err := helpers.ParamID(ctx)
		if err != nil {
			return helpers.InvalidID(ctx)
		}
		record := new(T)
		if err := db.WithContext(ctx.UserContext()).First(record, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				err = utils.ErrNotFound
			}
			return helpers.RespondError(ctx, "controllers", "GetNamed", err)
		}
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": label + " found", "data": record})
	}
}

// CreateNamed builds the record from the validated name.
func CreateNamed[T any](db *gorm.DB, label string, build func(name string) *T) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		name, err := parseName(ctx)
		if err != nil {
			var ve *utils.ValidationError
			if errors.As(err, &ve) {
				return helpers.RespondError(ctx, "controllers", "CreateNamed", err)
			}
			return helpers.BadBody(ctx, err)
		}
		record := build(name)
		if err := db.WithContext(ctx.UserContext()).Create(record).Error; err != nil {
			return helpers.RespondError(ctx, "controllers", "CreateNamed", err)
		}
		return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": fmt.Sprintf("%s created successfully", label), "data": record})
	}
}

func UpdateNamed[T any](db *gorm.DB, label string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, err := helpers.ParamID(ctx)
		if err != nil {
			return helpers.InvalidID(ctx)
		}
		name, err := parseName(ctx)
		if err != nil {
			var ve *utils.ValidationError
			if errors.As(err, &ve) {
				return helpers.RespondError(ctx, "controllers", "UpdateNamed", err)
			}
			return helpers.BadBody(ctx, err)
		}

		record := new(T)
		err = db.WithContext(ctx.UserContext()).Transaction(func(tx *gorm.DB) error {
			if err := tx.First(record, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return utils.ErrNotFound
				}
				return err
			}
			if err := tx.Model(record).Update("name", name).Error; err != nil {
				return err
			}
			return tx.First(record, id).Error
		})
		if err != nil {
			return helpers.RespondError(ctx, "controllers", "UpdateNamed", err)
		}
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": fmt.Sprintf("%s updated successfully", label), "data": record})
	}
}

// DeleteWith runs a delete rule for the :id parameter.
func DeleteWith(label string, del func(ctx context.Context, id uint) error) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, err := helpers.ParamID(ctx)
		if err != nil {
			return helpers.InvalidID(ctx)
		}
		if err := del(ctx.UserContext(), id); err != nil {
			return helpers.RespondError(ctx, "controllers", "DeleteWith", err)
		}
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": fmt.Sprintf("%s deleted successfully", label)})
	}
}
