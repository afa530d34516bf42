package helpers

import (
	"aftech-backend/config"
	"aftech-backend/utils"
	"errors"

	"github.com/gofiber/fiber/v2"
)

// RespondError maps service errors onto the response envelope. Anything
// unrecognised is logged and returned as 500.
func RespondError(ctx *fiber.Ctx, module, funcName string, err error) error {
	var ve *utils.ValidationError
	var pe *utils.ProtectedError
	switch {
	case errors.As(err, &ve):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"errors":  ve.Fields,
		})
	case errors.Is(err, utils.ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Not found."})
	case errors.As(err, &pe):
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": pe.Error(),
			"data":    pe.References,
		})
	case errors.Is(err, utils.ErrConflict), errors.Is(err, utils.ErrImportInProgress):
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": err.Error()})
	case errors.Is(err, utils.ErrInvalidCredentials):
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": err.Error()})
	case errors.Is(err, utils.ErrUnauthorized):
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	case errors.Is(err, utils.ErrCounterContention):
		config.LogWarn(config.GetLogger(), module, funcName, "job card counter", nil)
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success": false,
			"message": "Job card numbers are busy, please retry.",
		})
	case errors.Is(err, utils.ErrCounterNotInitialized), errors.Is(err, utils.ErrCounterMisconfigured):
		config.LogError(config.GetLogger(), module, funcName, "job card counter", nil, err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": utils.ErrCounterNotInitialized.Error(),
		})
	}

	config.LogError(config.GetLogger(), module, funcName, ctx.Path(), nil, err)
	return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
}

// ParamID reads the :id route parameter.
func ParamID(ctx *fiber.Ctx) (uint, error) {
	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, errors.New("Invalid ID")
	}
	return uint(id), nil
}

func InvalidID(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid ID"})
}

// ActorID is the authenticated user id, 0 when unauthenticated.
func ActorID(ctx *fiber.Ctx) int {
	if v, ok := ctx.Locals("userID").(float64); ok {
		return int(v)
	}
	return 0
}

// BadBody answers a body that could not be parsed.
func BadBody(ctx *fiber.Ctx, err error) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid request body", "error": err.Error()})
}
