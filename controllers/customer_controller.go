package controllers

import (
	"aftech-backend/controllers/helpers"
	"aftech-backend/services"
	"aftech-backend/utils"
	"bytes"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CustomerController struct {
	DB       *gorm.DB
	registry *services.RegistryService
	deletes  *services.DeletionService
	imports  *services.CustomerImportService
}

func NewCustomerController(db *gorm.DB, locker services.ImportLocker) *CustomerController {
	return &CustomerController{
		DB:       db,
		registry: services.NewRegistryService(db),
		deletes:  services.NewDeletionService(db),
		imports:  services.NewCustomerImportService(db, locker),
	}
}

func (c *CustomerController) GetAllCustomers(ctx *fiber.Ctx) error {
	regionID, err := utils.ParseOptionalID("region", ctx.Query("region"))
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "GetAllCustomers", err)
	}
	customers, err := c.registry.ListCustomers(ctx.UserContext(), regionID)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "GetAllCustomers", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Customers found", "data": customers})
}

func (c *CustomerController) GetCustomerByID(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx)
	if err != nil {
		return helpers.InvalidID(ctx)
	}
	customer, err := c.registry.GetCustomer(ctx.UserContext(), id)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "GetCustomerByID", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Customer found", "data": customer})
}

func (c *CustomerController) CreateCustomer(ctx *fiber.Ctx) error {
	var input services.CustomerInput
	if err := ctx.BodyParser(&input); err != nil {
		return helpers.BadBody(ctx, err)
	}
	customer, err := c.registry.SaveCustomer(ctx.UserContext(), 0, input, helpers.ActorID(ctx))
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "CreateCustomer", err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Customer created successfully", "data": customer})
}

// UpdateCustomer applies a partial body over the stored customer.
func (c *CustomerController) UpdateCustomer(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx)
	if err != nil {
		return helpers.InvalidID(ctx)
	}
	current, err := c.registry.GetCustomer(ctx.UserContext(), id)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "UpdateCustomer", err)
	}
	input := services.CustomerInput{Name: current.Name, Region: current.RegionID}
	if err := ctx.BodyParser(&input); err != nil {
		return helpers.BadBody(ctx, err)
	}
	customer, err := c.registry.SaveCustomer(ctx.UserContext(), id, input, helpers.ActorID(ctx))
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "UpdateCustomer", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Customer updated successfully", "data": customer})
}

func (c *CustomerController) DeleteCustomer(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx)
	if err != nil {
		return helpers.InvalidID(ctx)
	}
	if err := c.deletes.DeleteCustomer(ctx.UserContext(), id, helpers.ActorID(ctx)); err != nil {
		return helpers.RespondError(ctx, "controllers", "DeleteCustomer", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Customer deleted successfully"})
}

// ImportCustomers takes a multipart "file" holding an .xlsx sheet with id,
// name and region columns.
func (c *CustomerController) ImportCustomers(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "No file uploaded",
		})
	}
	if !strings.HasSuffix(strings.ToLower(file.Filename), ".xlsx") {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Only Excel files (.xlsx) are allowed",
		})
	}

	fileContent, err := file.Open()
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "ImportCustomers", err)
	}
	defer fileContent.Close()

	result, err := c.imports.ImportExcel(ctx.UserContext(), fileContent, helpers.ActorID(ctx))
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "ImportCustomers", err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Upload completed: %d created, %d updated, %d skipped, %d errors",
			result.CreatedCount, result.UpdatedCount, result.SkippedCount, result.ErrorCount),
		"data": result,
	})
}

func (c *CustomerController) ExportCustomers(ctx *fiber.Ctx) error {
	regionID, err := utils.ParseOptionalID("region", ctx.Query("region"))
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "ExportCustomers", err)
	}

	var buf bytes.Buffer
	if err := c.imports.Export(ctx.UserContext(), regionID, &buf); err != nil {
		return helpers.RespondError(ctx, "controllers", "ExportCustomers", err)
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="customers.xlsx"`)
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}
