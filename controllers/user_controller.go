package controllers

import (
	"aftech-backend/controllers/helpers"
	"aftech-backend/models"
	"aftech-backend/repositories"
	"aftech-backend/services"
	"aftech-backend/utils"
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserController struct {
	DB      *gorm.DB
	users   *services.UserService
	deletes *services.DeletionService
}

func NewUserController(DB *gorm.DB) *UserController {
	return &UserController{
		DB:      DB,
		users:   services.NewUserService(repositories.NewUserRepository(DB)),
		deletes: services.NewDeletionService(DB),
	}
}

func (c *UserController) CreateUser(ctx *fiber.Ctx) error {
	var input services.CreateUserInput
	if err := ctx.BodyParser(&input); err != nil {
		return helpers.BadBody(ctx, err)
	}
	user, err := c.users.CreateUser(input)
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "CreateUser", err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "User created successfully", "data": user})
}

func (c *UserController) GetAllUsers(ctx *fiber.Ctx) error {
	var users []models.User
	if err := c.DB.WithContext(ctx.UserContext()).Order("username").Find(&users).Error; err != nil {
		return helpers.RespondError(ctx, "controllers", "GetAllUsers", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Users found", "data": users})
}

func (c *UserController) GetUserByID(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx)
	if err != nil {
		return helpers.InvalidID(ctx)
	}
	var user models.User
	if err := c.DB.WithContext(ctx.UserContext()).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = utils.ErrNotFound
		}
		return helpers.RespondError(ctx, "controllers", "GetUserByID", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "User found", "data": user})
}

func (c *UserController) DeleteUser(ctx *fiber.Ctx) error {
	return DeleteWith("User", c.deletes.DeleteUser)(ctx)
}

// GetProfile returns the caller's role and regional scope.
func (c *UserController) GetProfile(ctx *fiber.Ctx) error {
	userID := helpers.ActorID(ctx)
	if userID == 0 {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}
	profile, err := c.users.Profile(uint(userID))
	if errors.Is(err, utils.ErrNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Profile not found"})
	}
	if err != nil {
		return helpers.RespondError(ctx, "controllers", "GetProfile", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Profile found", "data": profile})
}
