package api

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fitsphere/coaching/pkg/internal/http/exts"
	"github.com/fitsphere/coaching/pkg/internal/models"
	"github.com/fitsphere/coaching/pkg/internal/services"
)

func register(c *fiber.Ctx) error {
	var data struct {
		FirstName string `json:"first_name" validate:"required"`
		LastName  string `json:"last_name" validate:"required"`
		Birthday  string `json:"birthday" validate:"required"`
		Email     string `json:"email" validate:"required,email"`
		Password  string `json:"password" validate:"required,min=4,max=96"`
		Role      string `json:"role"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	role := models.RoleUser
	if data.Role != "" {
		var ok bool
		if role, ok = models.ParseAccountRole(data.Role); !ok {
			return fiber.NewError(fiber.StatusBadRequest, "invalid role, must be USER or ADMIN")
		}
	}

	birthday, err := time.Parse("2006-01-02", data.Birthday)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid birthday format")
	}

	account, err := services.CreateAccount(models.Account{
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Birthday:  birthday,
		Email:     data.Email,
		Role:      role,
	}, data.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(account)
}

func login(c *fiber.Ctx) error {
	var data struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	account, err := services.AuthAccount(data.Email, data.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	token, err := services.EncodeAccessToken(account)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  account,
	})
}

func listAccounts(c *fiber.Ctx) error {
	if accounts, err := services.ListAccounts(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	} else {
		return c.JSON(accounts)
	}
}

func getUserinfo(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	if user.ID == 0 {
		return c.JSON(user)
	}

	account, err := services.GetAccount(user.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return c.JSON(account)
}
