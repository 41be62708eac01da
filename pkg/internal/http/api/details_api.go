package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/fitsphere/coaching/pkg/internal/http/exts"
	"github.com/fitsphere/coaching/pkg/internal/models"
	"github.com/fitsphere/coaching/pkg/internal/services"
)

func createUserDetails(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	var data struct {
		AccountID        uint           `json:"account_id" validate:"required"`
		Age              int            `json:"age" validate:"required,min=1"`
		Height           float64        `json:"height" validate:"required,gt=0"`
		Weight           float64        `json:"weight" validate:"required,gt=0"`
		DaysPerWeek      int            `json:"days_per_week" validate:"required,min=1,max=7"`
		Gender           string         `json:"gender" validate:"required"`
		FitnessLevel     string         `json:"fitness_level" validate:"required"`
		Goal             string         `json:"goal" validate:"required"`
		MedicalCondition string         `json:"medical_condition"`
		Extras           map[string]any `json:"extras"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}
	if !services.CanManage(user, data.AccountID) {
		return fiber.NewError(fiber.StatusForbidden, "unauthorized to create details for this account")
	}

	var details models.UserDetails
	models.FitStruct(data, &details)

	details, err := services.NewUserDetails(details)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(details)
}

func listAllUserDetails(c *fiber.Ctx) error {
	if details, err := services.ListAllUserDetails(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	} else {
		return c.JSON(details)
	}
}

func listUserDetails(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	accountID, err := c.ParamsInt("accountId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid account id")
	}
	if !services.CanManage(user, uint(accountID)) {
		return fiber.NewError(fiber.StatusForbidden, "unauthorized to view these details")
	}

	if details, err := services.ListUserDetailsForAccount(uint(accountID)); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	} else {
		return c.JSON(details)
	}
}

func getCurrentUserDetails(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	accountID, err := c.ParamsInt("accountId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid account id")
	}
	if !services.CanManage(user, uint(accountID)) {
		return fiber.NewError(fiber.StatusForbidden, "unauthorized to view these details")
	}

	details, err := services.GetCurrentUserDetails(uint(accountID))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "no details recorded for this account")
	} else if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(details)
}

func editUserDetails(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	id, err := c.ParamsInt("detailsId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid details id")
	}

	details, err := services.GetUserDetails(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "user details not found")
	} else if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if !services.CanManage(user, details.AccountID) {
		return fiber.NewError(fiber.StatusForbidden, "unauthorized to update these details")
	}

	var data struct {
		Age              int            `json:"age"`
		Height           float64        `json:"height"`
		Weight           float64        `json:"weight"`
		DaysPerWeek      int            `json:"days_per_week" validate:"omitempty,min=1,max=7"`
		Gender           string         `json:"gender"`
		FitnessLevel     string         `json:"fitness_level"`
		Goal             string         `json:"goal"`
		MedicalCondition string         `json:"medical_condition"`
		Extras           map[string]any `json:"extras"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if data.Age > 0 {
		details.Age = data.Age
	}
	if data.Height > 0 {
		details.Height = data.Height
	}
	if data.Weight > 0 {
		details.Weight = data.Weight
	}
	if data.DaysPerWeek > 0 {
		details.DaysPerWeek = data.DaysPerWeek
	}
	if data.Gender != "" {
		details.Gender = data.Gender
	}
	if data.FitnessLevel != "" {
		details.FitnessLevel = data.FitnessLevel
	}
	if data.Goal != "" {
		details.Goal = data.Goal
	}
	if data.MedicalCondition != "" {
		details.MedicalCondition = data.MedicalCondition
	}
	if data.Extras != nil {
		details.Extras = data.Extras
	}

	if details, err = services.EditUserDetails(details); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(details)
}

func deleteUserDetails(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	id, err := c.ParamsInt("detailsId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid details id")
	}

	details, err := services.GetUserDetails(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "user details not found")
	} else if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if !services.CanManage(user, details.AccountID) {
		return fiber.NewError(fiber.StatusForbidden, "unauthorized to delete these details")
	}

	if err := services.DeleteUserDetails(details); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusOK)
}
