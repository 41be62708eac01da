package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/fitsphere/coaching/pkg/internal/http/exts"
	"github.com/fitsphere/coaching/pkg/internal/models"
	"github.com/fitsphere/coaching/pkg/internal/services"
)

type exercisePlanRequest struct {
	AccountID uint   `json:"account_id" validate:"required"`
	Day       int    `json:"day" validate:"required,min=1,max=7"`
	Name      string `json:"name" validate:"required"`
	Sets      int    `json:"sets" validate:"min=0"`
	Reps      int    `json:"reps" validate:"min=0"`
	Duration  int    `json:"duration" validate:"min=0"`
}

func createExercisePlan(c *fiber.Ctx) error {
	var data exercisePlanRequest
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	plan, err := services.NewExercisePlan(models.ExercisePlan{
		AccountID: data.AccountID,
		Day:       data.Day,
		Name:      data.Name,
		Sets:      data.Sets,
		Reps:      data.Reps,
		Duration:  data.Duration,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(plan)
}

func createExercisePlanBatch(c *fiber.Ctx) error {
	var data struct {
		Plans []exercisePlanRequest `json:"plans" validate:"required,min=1,dive"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	plans, err := services.NewExercisePlanBatch(lo.Map(data.Plans, func(item exercisePlanRequest, idx int) models.ExercisePlan {
		return models.ExercisePlan{
			AccountID: item.AccountID,
			Day:       item.Day,
			Name:      item.Name,
			Sets:      item.Sets,
			Reps:      item.Reps,
			Duration:  item.Duration,
		}
	}))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(plans)
}

func listAllExercisePlans(c *fiber.Ctx) error {
	if plans, err := services.ListAllExercisePlans(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	} else {
		return c.JSON(plans)
	}
}

func listExercisePlans(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	accountID, err := c.ParamsInt("accountId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid account id")
	}
	if !services.CanManage(user, uint(accountID)) {
		return fiber.NewError(fiber.StatusForbidden, "unauthorized to view these plans")
	}

	if plans, err := services.ListExercisePlansForAccount(uint(accountID)); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	} else {
		return c.JSON(plans)
	}
}

func editExercisePlan(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	id, err := c.ParamsInt("planId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid plan id")
	}

	plan, err := services.GetExercisePlan(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "exercise plan not found")
	} else if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if !services.CanManage(user, plan.AccountID) {
		return fiber.NewError(fiber.StatusForbidden, "unauthorized to update this plan")
	}

	var data struct {
		Day      int    `json:"day" validate:"omitempty,min=1,max=7"`
		Name     string `json:"name"`
		Sets     int    `json:"sets"`
		Reps     int    `json:"reps"`
		Duration int    `json:"duration"`
		Status   string `json:"status"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if data.Day > 0 {
		plan.Day = data.Day
	}
	if data.Name != "" {
		plan.Name = data.Name
	}
	if data.Sets > 0 {
		plan.Sets = data.Sets
	}
	if data.Reps > 0 {
		plan.Reps = data.Reps
	}
	if data.Duration > 0 {
		plan.Duration = data.Duration
	}
	if data.Status != "" {
		plan.Status = data.Status
	}

	if plan, err = services.EditExercisePlan(plan); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(plan)
}

// deleteExercisePlansForAccount wipes a client's whole assignment in one
// call, used when a trainer rebuilds the weekly program from scratch.
func deleteExercisePlansForAccount(c *fiber.Ctx) error {
	accountID, err := c.ParamsInt("accountId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid account id")
	}

	count, err := services.DeleteExercisePlansForAccount(uint(accountID))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{"deleted": count})
}

func deleteExercisePlan(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	id, err := c.ParamsInt("planId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid plan id")
	}

	plan, err := services.GetExercisePlan(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "exercise plan not found")
	} else if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if !services.CanManage(user, plan.AccountID) {
		return fiber.NewError(fiber.StatusForbidden, "unauthorized to delete this plan")
	}

	if err := services.DeleteExercisePlan(plan); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusOK)
}
