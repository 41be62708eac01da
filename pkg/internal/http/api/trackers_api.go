package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/fitsphere/coaching/pkg/internal/http/exts"
	"github.com/fitsphere/coaching/pkg/internal/models"
	"github.com/fitsphere/coaching/pkg/internal/services"
)

func createDayTracker(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	var data struct {
		AccountID      uint `json:"account_id" validate:"required"`
		ExercisePlanID uint `json:"exercise_plan_id" validate:"required"`
		DayInWeek      int  `json:"day_in_week" validate:"required,min=1,max=7"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}
	if !services.CanManage(user, data.AccountID) {
		return fiber.NewError(fiber.StatusForbidden, "unauthorized to create trackers for this account")
	}

	tracker, err := services.NewDayTracker(models.DayTracker{
		AccountID:      data.AccountID,
		ExercisePlanID: data.ExercisePlanID,
		DayInWeek:      data.DayInWeek,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(tracker)
}

func listDayTrackers(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	accountID, err := c.ParamsInt("accountId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid account id")
	}
	if !services.CanManage(user, uint(accountID)) {
		return fiber.NewError(fiber.StatusForbidden, "unauthorized to view these trackers")
	}

	if trackers, err := services.ListDayTrackersForAccount(uint(accountID)); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	} else {
		return c.JSON(trackers)
	}
}

func getWeeklyView(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	accountID, err := c.ParamsInt("accountId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid account id")
	}
	if !services.CanManage(user, uint(accountID)) {
		return fiber.NewError(fiber.StatusForbidden, "unauthorized to view this week")
	}

	view, weekStart, err := services.WeeklyViewForAccount(uint(accountID))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"week_start": weekStart,
		"days":       view,
	})
}

func markExerciseComplete(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	var data struct {
		AccountID      uint `json:"account_id" validate:"required"`
		ExercisePlanID uint `json:"exercise_plan_id" validate:"required"`
		Day            int  `json:"day" validate:"required,min=1,max=7"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}
	if !services.CanManage(user, data.AccountID) {
		return fiber.NewError(fiber.StatusForbidden, "unauthorized to track for this account")
	}

	tracking, err := services.MarkExerciseComplete(data.AccountID, data.ExercisePlanID, data.Day)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(tracking)
}

func deleteDayTracker(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	id, err := c.ParamsInt("trackerId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid tracker id")
	}

	tracker, err := services.GetDayTracker(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "day tracker not found")
	} else if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if !services.CanManage(user, tracker.AccountID) {
		return fiber.NewError(fiber.StatusForbidden, "unauthorized to delete this tracker")
	}

	if err := services.DeleteDayTracker(tracker); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusOK)
}
