package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/fitsphere/coaching/pkg/internal/http/exts"
	"github.com/fitsphere/coaching/pkg/internal/models"
	"github.com/fitsphere/coaching/pkg/internal/services"
)

func meetingFromParams(c *fiber.Ctx) (models.Meeting, error) {
	id, err := c.ParamsInt("meetingId")
	if err != nil {
		return models.Meeting{}, fiber.NewError(fiber.StatusBadRequest, "invalid meeting id")
	}

	meeting, err := services.GetMeeting(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return meeting, fiber.NewError(fiber.StatusNotFound, "meeting not found")
	} else if err != nil {
		return meeting, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return meeting, nil
}

func mapScheduleError(err error) error {
	var conflict services.ScheduleConflictError
	if errors.As(err, &conflict) {
		return fiber.NewError(fiber.StatusConflict, conflict.Error())
	}
	return fiber.NewError(fiber.StatusBadRequest, err.Error())
}

func createMeeting(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	var data struct {
		Title       string         `json:"title" validate:"required"`
		Description string         `json:"description"`
		Date        string         `json:"date" validate:"required"`
		StartTime   string         `json:"start_time" validate:"required"`
		EndTime     string         `json:"end_time" validate:"required"`
		Metadata    map[string]any `json:"metadata"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	meeting, err := services.NewMeeting(models.Meeting{
		Title:       data.Title,
		Description: data.Description,
		Date:        data.Date,
		StartTime:   data.StartTime,
		EndTime:     data.EndTime,
		Metadata:    data.Metadata,
		AccountID:   user.ID,
	})
	if err != nil {
		return mapScheduleError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(meeting)
}

func listOwnedMeetings(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	if meetings, err := services.ListMeetingsForAccount(user.ID); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	} else {
		return c.JSON(meetings)
	}
}

func listAllMeetings(c *fiber.Ctx) error {
	if meetings, err := services.ListAllMeetings(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	} else {
		return c.JSON(meetings)
	}
}

func getMeeting(c *fiber.Ctx) error {
	meeting, err := meetingFromParams(c)
	if err != nil {
		return err
	}

	return c.JSON(meeting)
}

// getPublicMeeting backs unauthenticated join links; it exposes only what a
// guest needs to decide whether to enter the room.
func getPublicMeeting(c *fiber.Ctx) error {
	meeting, err := meetingFromParams(c)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"id":         meeting.ID,
		"title":      meeting.Title,
		"date":       meeting.Date,
		"start_time": meeting.StartTime,
		"end_time":   meeting.EndTime,
		"status":     meeting.Status,
	})
}

func editMeeting(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	meeting, err := meetingFromParams(c)
	if err != nil {
		return err
	}
	if !services.CanManage(user, meeting.AccountID) {
		return fiber.NewError(fiber.StatusForbidden, "unauthorized to update this meeting")
	}

	var data struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Date        string `json:"date"`
		StartTime   string `json:"start_time"`
		EndTime     string `json:"end_time"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	meeting, err = services.EditMeeting(meeting, data.Date, data.StartTime, data.EndTime, data.Title, data.Description)
	if err != nil {
		return mapScheduleError(err)
	}

	return c.JSON(meeting)
}

func deleteMeeting(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	meeting, err := meetingFromParams(c)
	if err != nil {
		return err
	}
	if !services.CanManage(user, meeting.AccountID) {
		return fiber.NewError(fiber.StatusForbidden, "unauthorized to delete this meeting")
	}

	if err := services.DeleteMeeting(meeting); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusOK)
}

func editMeetingStatus(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	meeting, err := meetingFromParams(c)
	if err != nil {
		return err
	}
	if !services.CanManage(user, meeting.AccountID) {
		return fiber.NewError(fiber.StatusForbidden, "unauthorized to update this meeting")
	}

	var data struct {
		Status string `json:"status" validate:"required"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	meeting, err = services.SetMeetingStatus(meeting, data.Status)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(meeting)
}

func notifyMeetingStart(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	meeting, err := meetingFromParams(c)
	if err != nil {
		return err
	}
	if !services.CanManage(user, meeting.AccountID) {
		return fiber.NewError(fiber.StatusForbidden, "unauthorized to notify for this meeting")
	}

	owner, err := services.GetAccount(meeting.AccountID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "meeting owner not found")
	}

	if err := services.NotifyMeetingStart(meeting, owner); err != nil {
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}

	return c.SendStatus(fiber.StatusOK)
}
