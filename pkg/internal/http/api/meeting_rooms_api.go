package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fitsphere/coaching/pkg/internal/http/exts"
	"github.com/fitsphere/coaching/pkg/internal/models"
	"github.com/fitsphere/coaching/pkg/internal/services"
)

// participantIdentity resolves the name/role a caller acts under inside a
// room: principal identity by default, body overrides allowed so a client
// can label itself for display.
func participantIdentity(c *fiber.Ctx, name, role string) (string, models.AccountRole, error) {
	user := c.Locals("user").(models.Account)

	if name == "" {
		name = user.Name()
	}

	out := user.Role
	if role != "" {
		var ok bool
		if out, ok = models.ParseAccountRole(role); !ok {
			return "", "", fiber.NewError(fiber.StatusBadRequest, "invalid role, must be ADMIN or USER")
		}
	}

	return name, out, nil
}

func roomResponse(room *models.MeetingRoom) fiber.Map {
	count := 0
	if room != nil {
		count = len(room.Participants)
	}
	return fiber.Map{
		"count": count,
		"room":  room,
	}
}

func joinMeetingRoom(c *fiber.Ctx) error {
	meeting, err := meetingFromParams(c)
	if err != nil {
		return err
	}

	var data struct {
		Name string `json:"name"`
		Role string `json:"role"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	name, role, err := participantIdentity(c, data.Name, data.Role)
	if err != nil {
		return err
	}

	room, err := services.JoinMeetingRoom(c.UserContext(), meeting.ID, name, role)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(roomResponse(room))
}

func leaveMeetingRoom(c *fiber.Ctx) error {
	meeting, err := meetingFromParams(c)
	if err != nil {
		return err
	}

	var data struct {
		Name string `json:"name"`
		Role string `json:"role"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	name, role, err := participantIdentity(c, data.Name, data.Role)
	if err != nil {
		return err
	}

	room, err := services.LeaveMeetingRoom(c.UserContext(), meeting.ID, name, role)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(roomResponse(room))
}

// getMeetingParticipants never errors on absence; an idle meeting reports
// count zero and a null room.
func getMeetingParticipants(c *fiber.Ctx) error {
	meeting, err := meetingFromParams(c)
	if err != nil {
		return err
	}

	room, err := services.GetMeetingRoom(c.UserContext(), meeting.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(roomResponse(room))
}

func setConnectionStatus(c *fiber.Ctx) error {
	meeting, err := meetingFromParams(c)
	if err != nil {
		return err
	}

	var data struct {
		Role      string `json:"role" validate:"required"`
		Connected bool   `json:"connected"`
		Name      string `json:"name"`
		Timestamp int64  `json:"timestamp"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	name, role, err := participantIdentity(c, data.Name, data.Role)
	if err != nil {
		return err
	}

	state, err := services.SetConnectionStatus(c.UserContext(), meeting.ID, role, data.Connected, name, data.Timestamp)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(state)
}

// getConnectionStatus returns the all-disconnected default shape for
// meetings nobody ever heartbeated.
func getConnectionStatus(c *fiber.Ctx) error {
	meeting, err := meetingFromParams(c)
	if err != nil {
		return err
	}

	state, err := services.GetConnectionStatus(c.UserContext(), meeting.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(state)
}

func clearConnectionStatus(c *fiber.Ctx) error {
	meeting, err := meetingFromParams(c)
	if err != nil {
		return err
	}

	role, ok := models.ParseAccountRole(c.Query("role"))
	if !ok {
		user := c.Locals("user").(models.Account)
		role = user.Role
	}

	if err := services.ClearConnectionStatus(c.UserContext(), meeting.ID, role); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusOK)
}
