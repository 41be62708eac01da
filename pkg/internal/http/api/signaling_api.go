package api

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/fitsphere/coaching/pkg/internal/http/exts"
	"github.com/fitsphere/coaching/pkg/internal/models"
	"github.com/fitsphere/coaching/pkg/internal/services"
)

func signalingRole(role string) (models.AccountRole, error) {
	out, ok := models.ParseAccountRole(role)
	if !ok {
		return "", fiber.NewError(fiber.StatusBadRequest, "invalid role, must be ADMIN or USER")
	}
	return out, nil
}

func postSignalingOffer(c *fiber.Ctx) error {
	meeting, err := meetingFromParams(c)
	if err != nil {
		return err
	}

	var data struct {
		Offer json.RawMessage `json:"offer" validate:"required"`
		Role  string          `json:"role" validate:"required"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	role, err := signalingRole(data.Role)
	if err != nil {
		return err
	}

	if err := services.PostSignalingOffer(c.UserContext(), meeting.ID, role, data.Offer); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusOK)
}

// getSignalingOffer reports a null offer until one is posted; the two peers
// join asynchronously, so polling before the other side posted is the
// normal case, not an error.
func getSignalingOffer(c *fiber.Ctx) error {
	meeting, err := meetingFromParams(c)
	if err != nil {
		return err
	}

	offer, err := services.GetSignalingOffer(c.UserContext(), meeting.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{"offer": offer})
}

func postSignalingAnswer(c *fiber.Ctx) error {
	meeting, err := meetingFromParams(c)
	if err != nil {
		return err
	}

	var data struct {
		Answer json.RawMessage `json:"answer" validate:"required"`
		Role   string          `json:"role" validate:"required"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	role, err := signalingRole(data.Role)
	if err != nil {
		return err
	}

	if err := services.PostSignalingAnswer(c.UserContext(), meeting.ID, role, data.Answer); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusOK)
}

func getSignalingAnswer(c *fiber.Ctx) error {
	meeting, err := meetingFromParams(c)
	if err != nil {
		return err
	}

	answer, err := services.GetSignalingAnswer(c.UserContext(), meeting.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{"answer": answer})
}

func postIceCandidate(c *fiber.Ctx) error {
	meeting, err := meetingFromParams(c)
	if err != nil {
		return err
	}

	var data struct {
		Candidate json.RawMessage `json:"candidate" validate:"required"`
		Role      string          `json:"role" validate:"required"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	role, err := signalingRole(data.Role)
	if err != nil {
		return err
	}

	if err := services.PostIceCandidate(c.UserContext(), meeting.ID, role, data.Candidate); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusOK)
}

func listIceCandidates(c *fiber.Ctx) error {
	meeting, err := meetingFromParams(c)
	if err != nil {
		return err
	}

	candidates, err := services.ListIceCandidates(c.UserContext(), meeting.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{"candidates": candidates})
}
