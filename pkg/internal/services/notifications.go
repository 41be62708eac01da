package services

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/fitsphere/coaching/pkg/internal/models"
)

// NotifyMeetingStart hands the meeting-start mail off to the external
// notifier endpoint. Fire-and-forget: a failure surfaces to the caller but
// never rolls back any state change.
func NotifyMeetingStart(meeting models.Meeting, recipient models.Account) error {
	joinLink := fmt.Sprintf("%s/meetings/%d/join", viper.GetString("frontend"), meeting.ID)

	payload := fiber.Map{
		"id":         uuid.NewString(),
		"type":       "meetings.start",
		"recipient":  recipient.Email,
		"title":      meeting.Title,
		"join_link":  joinLink,
		"date":       meeting.Date,
		"start_time": meeting.StartTime,
		"end_time":   meeting.EndTime,
	}

	// Clients holding a socket open get the event immediately; the mail
	// notifier covers everyone else.
	if CheckOnline(recipient) {
		PushCommand(recipient.ID, models.UnifiedCommand{
			Action:  "meetings.start",
			Payload: payload,
		})
	}

	endpoint := viper.GetString("notifier.endpoint")
	if endpoint == "" {
		log.Warn().
			Str("recipient", recipient.Email).
			Uint("meeting", meeting.ID).
			Msg("Notifier endpoint is not configured, skipping meeting start notification...")
		return nil
	}

	agent := fiber.Post(endpoint).Timeout(5 * time.Second)
	agent.JSON(payload)

	code, _, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("unable to reach notifier: %v", errs[0])
	} else if code >= 400 {
		return fmt.Errorf("notifier rejected request with status %d", code)
	}

	return nil
}
