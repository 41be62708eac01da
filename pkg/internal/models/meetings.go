package models

import (
	"strings"

	"gorm.io/datatypes"
)

type MeetingStatus = string

const (
	MeetingStatusPending  = MeetingStatus("pending")
	MeetingStatusComplete = MeetingStatus("complete")
	MeetingStatusCancel   = MeetingStatus("cancel")
)

// ParseMeetingStatus normalizes case-insensitive input into the flat status
// set. There is no transition table; any status may replace any other.
func ParseMeetingStatus(value string) (MeetingStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case MeetingStatusPending:
		return MeetingStatusPending, true
	case MeetingStatusComplete:
		return MeetingStatusComplete, true
	case MeetingStatusCancel:
		return MeetingStatusCancel, true
	default:
		return "", false
	}
}

type Meeting struct {
	BaseModel

	Title       string            `json:"title"`
	Description string            `json:"description"`
	Date        string            `json:"date" gorm:"index"`
	StartTime   string            `json:"start_time"`
	EndTime     string            `json:"end_time"`
	Status      MeetingStatus     `json:"status" gorm:"default:'pending'"`
	Metadata    datatypes.JSONMap `json:"metadata,omitempty"`

	AccountID uint    `json:"account_id"`
	Account   Account `json:"account"`
}
