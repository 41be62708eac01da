package services

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"gorm.io/gorm"

	"github.com/fitsphere/coaching/pkg/internal/database"
	"github.com/fitsphere/coaching/pkg/internal/models"
)

// ScheduleConflictError reports how many existing meetings intersect the
// requested timeslot.
type ScheduleConflictError struct {
	Count int
}

func (e ScheduleConflictError) Error() string {
	return fmt.Sprintf("time slot conflicts with %d existing meeting(s)", e.Count)
}

// timeslotOverlaps applies the half-open interval rule [start, end): two
// slots conflict iff each starts before the other ends. Back-to-back
// meetings sharing a boundary do not conflict.
func timeslotOverlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && bStart < aEnd
}

// countScheduleConflicts runs the overlap check over candidates already
// narrowed to one date. "HH:MM" strings order lexicographically, so no
// parsing is needed.
func countScheduleConflicts(existing []models.Meeting, startTime, endTime string, excludeID uint) int {
	var count int
	for _, other := range existing {
		if excludeID > 0 && other.ID == excludeID {
			continue
		}
		if timeslotOverlaps(other.StartTime, other.EndTime, startTime, endTime) {
			count++
		}
	}
	return count
}

func validateTimeslot(date, startTime, endTime string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid date, expected YYYY-MM-DD: %v", err)
	}
	for _, value := range []string{startTime, endTime} {
		if _, err := time.Parse("15:04", value); err != nil {
			return fmt.Errorf("invalid time, expected HH:MM: %v", err)
		}
	}
	return nil
}

func scheduleZone() *time.Location {
	if name := viper.GetString("schedule.timezone"); name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return time.Local
}

func meetingStartsInPast(date, startTime string) bool {
	start, err := time.ParseInLocation("2006-01-02 15:04", date+" "+startTime, scheduleZone())
	if err != nil {
		return false
	}
	return start.Before(time.Now())
}

// CheckScheduleConflicts loads every meeting on the date and counts overlap
// against the candidate slot. The check is global across owners: the product
// has a single physical meeting room.
func CheckScheduleConflicts(date, startTime, endTime string, excludeID uint) error {
	var existing []models.Meeting
	tx := database.C.Where("date = ?", date)
	if excludeID > 0 {
		tx = tx.Where("id <> ?", excludeID)
	}
	if err := tx.Find(&existing).Error; err != nil {
		return err
	}

	if count := countScheduleConflicts(existing, startTime, endTime, excludeID); count > 0 {
		return ScheduleConflictError{Count: count}
	}
	return nil
}

func GetMeeting(id uint) (models.Meeting, error) {
	var meeting models.Meeting
	if err := database.C.Where("id = ?", id).First(&meeting).Error; err != nil {
		return meeting, err
	}
	return meeting, nil
}

func ListMeetingsForAccount(accountID uint) ([]models.Meeting, error) {
	var meetings []models.Meeting
	if err := database.C.
		Where("account_id = ?", accountID).
		Order("date ASC").
		Order("start_time ASC").
		Find(&meetings).Error; err != nil {
		return meetings, err
	}
	return meetings, nil
}

func ListAllMeetings() ([]models.Meeting, error) {
	var meetings []models.Meeting
	if err := database.C.
		Preload("Account", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "first_name", "last_name", "email")
		}).
		Order("date ASC").
		Order("start_time ASC").
		Find(&meetings).Error; err != nil {
		return meetings, err
	}
	return meetings, nil
}

func NewMeeting(meeting models.Meeting) (models.Meeting, error) {
	if err := validateTimeslot(meeting.Date, meeting.StartTime, meeting.EndTime); err != nil {
		return meeting, err
	}
	if meetingStartsInPast(meeting.Date, meeting.StartTime) {
		return meeting, fmt.Errorf("cannot schedule meetings in the past")
	}
	if err := CheckScheduleConflicts(meeting.Date, meeting.StartTime, meeting.EndTime, 0); err != nil {
		return meeting, err
	}

	meeting.Status = models.MeetingStatusPending

	if err := database.C.Create(&meeting).Error; err != nil {
		return meeting, err
	}
	return meeting, nil
}

// EditMeeting applies a partial update; the overlap check re-runs only when
// the whole timeslot was re-supplied, excluding the meeting's own id.
func EditMeeting(meeting models.Meeting, date, startTime, endTime, title, description string) (models.Meeting, error) {
	if title != "" {
		meeting.Title = title
	}
	if description != "" {
		meeting.Description = description
	}

	if date != "" && startTime != "" && endTime != "" {
		if err := validateTimeslot(date, startTime, endTime); err != nil {
			return meeting, err
		}
		if meetingStartsInPast(date, startTime) {
			return meeting, fmt.Errorf("cannot schedule meetings in the past")
		}
		if err := CheckScheduleConflicts(date, startTime, endTime, meeting.ID); err != nil {
			return meeting, err
		}
		meeting.Date = date
		meeting.StartTime = startTime
		meeting.EndTime = endTime
	}

	if err := database.C.Save(&meeting).Error; err != nil {
		return meeting, err
	}
	return meeting, nil
}

func DeleteMeeting(meeting models.Meeting) error {
	return database.C.Delete(&meeting).Error
}

func SetMeetingStatus(meeting models.Meeting, status string) (models.Meeting, error) {
	normalized, ok := models.ParseMeetingStatus(status)
	if !ok {
		return meeting, fmt.Errorf("invalid status, must be one of: pending, complete, cancel")
	}

	meeting.Status = normalized

	if err := database.C.Save(&meeting).Error; err != nil {
		return meeting, err
	}
	return meeting, nil
}
