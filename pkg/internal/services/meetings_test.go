package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fitsphere/coaching/pkg/internal/models"
)

func TestTimeslotOverlaps(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"PartialOverlap", "10:00", "11:00", "10:30", "11:30", true},
		{"Contained", "10:00", "12:00", "10:30", "11:00", true},
		{"Identical", "10:00", "11:00", "10:00", "11:00", true},
		{"BackToBack", "10:00", "11:00", "11:00", "12:00", false},
		{"BackToBackReversed", "11:00", "12:00", "10:00", "11:00", false},
		{"Disjoint", "08:00", "09:00", "14:00", "15:00", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, timeslotOverlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
		})
	}
}

func TestCountScheduleConflicts(t *testing.T) {
	existing := []models.Meeting{
		{BaseModel: models.BaseModel{ID: 1}, Date: "2025-06-10", StartTime: "10:00", EndTime: "11:00"},
		{BaseModel: models.BaseModel{ID: 2}, Date: "2025-06-10", StartTime: "13:00", EndTime: "14:00"},
	}

	t.Run("OverlappingSlotConflicts", func(t *testing.T) {
		assert.Equal(t, 1, countScheduleConflicts(existing, "10:30", "11:30", 0))
	})

	t.Run("SharedBoundaryDoesNotConflict", func(t *testing.T) {
		assert.Equal(t, 0, countScheduleConflicts(existing, "11:00", "12:00", 0))
	})

	t.Run("SpanningSlotConflictsWithBoth", func(t *testing.T) {
		assert.Equal(t, 2, countScheduleConflicts(existing, "09:00", "15:00", 0))
	})

	t.Run("OwnRecordIsExcludedOnEdit", func(t *testing.T) {
		assert.Equal(t, 0, countScheduleConflicts(existing, "10:00", "11:00", 1))
		assert.Equal(t, 1, countScheduleConflicts(existing, "10:00", "11:00", 2))
	})
}

func TestValidateTimeslot(t *testing.T) {
	assert.NoError(t, validateTimeslot("2025-06-10", "10:00", "11:00"))
	assert.Error(t, validateTimeslot("10-06-2025", "10:00", "11:00"))
	assert.Error(t, validateTimeslot("2025-06-10", "10am", "11:00"))
	assert.Error(t, validateTimeslot("2025-06-10", "10:00", "25:61"))
}

func TestMeetingStartsInPast(t *testing.T) {
	assert.True(t, meetingStartsInPast("2020-01-01", "10:00"))
	assert.False(t, meetingStartsInPast("2099-01-01", "10:00"))
	// Malformed input is left for validateTimeslot to reject.
	assert.False(t, meetingStartsInPast("not-a-date", "10:00"))
}

func TestScheduleConflictError(t *testing.T) {
	err := ScheduleConflictError{Count: 2}
	assert.EqualError(t, err, "time slot conflicts with 2 existing meeting(s)")
}
