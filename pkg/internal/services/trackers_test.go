package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrentWeekStart(t *testing.T) {
	// 2025-06-09 is a Monday.
	monday := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		now  time.Time
	}{
		{"Monday", time.Date(2025, 6, 9, 8, 30, 0, 0, time.UTC)},
		{"Tuesday", time.Date(2025, 6, 10, 23, 59, 59, 0, time.UTC)},
		{"Wednesday", time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC)},
		{"Thursday", time.Date(2025, 6, 12, 0, 0, 1, 0, time.UTC)},
		{"Friday", time.Date(2025, 6, 13, 18, 45, 0, 0, time.UTC)},
		{"Saturday", time.Date(2025, 6, 14, 6, 0, 0, 0, time.UTC)},
		{"Sunday", time.Date(2025, 6, 15, 22, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, monday, CurrentWeekStart(tc.now), "week containing %s starts on the preceding Monday", tc.now)
		})
	}
}

func TestCurrentWeekStartKeepsLocation(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	now := time.Date(2025, 6, 11, 9, 0, 0, 0, loc)
	start := CurrentWeekStart(now)
	assert.Equal(t, loc, start.Location())
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, time.Monday, start.Weekday())
}
