package services

import (
	"time"

	"github.com/samber/lo"

	"github.com/fitsphere/coaching/pkg/internal/database"
	"github.com/fitsphere/coaching/pkg/internal/models"
)

// CurrentWeekStart truncates to Monday 00:00 of the week containing the
// given instant, in that instant's location.
func CurrentWeekStart(now time.Time) time.Time {
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	day := now.AddDate(0, 0, -(weekday - 1))
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())
}

// NewDayTracker is idempotent per (account, plan, day).
func NewDayTracker(tracker models.DayTracker) (models.DayTracker, error) {
	if err := database.C.Where(models.DayTracker{
		AccountID:      tracker.AccountID,
		ExercisePlanID: tracker.ExercisePlanID,
		DayInWeek:      tracker.DayInWeek,
	}).FirstOrCreate(&tracker).Error; err != nil {
		return tracker, err
	}
	return tracker, nil
}

func ListDayTrackersForAccount(accountID uint) ([]models.DayTracker, error) {
	var trackers []models.DayTracker
	if err := database.C.
		Where("account_id = ?", accountID).
		Preload("ExercisePlan").
		Order("day_in_week ASC").
		Find(&trackers).Error; err != nil {
		return trackers, err
	}
	return trackers, nil
}

func GetDayTracker(id uint) (models.DayTracker, error) {
	var tracker models.DayTracker
	if err := database.C.Where("id = ?", id).Preload("ExercisePlan").First(&tracker).Error; err != nil {
		return tracker, err
	}
	return tracker, nil
}

func DeleteDayTracker(tracker models.DayTracker) error {
	return database.C.Delete(&tracker).Error
}

// TrackedExercise pairs an assignment with its completion state for the
// current week; assignments with no tracking row report status "lost".
type TrackedExercise struct {
	models.DayTracker

	Tracking models.ExerciseTracking `json:"tracking"`
}

// WeeklyViewForAccount merges day trackers with the current week's tracking
// rows, grouped by day of week.
func WeeklyViewForAccount(accountID uint) (map[int][]TrackedExercise, time.Time, error) {
	weekStart := CurrentWeekStart(time.Now())

	trackers, err := ListDayTrackersForAccount(accountID)
	if err != nil {
		return nil, weekStart, err
	}

	var trackings []models.ExerciseTracking
	if err := database.C.
		Where("account_id = ? AND week_start_date = ?", accountID, weekStart).
		Find(&trackings).Error; err != nil {
		return nil, weekStart, err
	}

	merged := lo.Map(trackers, func(tracker models.DayTracker, idx int) TrackedExercise {
		tracking, ok := lo.Find(trackings, func(item models.ExerciseTracking) bool {
			return item.ExercisePlanID == tracker.ExercisePlanID && item.Day == tracker.DayInWeek
		})
		if !ok {
			tracking = models.ExerciseTracking{Status: models.TrackingStatusLost}
		}
		return TrackedExercise{DayTracker: tracker, Tracking: tracking}
	})

	return lo.GroupBy(merged, func(item TrackedExercise) int {
		return item.DayInWeek
	}), weekStart, nil
}

// MarkExerciseComplete upserts the tracking row for the current week.
func MarkExerciseComplete(accountID, planID uint, day int) (models.ExerciseTracking, error) {
	weekStart := CurrentWeekStart(time.Now())

	var tracking models.ExerciseTracking
	err := database.C.Where(models.ExerciseTracking{
		AccountID:      accountID,
		ExercisePlanID: planID,
		Day:            day,
		WeekStartDate:  weekStart,
	}).FirstOrCreate(&tracking).Error
	if err != nil {
		return tracking, err
	}

	tracking.Status = models.TrackingStatusComplete
	tracking.CompletedAt = lo.ToPtr(time.Now())

	if err := database.C.Save(&tracking).Error; err != nil {
		return tracking, err
	}
	return tracking, nil
}
