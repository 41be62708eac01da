package models

import "time"

type PlanStatus = string

const (
	PlanStatusActive   = PlanStatus("active")
	PlanStatusArchived = PlanStatus("archived")
)

type ExercisePlan struct {
	BaseModel

	Day      int        `json:"day"`
	Name     string     `json:"name"`
	Sets     int        `json:"sets"`
	Reps     int        `json:"reps"`
	Duration int        `json:"duration"`
	Status   PlanStatus `json:"status" gorm:"default:'active'"`

	AccountID uint    `json:"account_id"`
	Account   Account `json:"account"`
}

type DayTracker struct {
	BaseModel

	DayInWeek int `json:"day_in_week"`

	ExercisePlanID uint         `json:"exercise_plan_id"`
	ExercisePlan   ExercisePlan `json:"exercise_plan"`
	AccountID      uint         `json:"account_id"`
	Account        Account      `json:"account"`
}

type TrackingStatus = string

const (
	TrackingStatusComplete = TrackingStatus("complete")
	TrackingStatusLost     = TrackingStatus("lost")
)

type ExerciseTracking struct {
	BaseModel

	Day           int            `json:"day"`
	WeekStartDate time.Time      `json:"week_start_date" gorm:"index"`
	Status        TrackingStatus `json:"status" gorm:"default:'lost'"`
	CompletedAt   *time.Time     `json:"completed_at"`

	ExercisePlanID uint         `json:"exercise_plan_id"`
	ExercisePlan   ExercisePlan `json:"exercise_plan"`
	AccountID      uint         `json:"account_id"`
	Account        Account      `json:"account"`
}
