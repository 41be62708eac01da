package models

import "gorm.io/datatypes"

// UserDetails is versioned, one row per intake; the newest row is the
// client's current profile.
type UserDetails struct {
	BaseModel

	Age              int               `json:"age"`
	Height           float64           `json:"height"`
	Weight           float64           `json:"weight"`
	DaysPerWeek      int               `json:"days_per_week"`
	Gender           string            `json:"gender"`
	FitnessLevel     string            `json:"fitness_level"`
	Goal             string            `json:"goal"`
	MedicalCondition string            `json:"medical_condition"`
	Extras           datatypes.JSONMap `json:"extras,omitempty"`

	AccountID uint    `json:"account_id"`
	Account   Account `json:"account"`
}
