package services

import (
	"gorm.io/gorm"

	"github.com/fitsphere/coaching/pkg/internal/database"
	"github.com/fitsphere/coaching/pkg/internal/models"
)

func GetExercisePlan(id uint) (models.ExercisePlan, error) {
	var plan models.ExercisePlan
	if err := database.C.Where("id = ?", id).First(&plan).Error; err != nil {
		return plan, err
	}
	return plan, nil
}

func ListExercisePlansForAccount(accountID uint) ([]models.ExercisePlan, error) {
	var plans []models.ExercisePlan
	if err := database.C.
		Where("account_id = ?", accountID).
		Order("day ASC").
		Find(&plans).Error; err != nil {
		return plans, err
	}
	return plans, nil
}

func ListAllExercisePlans() ([]models.ExercisePlan, error) {
	var plans []models.ExercisePlan
	if err := database.C.
		Preload("Account", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "first_name", "last_name", "email")
		}).
		Order("day ASC").
		Find(&plans).Error; err != nil {
		return plans, err
	}
	return plans, nil
}

func NewExercisePlan(plan models.ExercisePlan) (models.ExercisePlan, error) {
	plan.Status = models.PlanStatusActive
	if err := database.C.Create(&plan).Error; err != nil {
		return plan, err
	}
	return plan, nil
}

// NewExercisePlanBatch creates a whole weekly assignment atomically.
func NewExercisePlanBatch(plans []models.ExercisePlan) ([]models.ExercisePlan, error) {
	err := database.C.Transaction(func(tx *gorm.DB) error {
		for idx := range plans {
			plans[idx].Status = models.PlanStatusActive
			if err := tx.Create(&plans[idx]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return plans, err
}

func EditExercisePlan(plan models.ExercisePlan) (models.ExercisePlan, error) {
	if err := database.C.Save(&plan).Error; err != nil {
		return plan, err
	}
	return plan, nil
}

// DeleteExercisePlan also drops the trackers hanging off the plan so the
// weekly view never references a vanished assignment.
func DeleteExercisePlan(plan models.ExercisePlan) error {
	return database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("exercise_plan_id = ?", plan.ID).Delete(&models.DayTracker{}).Error; err != nil {
			return err
		}
		if err := tx.Where("exercise_plan_id = ?", plan.ID).Delete(&models.ExerciseTracking{}).Error; err != nil {
			return err
		}
		return tx.Delete(&plan).Error
	})
}

func DeleteExercisePlansForAccount(accountID uint) (int64, error) {
	tx := database.C.Where("account_id = ?", accountID).Delete(&models.ExercisePlan{})
	return tx.RowsAffected, tx.Error
}
