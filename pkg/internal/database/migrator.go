package database

import (
	"github.com/fitsphere/coaching/pkg/internal/models"
	"gorm.io/gorm"
)

var AutoMaintainRange = []any{
	&models.Account{},
	&models.Meeting{},
	&models.ExercisePlan{},
	&models.DayTracker{},
	&models.ExerciseTracking{},
	&models.UserDetails{},
}

func RunMigration(source *gorm.DB) error {
	if err := source.AutoMigrate(AutoMaintainRange...); err != nil {
		return err
	}

	return nil
}
