package services

import (
	"gorm.io/gorm"

	"github.com/fitsphere/coaching/pkg/internal/database"
	"github.com/fitsphere/coaching/pkg/internal/models"
)

func GetUserDetails(id uint) (models.UserDetails, error) {
	var details models.UserDetails
	if err := database.C.Where("id = ?", id).First(&details).Error; err != nil {
		return details, err
	}
	return details, nil
}

func ListAllUserDetails() ([]models.UserDetails, error) {
	var details []models.UserDetails
	if err := database.C.
		Preload("Account", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "first_name", "last_name", "email")
		}).
		Order("created_at DESC").
		Find(&details).Error; err != nil {
		return details, err
	}
	return details, nil
}

// ListUserDetailsForAccount returns every intake version, newest first.
func ListUserDetailsForAccount(accountID uint) ([]models.UserDetails, error) {
	var details []models.UserDetails
	if err := database.C.
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&details).Error; err != nil {
		return details, err
	}
	return details, nil
}

func GetCurrentUserDetails(accountID uint) (models.UserDetails, error) {
	var details models.UserDetails
	if err := database.C.
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		First(&details).Error; err != nil {
		return details, err
	}
	return details, nil
}

func NewUserDetails(details models.UserDetails) (models.UserDetails, error) {
	if err := database.C.Create(&details).Error; err != nil {
		return details, err
	}
	return details, nil
}

func EditUserDetails(details models.UserDetails) (models.UserDetails, error) {
	if err := database.C.Save(&details).Error; err != nil {
		return details, err
	}
	return details, nil
}

func DeleteUserDetails(details models.UserDetails) error {
	return database.C.Delete(&details).Error
}
