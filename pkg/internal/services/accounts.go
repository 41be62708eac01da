package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fitsphere/coaching/pkg/internal/database"
	"github.com/fitsphere/coaching/pkg/internal/models"
)

func GetAccount(id uint) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("id = ?", id).First(&account).Error; err != nil {
		return account, err
	}
	return account, nil
}

func GetAccountByEmail(email string) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("email = ?", email).First(&account).Error; err != nil {
		return account, err
	}
	return account, nil
}

func ListAccounts() ([]models.Account, error) {
	var accounts []models.Account
	if err := database.C.
		Preload("Details", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at DESC")
		}).
		Preload("Plans").
		Order("created_at DESC").
		Find(&accounts).Error; err != nil {
		return accounts, err
	}
	return accounts, nil
}

func CreateAccount(account models.Account, password string) (models.Account, error) {
	if _, err := GetAccountByEmail(account.Email); err == nil {
		return account, fmt.Errorf("account with email %s already exists", account.Email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return account, fmt.Errorf("unable to hash password: %w", err)
	}
	account.Password = string(hashed)

	if err := database.C.Create(&account).Error; err != nil {
		return account, err
	}
	return account, nil
}

// AuthAccount verifies credentials without leaking which of the two was
// wrong.
func AuthAccount(email, password string) (models.Account, error) {
	account, err := GetAccountByEmail(email)
	if err != nil {
		return account, fmt.Errorf("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)) != nil {
		return account, fmt.Errorf("invalid credentials")
	}
	return account, nil
}

type AccessClaims struct {
	FirstName string             `json:"first_name"`
	LastName  string             `json:"last_name"`
	Email     string             `json:"email"`
	Role      models.AccountRole `json:"role"`

	jwt.RegisteredClaims
}

func EncodeAccessToken(account models.Account) (string, error) {
	duration := viper.GetDuration("security.token_duration")
	if duration <= 0 {
		duration = time.Hour
	}

	claims := AccessClaims{
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Email:     account.Email,
		Role:      account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", account.ID),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
		},
	}

	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tk.SignedString([]byte(viper.GetString("security.jwt_secret")))
}

func DecodeAccessToken(token string) (models.Account, error) {
	var claims AccessClaims
	out, err := jwt.ParseWithClaims(token, &claims, func(tk *jwt.Token) (any, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tk.Header["alg"])
		}
		return []byte(viper.GetString("security.jwt_secret")), nil
	})
	if err != nil {
		return models.Account{}, err
	} else if !out.Valid {
		return models.Account{}, fmt.Errorf("invalid token")
	}

	var id uint
	_, _ = fmt.Sscanf(claims.Subject, "%d", &id)

	return models.Account{
		BaseModel: models.BaseModel{ID: id},
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		Email:     claims.Email,
		Role:      claims.Role,
	}, nil
}

// CanManage is the uniform mutation rule: the record owner or any ADMIN.
func CanManage(operator models.Account, ownerID uint) bool {
	return operator.IsAdmin() || (operator.ID != 0 && operator.ID == ownerID)
}
