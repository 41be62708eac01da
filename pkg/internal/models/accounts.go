package models

import (
	"strings"
	"time"
)

type AccountRole = string

const (
	RoleAdmin = AccountRole("ADMIN")
	RoleUser  = AccountRole("USER")
)

// ParseAccountRole is the single place role strings are compared, so the
// "ADMIN"/"USER" spelling never drifts between components.
func ParseAccountRole(value string) (AccountRole, bool) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleUser:
		return RoleUser, true
	default:
		return "", false
	}
}

type Account struct {
	BaseModel

	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Birthday  time.Time   `json:"birthday"`
	Email     string      `json:"email" gorm:"uniqueIndex"`
	Password  string      `json:"-"`
	Role      AccountRole `json:"role"`

	Meetings []Meeting      `json:"meetings,omitempty" gorm:"foreignKey:AccountID"`
	Plans    []ExercisePlan `json:"plans,omitempty" gorm:"foreignKey:AccountID"`
	Details  []UserDetails  `json:"details,omitempty" gorm:"foreignKey:AccountID"`
}

func (v Account) Name() string {
	return strings.TrimSpace(v.FirstName + " " + v.LastName)
}

func (v Account) IsAdmin() bool {
	return v.Role == RoleAdmin
}

// GuestAccount is the identity behind the reserved guest credential used by
// public meeting join links.
func GuestAccount() Account {
	return Account{
		FirstName: "Guest",
		Role:      RoleUser,
	}
}
