package models

import (
	"strings"
	"time"
)

// User is the owner every other record is scoped to.
type User struct {
	Base
	Email               string     `gorm:"uniqueIndex;not null" json:"email"`
	Password            string     `gorm:"not null" json:"-"`
	FirstName           string     `json:"first_name"`
	LastName            string     `json:"last_name"`
	IsActive            bool       `gorm:"default:true" json:"is_active"`
	RefreshTokenHash    string     `gorm:"size:64" json:"-"`
	FailedLoginAttempts int        `gorm:"default:0" json:"-"`
	LockedUntil         *time.Time `json:"-"`
	LastLoginAt         *time.Time `json:"last_login_at,omitempty"`
}

// DisplayName returns the first word of the user's first name, or "User".
func (u *User) DisplayName() string {
	if fields := strings.Fields(u.FirstName); len(fields) > 0 {
		return fields[0]
	}
	return "User"
}
