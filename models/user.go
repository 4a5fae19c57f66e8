package models

import (
	"time"
)

// User is a registered account. The two capability flags are independent;
// menu mutations need both.
type User struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Username      string    `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash  string    `json:"-" gorm:"not null"`
	IsAdmin       bool      `json:"is_admin" gorm:"not null;default:false"`
	CanManageMenu bool      `json:"can_manage_menu" gorm:"not null;default:false"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
