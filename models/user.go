// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"gorm.io/gorm"
)

var AllModels []any

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"size:150;not null;uniqueIndex" json:"username"`
	Email     string         `gorm:"size:254;index" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	FirstName string         `gorm:"size:150" json:"first_name"`
	LastName  string         `gorm:"size:150" json:"last_name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Profile   Profile        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// Profile holds per-user contact details that do not belong on the account
// itself. Exactly one profile exists per user; it is created in the same
// transaction as the account and re-created on update if it went missing.
type Profile struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PhoneNumber *string   `gorm:"size:20;default:null" json:"phone_number"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
	UserID      uint      `gorm:"uniqueIndex" json:"user_id"`
}

func init() {
	AllModels = append(AllModels, &User{}, &Profile{})
}
