// SPDX-License-Identifier: GPL-3.0-only

package models

import "time"

// ContactMessage is append-only; there is no update or delete surface.
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:254;not null" json:"email"`
	Phone     *string   `gorm:"size:20;default:null" json:"phone"`
	Message   string    `gorm:"not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func init() {
	AllModels = append(AllModels, &ContactMessage{})
}
