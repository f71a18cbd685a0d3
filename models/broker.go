// SPDX-License-Identifier: GPL-3.0-only

package models

import "time"

type Broker struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	ImageURL  string    `gorm:"size:200" json:"image_url"`
	Phone     string    `gorm:"size:20" json:"phone"`
	Email     string    `gorm:"size:254" json:"email"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func init() {
	AllModels = append(AllModels, &Broker{})
}
