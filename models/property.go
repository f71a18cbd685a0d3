// SPDX-License-Identifier: GPL-3.0-only

package models

import "time"

// Property types accepted by the catalog.
const (
	TypeVilla     = "Villa"
	TypeApartment = "Apartment"
	TypeHouse     = "House"
)

var PropertyTypes = []string{TypeVilla, TypeApartment, TypeHouse}

// Renovation levels, lowest to highest.
const (
	RenovationNone    = "none"
	RenovationBasic   = "basic"
	RenovationPlus    = "plus"
	RenovationPremium = "premium"
)

var RenovationLevels = []string{RenovationNone, RenovationBasic, RenovationPlus, RenovationPremium}

// Property is a listing record. Price is deliberately stored as its display
// string (e.g. "24 900 000 kr") so the catalog renders it exactly as
// published; numeric comparisons go through listings.ParsePrice.
type Property struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Type         string `gorm:"size:50;not null" json:"type"`
	Address      string `gorm:"size:255;not null" json:"address"`
	Area         string `gorm:"size:100" json:"area"`
	Municipality string `gorm:"size:100" json:"municipality"`

	Price string `gorm:"size:50" json:"price"`
	Sqm   uint   `json:"sqm"`
	Rooms uint   `json:"rooms"`

	Fee *string `gorm:"size:50;default:null" json:"fee"`

	Published       string `gorm:"size:50" json:"published"`
	IsBidding       bool   `gorm:"default:false" json:"is_bidding"`
	RenovationLevel string `gorm:"size:20;default:none" json:"renovation_level"`

	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`

	BrokerID *uint           `gorm:"default:null" json:"-"`
	Broker   *Broker         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"broker"`
	Images   []PropertyImage `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"images"`
	Facts    []PropertyFact  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"facts"`
}

type PropertyImage struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ImageURL   string `gorm:"size:200;not null" json:"image_url"`
	PropertyID uint   `gorm:"not null;index" json:"property_id"`
}

type PropertyFact struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Label      string `gorm:"size:100;not null" json:"label"`
	Value      string `gorm:"size:100" json:"value"`
	PropertyID uint   `gorm:"not null;index" json:"property_id"`
}

func ValidPropertyType(t string) bool {
	for _, pt := range PropertyTypes {
		if t == pt {
			return true
		}
	}
	return false
}

func ValidRenovationLevel(level string) bool {
	for _, rl := range RenovationLevels {
		if level == rl {
			return true
		}
	}
	return false
}

func init() {
	AllModels = append(AllModels, &Property{}, &PropertyImage{}, &PropertyFact{})
}
