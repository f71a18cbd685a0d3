// SPDX-License-Identifier: GPL-3.0-only

package migrations

import (
	"fmt"

	"daarla-server/models"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func List() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "001_seed_catalog",
			Migrate: func(tx *gorm.DB) error {
				brokers := []models.Broker{
					{
						Name:     "Erik Sundin",
						ImageURL: "https://images.daarla.se/brokers/erik-sundin.jpg",
						Phone:    "+46 70 123 45 67",
						Email:    "erik.sundin@daarla.se",
					},
					{
						Name:     "Maria Lindqvist",
						ImageURL: "https://images.daarla.se/brokers/maria-lindqvist.jpg",
						Phone:    "+46 73 987 65 43",
						Email:    "maria.lindqvist@daarla.se",
					},
				}
				for i := range brokers {
					if err := tx.Create(&brokers[i]).Error; err != nil {
						return fmt.Errorf("failed to create broker %s: %w", brokers[i].Name, err)
					}
				}

				properties := []models.Property{
					{
						Type:            models.TypeVilla,
						Address:         "Strandvägen 12",
						Area:            "Östermalm",
						Municipality:    "Stockholm",
						Price:           "24 900 000 kr",
						Sqm:             185,
						Rooms:           6,
						Published:       "Yesterday",
						IsBidding:       true,
						RenovationLevel: models.RenovationPremium,
						Description:     "Exklusiv sekelskiftesvilla med havsutsikt och generösa sällskapsytor.",
						BrokerID:        &brokers[0].ID,
					},
					{
						Type:            models.TypeApartment,
						Address:         "Götgatan 45",
						Area:            "Södermalm",
						Municipality:    "Stockholm",
						Price:           "5 250 000 kr",
						Sqm:             72,
						Rooms:           3,
						Fee:             strPtr("3 450 kr/mån"),
						Published:       "3 days ago",
						RenovationLevel: models.RenovationBasic,
						Description:     "Ljus trea med balkong i söderläge, nära tunnelbanan.",
						BrokerID:        &brokers[1].ID,
					},
					{
						Type:            models.TypeHouse,
						Address:         "Björkallén 8",
						Area:            "Hjärup",
						Municipality:    "Staffanstorp",
						Price:           "3 995 000 kr",
						Sqm:             124,
						Rooms:           5,
						Published:       "Last week",
						RenovationLevel: models.RenovationPlus,
						Description:     "Välskött familjehus med stor trädgård och dubbelgarage.",
						BrokerID:        &brokers[0].ID,
					},
				}
				for i := range properties {
					if err := tx.Create(&properties[i]).Error; err != nil {
						return fmt.Errorf("failed to create property %s: %w", properties[i].Address, err)
					}
				}

				images := []models.PropertyImage{
					{PropertyID: properties[0].ID, ImageURL: "https://images.daarla.se/properties/strandvagen-12/front.jpg"},
					{PropertyID: properties[0].ID, ImageURL: "https://images.daarla.se/properties/strandvagen-12/living-room.jpg"},
					{PropertyID: properties[1].ID, ImageURL: "https://images.daarla.se/properties/gotgatan-45/balcony.jpg"},
					{PropertyID: properties[2].ID, ImageURL: "https://images.daarla.se/properties/bjorkallen-8/garden.jpg"},
				}
				for i := range images {
					if err := tx.Create(&images[i]).Error; err != nil {
						return fmt.Errorf("failed to create property image: %w", err)
					}
				}

				facts := []models.PropertyFact{
					{PropertyID: properties[0].ID, Label: "Byggår", Value: "1912"},
					{PropertyID: properties[0].ID, Label: "Tomtarea", Value: "980 m²"},
					{PropertyID: properties[1].ID, Label: "Byggår", Value: "1968"},
					{PropertyID: properties[1].ID, Label: "Våning", Value: "4 av 6"},
					{PropertyID: properties[2].ID, Label: "Byggår", Value: "1994"},
				}
				for i := range facts {
					if err := tx.Create(&facts[i]).Error; err != nil {
						return fmt.Errorf("failed to create property fact: %w", err)
					}
				}

				return nil
			},
			Rollback: func(tx *gorm.DB) error {
				if err := tx.Exec("DELETE FROM property_facts").Error; err != nil {
					return fmt.Errorf("failed to clear property facts: %w", err)
				}
				if err := tx.Exec("DELETE FROM property_images").Error; err != nil {
					return fmt.Errorf("failed to clear property images: %w", err)
				}
				if err := tx.Exec("DELETE FROM properties").Error; err != nil {
					return fmt.Errorf("failed to clear properties: %w", err)
				}
				if err := tx.Exec("DELETE FROM brokers").Error; err != nil {
					return fmt.Errorf("failed to clear brokers: %w", err)
				}
				return nil
			},
		},
	}
}

// Run applies all pending data migrations against the given connection.
func Run(conn *gorm.DB) error {
	m := gormigrate.New(conn, gormigrate.DefaultOptions, List())
	return m.Migrate()
}
