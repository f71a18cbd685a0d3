// SPDX-License-Identifier: GPL-3.0-only

package listings

import (
	"testing"

	"daarla-server/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := conn.AutoMigrate(models.AllModels...); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return conn
}

func seedProperties(t *testing.T, conn *gorm.DB, properties []models.Property) {
	t.Helper()
	for i := range properties {
		if err := conn.Create(&properties[i]).Error; err != nil {
			t.Fatalf("Failed to seed property: %v", err)
		}
	}
}

func addresses(properties []models.Property) []string {
	out := make([]string, 0, len(properties))
	for _, p := range properties {
		out = append(out, p.Address)
	}
	return out
}

func TestSearchNoFilters(t *testing.T) {
	conn := setupTestDB(t)
	seedProperties(t, conn, []models.Property{
		{Type: models.TypeVilla, Address: "A 1", Price: "1 000 000 kr", Rooms: 3, Sqm: 80},
		{Type: models.TypeApartment, Address: "B 2", Price: "2 000 000 kr", Rooms: 2, Sqm: 55},
	})

	result, err := Search(conn, FilterParams{})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("Expected 2 properties, got %d", len(result))
	}
	if result[0].ID > result[1].ID {
		t.Error("Results should be ordered by id")
	}
}

func TestSearchTypeCaseInsensitive(t *testing.T) {
	conn := setupTestDB(t)
	seedProperties(t, conn, []models.Property{
		{Type: models.TypeVilla, Address: "Villavägen 1", Price: "1 000 000 kr"},
		{Type: models.TypeApartment, Address: "Lägenhetsgatan 2", Price: "1 000 000 kr"},
	})

	result, err := Search(conn, FilterParams{Type: "villa"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(result) != 1 || result[0].Address != "Villavägen 1" {
		t.Errorf("Expected only the villa, got %v", addresses(result))
	}
}

func TestSearchAreaMatchesAnyLocationField(t *testing.T) {
	conn := setupTestDB(t)
	seedProperties(t, conn, []models.Property{
		{Type: models.TypeVilla, Address: "Strandvagen 12", Area: "Ostermalm", Municipality: "Stockholm"},
		{Type: models.TypeVilla, Address: "Storgatan 3", Area: "Centrum", Municipality: "Solna"},
		{Type: models.TypeVilla, Address: "Solnavagen 9", Area: "Rasunda", Municipality: "Sundbyberg"},
	})

	// Matches area, municipality and address respectively.
	for _, tc := range []struct {
		query string
		want  int
	}{
		{"OSTERMALM", 1},
		{"solna", 2},
		{"Storgatan", 1},
		{"ingenstans", 0},
	} {
		result, err := Search(conn, FilterParams{Area: tc.query})
		if err != nil {
			t.Fatalf("Search(%q) failed: %v", tc.query, err)
		}
		if len(result) != tc.want {
			t.Errorf("Search(area=%q) returned %d properties, want %d", tc.query, len(result), tc.want)
		}
	}
}

func TestSearchAreaTreatsPatternCharactersLiterally(t *testing.T) {
	conn := setupTestDB(t)
	seedProperties(t, conn, []models.Property{
		{Type: models.TypeVilla, Address: "Storgatan 1", Area: "Centrum"},
		{Type: models.TypeVilla, Address: "Storgatan 2", Area: "50% Centrum"},
	})

	// A bare wildcard only matches listings that contain it literally.
	result, err := Search(conn, FilterParams{Area: "%"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(result) != 1 || result[0].Address != "Storgatan 2" {
		t.Errorf("Expected only the literal-percent listing, got %v", addresses(result))
	}

	result, err = Search(conn, FilterParams{Area: "C_ntrum"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("Underscore should not act as a wildcard, got %v", addresses(result))
	}
}

func TestSearchRoomAndAreaBounds(t *testing.T) {
	conn := setupTestDB(t)
	seedProperties(t, conn, []models.Property{
		{Type: models.TypeVilla, Address: "Small", Rooms: 2, Sqm: 45},
		{Type: models.TypeVilla, Address: "Medium", Rooms: 4, Sqm: 95},
		{Type: models.TypeVilla, Address: "Large", Rooms: 7, Sqm: 210},
	})

	result, err := Search(conn, FilterParams{MinRooms: "3", MaxRooms: "5"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(result) != 1 || result[0].Address != "Medium" {
		t.Errorf("Expected only Medium, got %v", addresses(result))
	}

	result, err = Search(conn, FilterParams{MinArea: "90"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(result) != 2 {
		t.Errorf("Expected 2 properties with sqm >= 90, got %v", addresses(result))
	}
}

func TestSearchPriceBoundsRunInMemory(t *testing.T) {
	conn := setupTestDB(t)
	seedProperties(t, conn, []models.Property{
		{Type: models.TypeVilla, Address: "Billig", Price: "2 500 000 kr"},
		{Type: models.TypeVilla, Address: "Dyr", Price: "3 000 000 kr"},
	})

	result, err := Search(conn, FilterParams{MinPrice: "2600000"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(result) != 1 || result[0].Address != "Dyr" {
		t.Errorf("Expected only the 3M listing, got %v", addresses(result))
	}

	result, err = Search(conn, FilterParams{MaxPrice: "2600000"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(result) != 1 || result[0].Address != "Billig" {
		t.Errorf("Expected only the 2.5M listing, got %v", addresses(result))
	}
}

func TestSearchPriceNarrowsOtherPredicates(t *testing.T) {
	conn := setupTestDB(t)
	seedProperties(t, conn, []models.Property{
		{Type: models.TypeVilla, Address: "Match", Rooms: 5, Price: "4 000 000 kr"},
		{Type: models.TypeVilla, Address: "Too cheap", Rooms: 5, Price: "1 000 000 kr"},
		{Type: models.TypeApartment, Address: "Wrong type", Rooms: 5, Price: "4 000 000 kr"},
	})

	result, err := Search(conn, FilterParams{Type: "Villa", MinRooms: "4", MinPrice: "2000000"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(result) != 1 || result[0].Address != "Match" {
		t.Errorf("Expected only Match, got %v", addresses(result))
	}
}

func TestSearchInvalidBoundsIgnored(t *testing.T) {
	conn := setupTestDB(t)
	seedProperties(t, conn, []models.Property{
		{Type: models.TypeVilla, Address: "A", Rooms: 2, Price: "1 000 000 kr"},
		{Type: models.TypeVilla, Address: "B", Rooms: 6, Price: "9 000 000 kr"},
	})

	result, err := Search(conn, FilterParams{MinPrice: "cheap", MinRooms: "many"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(result) != 2 {
		t.Errorf("Unparsable bounds should be skipped, got %v", addresses(result))
	}
}

func TestSearchUnpricedListingExcludedByMinPrice(t *testing.T) {
	conn := setupTestDB(t)
	seedProperties(t, conn, []models.Property{
		{Type: models.TypeVilla, Address: "Priced", Price: "5 000 000 kr"},
		{Type: models.TypeVilla, Address: "Unpriced", Price: "Pris saknas"},
	})

	// A malformed price parses to zero, so any positive floor excludes it.
	result, err := Search(conn, FilterParams{MinPrice: "1"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(result) != 1 || result[0].Address != "Priced" {
		t.Errorf("Expected only the priced listing, got %v", addresses(result))
	}
}
