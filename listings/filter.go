// SPDX-License-Identifier: GPL-3.0-only

package listings

import (
	"strconv"
	"strings"

	"daarla-server/models"

	"gorm.io/gorm"
)

// FilterParams carries the raw, string-typed query values recognized by
// Search. Empty fields impose no constraint; unparsable numeric bounds are
// skipped rather than treated as errors.
type FilterParams struct {
	Area     string
	MinRooms string
	MaxRooms string
	MinArea  string
	MaxArea  string
	Type     string
	MinPrice string
	MaxPrice string
}

// Search runs the listing filter pipeline. Everything that maps onto a
// comparable column (area text, rooms, living area, type) is pushed into the
// storage query to narrow the candidate set first. Price is stored as
// display text, so the price bounds run as a final in-memory pass over the
// already-narrowed candidates, preserving storage order. The result is
// always a fully materialized slice.
func Search(conn *gorm.DB, params FilterParams) ([]models.Property, error) {
	query := conn.
		Preload("Broker").
		Preload("Images").
		Preload("Facts")

	if params.Area != "" {
		pattern := "%" + escapeLike(strings.ToLower(params.Area)) + "%"
		query = query.Where(
			"LOWER(area) LIKE ? ESCAPE '\\' OR LOWER(municipality) LIKE ? ESCAPE '\\' OR LOWER(address) LIKE ? ESCAPE '\\'",
			pattern, pattern, pattern,
		)
	}

	if v, ok := parseBound(params.MinRooms); ok {
		query = query.Where("rooms >= ?", v)
	}
	if v, ok := parseBound(params.MaxRooms); ok {
		query = query.Where("rooms <= ?", v)
	}
	if v, ok := parseBound(params.MinArea); ok {
		query = query.Where("sqm >= ?", v)
	}
	if v, ok := parseBound(params.MaxArea); ok {
		query = query.Where("sqm <= ?", v)
	}

	if params.Type != "" {
		query = query.Where("LOWER(type) = ?", strings.ToLower(params.Type))
	}

	var properties []models.Property
	if err := query.Order("id").Find(&properties).Error; err != nil {
		return nil, err
	}

	minPrice, hasMin := parseBound(params.MinPrice)
	maxPrice, hasMax := parseBound(params.MaxPrice)
	if !hasMin && !hasMax {
		return properties, nil
	}

	filtered := make([]models.Property, 0, len(properties))
	for _, property := range properties {
		price := ParsePrice(property.Price)
		if hasMin && price < minPrice {
			continue
		}
		if hasMax && price > maxPrice {
			continue
		}
		filtered = append(filtered, property)
	}
	return filtered, nil
}

// escapeLike neutralizes LIKE metacharacters so filter text only ever
// matches as a literal substring.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func parseBound(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
