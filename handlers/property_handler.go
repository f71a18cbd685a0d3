// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"

	"daarla-server/db"
	"daarla-server/listings"
	"daarla-server/models"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ListPropertiesHandler godoc
// @Summary      List properties
// @Description  Lists catalog properties, optionally narrowed by filter query parameters.
// @Tags         properties
// @Produce      json
// @Param        area       query  string  false  "Substring match against area, municipality or address"
// @Param        min_rooms  query  string  false  "Minimum room count (inclusive)"
// @Param        max_rooms  query  string  false  "Maximum room count (inclusive)"
// @Param        min_area   query  string  false  "Minimum living area in sqm (inclusive)"
// @Param        max_area   query  string  false  "Maximum living area in sqm (inclusive)"
// @Param        type       query  string  false  "Property type, case-insensitive exact match"
// @Param        min_price  query  string  false  "Minimum price (inclusive)"
// @Param        max_price  query  string  false  "Maximum price (inclusive)"
// @Success      200 {array}  models.Property   "Matching properties"
// @Failure      500 {object} echo.HTTPError    "Internal server error"
// @Router       /v1/properties [get]
func ListPropertiesHandler(c echo.Context) error {
	logger := c.Logger()

	params := listings.FilterParams{
		Area:     c.QueryParam("area"),
		MinRooms: c.QueryParam("min_rooms"),
		MaxRooms: c.QueryParam("max_rooms"),
		MinArea:  c.QueryParam("min_area"),
		MaxArea:  c.QueryParam("max_area"),
		Type:     c.QueryParam("type"),
		MinPrice: c.QueryParam("min_price"),
		MaxPrice: c.QueryParam("max_price"),
	}

	properties, err := listings.Search(db.Conn, params)
	if err != nil {
		logger.Errorf("Failed to search properties: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, properties)
}

// GetPropertyHandler godoc
// @Summary      Get a property
// @Tags         properties
// @Produce      json
// @Param        id  path  int  true  "Property ID"
// @Success      200 {object} models.Property "Property"
// @Failure      404 {object} echo.HTTPError  "Property not found"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /v1/properties/{id} [get]
func GetPropertyHandler(c echo.Context) error {
	logger := c.Logger()

	property := models.Property{}
	err := db.Conn.
		Preload("Broker").
		Preload("Images").
		Preload("Facts").
		Where("id = ?", c.Param("id")).
		First(&property).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &echo.HTTPError{
				Code:    http.StatusNotFound,
				Message: "Property not found",
			}
		}
		logger.Errorf("Failed to find property: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, property)
}

func validatePropertyRequest(req PropertyRequest) *echo.HTTPError {
	if req.Type == "" {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "type field is required",
		}
	}
	if !models.ValidPropertyType(req.Type) {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "type field must be one of: Villa, Apartment, House",
		}
	}
	if req.Address == "" {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "address field is required",
		}
	}
	if req.RenovationLevel != "" && !models.ValidRenovationLevel(req.RenovationLevel) {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "renovation_level field must be one of: none, basic, plus, premium",
		}
	}
	return nil
}

// CreatePropertyHandler godoc
// @Summary      Create a property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization    header  string           true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        propertyRequest  body    PropertyRequest  true  "Property payload"
// @Success      201 {object} models.Property "Property created"
// @Failure      400 {object} echo.HTTPError  "Bad request"
// @Failure      401 {object} echo.HTTPError  "Unauthorized"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /v1/properties [post]
func CreatePropertyHandler(c echo.Context) error {
	logger := c.Logger()

	var req PropertyRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid create property request payload:", err)
		return echo.ErrBadRequest
	}

	if httpErr := validatePropertyRequest(req); httpErr != nil {
		logger.Error(httpErr.Message)
		return httpErr
	}

	renovationLevel := req.RenovationLevel
	if renovationLevel == "" {
		renovationLevel = models.RenovationNone
	}

	property := models.Property{
		Type:            req.Type,
		Address:         req.Address,
		Area:            req.Area,
		Municipality:    req.Municipality,
		Price:           req.Price,
		Sqm:             req.Sqm,
		Rooms:           req.Rooms,
		Fee:             req.Fee,
		Published:       req.Published,
		IsBidding:       req.IsBidding,
		RenovationLevel: renovationLevel,
		Description:     req.Description,
		BrokerID:        req.BrokerID,
	}

	if err := db.Conn.Create(&property).Error; err != nil {
		logger.Errorf("Failed to create property: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("Property created successfully.")
	return c.JSON(http.StatusCreated, property)
}

// UpdatePropertyHandler godoc
// @Summary      Update a property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization    header  string           true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        id               path    int              true  "Property ID"
// @Param        propertyRequest  body    PropertyRequest  true  "Property payload"
// @Success      200 {object} models.Property "Property updated"
// @Failure      400 {object} echo.HTTPError  "Bad request"
// @Failure      401 {object} echo.HTTPError  "Unauthorized"
// @Failure      404 {object} echo.HTTPError  "Property not found"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /v1/properties/{id} [put]
func UpdatePropertyHandler(c echo.Context) error {
	logger := c.Logger()

	property := models.Property{}
	if err := db.Conn.Where("id = ?", c.Param("id")).First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &echo.HTTPError{
				Code:    http.StatusNotFound,
				Message: "Property not found",
			}
		}
		logger.Errorf("Failed to find property: %v", err)
		return echo.ErrInternalServerError
	}

	var req PropertyRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid update property request payload:", err)
		return echo.ErrBadRequest
	}

	if httpErr := validatePropertyRequest(req); httpErr != nil {
		logger.Error(httpErr.Message)
		return httpErr
	}

	property.Type = req.Type
	property.Address = req.Address
	property.Area = req.Area
	property.Municipality = req.Municipality
	property.Price = req.Price
	property.Sqm = req.Sqm
	property.Rooms = req.Rooms
	property.Fee = req.Fee
	property.Published = req.Published
	property.IsBidding = req.IsBidding
	if req.RenovationLevel != "" {
		property.RenovationLevel = req.RenovationLevel
	}
	property.Description = req.Description
	property.BrokerID = req.BrokerID

	if err := db.Conn.Save(&property).Error; err != nil {
		logger.Errorf("Failed to update property: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, property)
}

// DeletePropertyHandler godoc
// @Summary      Delete a property
// @Description  Deletes a property along with its images and facts.
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        id             path    int     true  "Property ID"
// @Success      200 {object} GenericResponse "Property deleted"
// @Failure      401 {object} echo.HTTPError  "Unauthorized"
// @Failure      404 {object} echo.HTTPError  "Property not found"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /v1/properties/{id} [delete]
func DeletePropertyHandler(c echo.Context) error {
	logger := c.Logger()

	property := models.Property{}
	if err := db.Conn.Where("id = ?", c.Param("id")).First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &echo.HTTPError{
				Code:    http.StatusNotFound,
				Message: "Property not found",
			}
		}
		logger.Errorf("Failed to find property: %v", err)
		return echo.ErrInternalServerError
	}

	tx := db.Conn.Begin()
	if tx.Error != nil {
		logger.Errorf("Transaction begin failed: %v", tx.Error)
		return echo.ErrInternalServerError
	}

	if err := tx.Where("property_id = ?", property.ID).Delete(&models.PropertyImage{}).Error; err != nil {
		tx.Rollback()
		logger.Errorf("Failed to delete property images: %v", err)
		return echo.ErrInternalServerError
	}

	if err := tx.Where("property_id = ?", property.ID).Delete(&models.PropertyFact{}).Error; err != nil {
		tx.Rollback()
		logger.Errorf("Failed to delete property facts: %v", err)
		return echo.ErrInternalServerError
	}

	if err := tx.Delete(&property).Error; err != nil {
		tx.Rollback()
		logger.Errorf("Failed to delete property: %v", err)
		return echo.ErrInternalServerError
	}

	if err := tx.Commit().Error; err != nil {
		logger.Errorf("Transaction commit failed: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("Property deleted successfully.")
	return c.JSON(http.StatusOK, GenericResponse{Message: "Property deleted successfully"})
}
