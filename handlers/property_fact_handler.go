// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"

	"daarla-server/db"
	"daarla-server/models"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ListPropertyFactsHandler godoc
// @Summary      List property facts
// @Tags         property-facts
// @Produce      json
// @Param        property_id  query  int  false  "Filter by property ID"
// @Success      200 {array}  models.PropertyFact "Facts"
// @Failure      500 {object} echo.HTTPError      "Internal server error"
// @Router       /v1/property-facts [get]
func ListPropertyFactsHandler(c echo.Context) error {
	logger := c.Logger()

	query := db.Conn.Order("id")
	if propertyID := c.QueryParam("property_id"); propertyID != "" {
		query = query.Where("property_id = ?", propertyID)
	}

	var facts []models.PropertyFact
	if err := query.Find(&facts).Error; err != nil {
		logger.Errorf("Failed to list property facts: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, facts)
}

func validatePropertyFactRequest(req PropertyFactRequest) *echo.HTTPError {
	if req.Label == "" {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "label field is required",
		}
	}
	if req.Value == "" {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "value field is required",
		}
	}
	return nil
}

// CreatePropertyFactHandler godoc
// @Summary      Add a property fact
// @Tags         property-facts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization        header  string               true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        propertyFactRequest  body    PropertyFactRequest  true  "Fact payload"
// @Success      201 {object} models.PropertyFact "Fact created"
// @Failure      400 {object} echo.HTTPError      "Bad request"
// @Failure      401 {object} echo.HTTPError      "Unauthorized"
// @Failure      500 {object} echo.HTTPError      "Internal server error"
// @Router       /v1/property-facts [post]
func CreatePropertyFactHandler(c echo.Context) error {
	logger := c.Logger()

	var req PropertyFactRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid create property fact request payload:", err)
		return echo.ErrBadRequest
	}

	if httpErr := validatePropertyFactRequest(req); httpErr != nil {
		logger.Error(httpErr.Message)
		return httpErr
	}

	if err := db.Conn.Where("id = ?", req.PropertyID).First(&models.Property{}).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Property not found for fact.")
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: "property_id field must reference an existing property",
			}
		}
		logger.Errorf("Failed to find property: %v", err)
		return echo.ErrInternalServerError
	}

	fact := models.PropertyFact{
		PropertyID: req.PropertyID,
		Label:      req.Label,
		Value:      req.Value,
	}

	if err := db.Conn.Create(&fact).Error; err != nil {
		logger.Errorf("Failed to create property fact: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusCreated, fact)
}

// UpdatePropertyFactHandler godoc
// @Summary      Update a property fact
// @Tags         property-facts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization        header  string               true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        id                   path    int                  true  "Fact ID"
// @Param        propertyFactRequest  body    PropertyFactRequest  true  "Fact payload"
// @Success      200 {object} models.PropertyFact "Fact updated"
// @Failure      400 {object} echo.HTTPError      "Bad request"
// @Failure      401 {object} echo.HTTPError      "Unauthorized"
// @Failure      404 {object} echo.HTTPError      "Fact not found"
// @Failure      500 {object} echo.HTTPError      "Internal server error"
// @Router       /v1/property-facts/{id} [put]
func UpdatePropertyFactHandler(c echo.Context) error {
	logger := c.Logger()

	fact := models.PropertyFact{}
	if err := db.Conn.Where("id = ?", c.Param("id")).First(&fact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &echo.HTTPError{
				Code:    http.StatusNotFound,
				Message: "Property fact not found",
			}
		}
		logger.Errorf("Failed to find property fact: %v", err)
		return echo.ErrInternalServerError
	}

	var req PropertyFactRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid update property fact request payload:", err)
		return echo.ErrBadRequest
	}

	if httpErr := validatePropertyFactRequest(req); httpErr != nil {
		logger.Error(httpErr.Message)
		return httpErr
	}

	fact.Label = req.Label
	fact.Value = req.Value

	if err := db.Conn.Save(&fact).Error; err != nil {
		logger.Errorf("Failed to update property fact: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, fact)
}

// DeletePropertyFactHandler godoc
// @Summary      Delete a property fact
// @Tags         property-facts
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        id             path    int     true  "Fact ID"
// @Success      200 {object} GenericResponse "Fact deleted"
// @Failure      401 {object} echo.HTTPError  "Unauthorized"
// @Failure      404 {object} echo.HTTPError  "Fact not found"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /v1/property-facts/{id} [delete]
func DeletePropertyFactHandler(c echo.Context) error {
	logger := c.Logger()

	fact := models.PropertyFact{}
	if err := db.Conn.Where("id = ?", c.Param("id")).First(&fact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &echo.HTTPError{
				Code:    http.StatusNotFound,
				Message: "Property fact not found",
			}
		}
		logger.Errorf("Failed to find property fact: %v", err)
		return echo.ErrInternalServerError
	}

	if err := db.Conn.Delete(&fact).Error; err != nil {
		logger.Errorf("Failed to delete property fact: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, GenericResponse{Message: "Property fact deleted successfully"})
}
