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

// ListPropertyImagesHandler godoc
// @Summary      List property images
// @Tags         property-images
// @Produce      json
// @Param        property_id  query  int  false  "Filter by property ID"
// @Success      200 {array}  models.PropertyImage "Images"
// @Failure      500 {object} echo.HTTPError       "Internal server error"
// @Router       /v1/property-images [get]
func ListPropertyImagesHandler(c echo.Context) error {
	logger := c.Logger()

	query := db.Conn.Order("id")
	if propertyID := c.QueryParam("property_id"); propertyID != "" {
		query = query.Where("property_id = ?", propertyID)
	}

	var images []models.PropertyImage
	if err := query.Find(&images).Error; err != nil {
		logger.Errorf("Failed to list property images: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, images)
}

// CreatePropertyImageHandler godoc
// @Summary      Add a property image
// @Tags         property-images
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization         header  string                true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        propertyImageRequest  body    PropertyImageRequest  true  "Image payload"
// @Success      201 {object} models.PropertyImage "Image created"
// @Failure      400 {object} echo.HTTPError       "Bad request"
// @Failure      401 {object} echo.HTTPError       "Unauthorized"
// @Failure      500 {object} echo.HTTPError       "Internal server error"
// @Router       /v1/property-images [post]
func CreatePropertyImageHandler(c echo.Context) error {
	logger := c.Logger()

	var req PropertyImageRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid create property image request payload:", err)
		return echo.ErrBadRequest
	}

	if req.ImageURL == "" {
		logger.Error("Image URL is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "image_url field is required",
		}
	}

	if err := db.Conn.Where("id = ?", req.PropertyID).First(&models.Property{}).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Property not found for image.")
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: "property_id field must reference an existing property",
			}
		}
		logger.Errorf("Failed to find property: %v", err)
		return echo.ErrInternalServerError
	}

	image := models.PropertyImage{
		PropertyID: req.PropertyID,
		ImageURL:   req.ImageURL,
	}

	if err := db.Conn.Create(&image).Error; err != nil {
		logger.Errorf("Failed to create property image: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusCreated, image)
}

// DeletePropertyImageHandler godoc
// @Summary      Delete a property image
// @Tags         property-images
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        id             path    int     true  "Image ID"
// @Success      200 {object} GenericResponse "Image deleted"
// @Failure      401 {object} echo.HTTPError  "Unauthorized"
// @Failure      404 {object} echo.HTTPError  "Image not found"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /v1/property-images/{id} [delete]
func DeletePropertyImageHandler(c echo.Context) error {
	logger := c.Logger()

	image := models.PropertyImage{}
	if err := db.Conn.Where("id = ?", c.Param("id")).First(&image).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &echo.HTTPError{
				Code:    http.StatusNotFound,
				Message: "Property image not found",
			}
		}
		logger.Errorf("Failed to find property image: %v", err)
		return echo.ErrInternalServerError
	}

	if err := db.Conn.Delete(&image).Error; err != nil {
		logger.Errorf("Failed to delete property image: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, GenericResponse{Message: "Property image deleted successfully"})
}
