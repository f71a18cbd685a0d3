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

// ListBrokersHandler godoc
// @Summary      List brokers
// @Tags         brokers
// @Produce      json
// @Success      200 {array}  models.Broker  "Brokers"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/brokers [get]
func ListBrokersHandler(c echo.Context) error {
	logger := c.Logger()

	var brokers []models.Broker
	if err := db.Conn.Order("id").Find(&brokers).Error; err != nil {
		logger.Errorf("Failed to list brokers: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, brokers)
}

// GetBrokerHandler godoc
// @Summary      Get a broker
// @Tags         brokers
// @Produce      json
// @Param        id  path  int  true  "Broker ID"
// @Success      200 {object} models.Broker  "Broker"
// @Failure      404 {object} echo.HTTPError "Broker not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/brokers/{id} [get]
func GetBrokerHandler(c echo.Context) error {
	logger := c.Logger()

	broker := models.Broker{}
	if err := db.Conn.Where("id = ?", c.Param("id")).First(&broker).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &echo.HTTPError{
				Code:    http.StatusNotFound,
				Message: "Broker not found",
			}
		}
		logger.Errorf("Failed to find broker: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, broker)
}

// CreateBrokerHandler godoc
// @Summary      Create a broker
// @Tags         brokers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string         true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        brokerRequest  body    BrokerRequest  true  "Broker payload"
// @Success      201 {object} models.Broker  "Broker created"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/brokers [post]
func CreateBrokerHandler(c echo.Context) error {
	logger := c.Logger()

	var req BrokerRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid create broker request payload:", err)
		return echo.ErrBadRequest
	}

	if req.Name == "" {
		logger.Error("Name is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "name field is required",
		}
	}

	broker := models.Broker{
		Name:     req.Name,
		ImageURL: req.ImageURL,
		Phone:    req.Phone,
		Email:    req.Email,
	}

	if err := db.Conn.Create(&broker).Error; err != nil {
		logger.Errorf("Failed to create broker: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("Broker created successfully.")
	return c.JSON(http.StatusCreated, broker)
}

// UpdateBrokerHandler godoc
// @Summary      Update a broker
// @Tags         brokers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string         true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        id             path    int            true  "Broker ID"
// @Param        brokerRequest  body    BrokerRequest  true  "Broker payload"
// @Success      200 {object} models.Broker  "Broker updated"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Broker not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/brokers/{id} [put]
func UpdateBrokerHandler(c echo.Context) error {
	logger := c.Logger()

	broker := models.Broker{}
	if err := db.Conn.Where("id = ?", c.Param("id")).First(&broker).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &echo.HTTPError{
				Code:    http.StatusNotFound,
				Message: "Broker not found",
			}
		}
		logger.Errorf("Failed to find broker: %v", err)
		return echo.ErrInternalServerError
	}

	var req BrokerRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid update broker request payload:", err)
		return echo.ErrBadRequest
	}

	if req.Name == "" {
		logger.Error("Name is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "name field is required",
		}
	}

	broker.Name = req.Name
	broker.ImageURL = req.ImageURL
	broker.Phone = req.Phone
	broker.Email = req.Email

	if err := db.Conn.Save(&broker).Error; err != nil {
		logger.Errorf("Failed to update broker: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, broker)
}

// DeleteBrokerHandler godoc
// @Summary      Delete a broker
// @Description  Deletes a broker. Properties referencing the broker are detached, not deleted.
// @Tags         brokers
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        id             path    int     true  "Broker ID"
// @Success      200 {object} GenericResponse "Broker deleted"
// @Failure      401 {object} echo.HTTPError  "Unauthorized"
// @Failure      404 {object} echo.HTTPError  "Broker not found"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /v1/brokers/{id} [delete]
func DeleteBrokerHandler(c echo.Context) error {
	logger := c.Logger()

	broker := models.Broker{}
	if err := db.Conn.Where("id = ?", c.Param("id")).First(&broker).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &echo.HTTPError{
				Code:    http.StatusNotFound,
				Message: "Broker not found",
			}
		}
		logger.Errorf("Failed to find broker: %v", err)
		return echo.ErrInternalServerError
	}

	tx := db.Conn.Begin()
	if tx.Error != nil {
		logger.Errorf("Transaction begin failed: %v", tx.Error)
		return echo.ErrInternalServerError
	}

	// Detach listings first so the delete never cascades into the catalog.
	if err := tx.Model(&models.Property{}).Where("broker_id = ?", broker.ID).Update("broker_id", nil).Error; err != nil {
		tx.Rollback()
		logger.Errorf("Failed to detach broker properties: %v", err)
		return echo.ErrInternalServerError
	}

	if err := tx.Delete(&broker).Error; err != nil {
		tx.Rollback()
		logger.Errorf("Failed to delete broker: %v", err)
		return echo.ErrInternalServerError
	}

	if err := tx.Commit().Error; err != nil {
		logger.Errorf("Transaction commit failed: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("Broker deleted successfully.")
	return c.JSON(http.StatusOK, GenericResponse{Message: "Broker deleted successfully"})
}
