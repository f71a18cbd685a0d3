// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"fmt"
	"net/http"

	"daarla-server/commons"
	"daarla-server/db"
	"daarla-server/models"
	"daarla-server/notifications"

	"github.com/labstack/echo/v4"
)

// ContactHandler godoc
// @Summary      Submit a contact message
// @Description  Persists a contact message and notifies the site admin by email.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contactRequest  body  ContactRequest  true  "Contact message"
// @Success      201 {object} GenericResponse "Message received"
// @Failure      400 {object} echo.HTTPError  "Bad request"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /v1/contact [post]
func ContactHandler(c echo.Context) error {
	logger := c.Logger()

	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid contact request payload:", err)
		return echo.ErrBadRequest
	}

	if req.Name == "" {
		logger.Error("Name is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "name field is required",
		}
	}

	if req.Email == "" {
		logger.Error("Email is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "email field is required",
		}
	}

	if req.Message == "" {
		logger.Error("Message is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "message field is required",
		}
	}

	message := models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}

	if err := db.Conn.Create(&message).Error; err != nil {
		logger.Errorf("Failed to store contact message: %v", err)
		return echo.ErrInternalServerError
	}

	phone := "-"
	if req.Phone != nil {
		phone = *req.Phone
	}
	body := fmt.Sprintf(
		"New contact message on Daarla.\n\n"+
			"Name: %s\n"+
			"Email: %s\n"+
			"Phone: %s\n\n"+
			"%s\n",
		req.Name, req.Email, phone, req.Message,
	)

	adminEmail := commons.GetEnv("CONTACT_ADMIN_EMAIL", "admin@daarla.se")
	err := notifications.DispatchNotification(notifications.Email, notifications.SMTP, notifications.NotificationData{
		To:      adminEmail,
		Subject: "New contact message from " + req.Name,
		Body:    body,
	})
	if err != nil {
		// The message is already stored, the admin notification is best effort.
		logger.Errorf("Failed to send contact notification email: %v", err)
	}

	return c.JSON(http.StatusCreated, GenericResponse{
		Message: "Thank you for your message. We will get back to you shortly.",
	})
}
