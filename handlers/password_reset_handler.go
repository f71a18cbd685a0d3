// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"daarla-server/commons"
	"daarla-server/crypto"
	"daarla-server/db"
	"daarla-server/models"
	"daarla-server/notifications"
	"daarla-server/passwordcheck"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Both the match and no-match branches of a reset request return this exact
// body, so responses reveal nothing about which emails have accounts.
const resetRequestMessage = "If an account exists with this email, a reset link has been sent."

// ForgotPasswordHandler godoc
// @Summary      Request password reset
// @Description  Emails a password reset link to the address if it belongs to an account.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        forgotPasswordRequest  body  ForgotPasswordRequest  true  "Forgot password request"
// @Success      200 {object} GenericResponse "Reset link sent if the account exists"
// @Failure      400 {object} echo.HTTPError  "Bad request"
// @Failure      500 {object} echo.HTTPError  "Email dispatch failed"
// @Router       /v1/auth/password-reset/request [post]
func ForgotPasswordHandler(c echo.Context) error {
	logger := c.Logger()

	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid forgot password request payload:", err)
		return echo.ErrBadRequest
	}

	if req.Email == "" {
		logger.Error("Email is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "email field is required",
		}
	}

	var matches []models.User
	if err := db.Conn.Where("LOWER(email) = ?", strings.ToLower(req.Email)).Limit(2).Find(&matches).Error; err != nil {
		logger.Errorf("Failed to find user: %v", err)
		return echo.ErrInternalServerError
	}

	if len(matches) != 1 {
		logger.Error("No unique account for password reset email.")
		return c.JSON(http.StatusOK, GenericResponse{Message: resetRequestMessage})
	}

	user := matches[0]
	newCrypto := crypto.NewCrypto()
	token := newCrypto.MakeResetToken(user.ID, user.Password)
	uid := crypto.EncodeUID(user.ID)

	frontendURL := commons.GetEnv("FRONTEND_URL", "http://localhost:3000")
	resetURL := fmt.Sprintf("%s/reset-password/%s/%s", frontendURL, uid, token)

	body := fmt.Sprintf(
		"Hello!\n\n"+
			"We received a request to reset the password for your account on Daarla.\n\n"+
			"Please click the link below to choose a new password:\n\n"+
			"%s\n\n"+
			"If you didn't request this, you can safely ignore this email.\n\n"+
			"Best regards,\n"+
			"Daarla Team",
		resetURL,
	)

	toName := strings.TrimSpace(user.FirstName + " " + user.LastName)
	err := notifications.DispatchNotification(notifications.Email, notifications.SMTP, notifications.NotificationData{
		To:      user.Email,
		ToName:  &toName,
		Subject: "Reset your password for Daarla",
		Body:    body,
	})
	if err != nil {
		logger.Errorf("Failed to send password reset email: %v", err)
		return &echo.HTTPError{
			Code:    http.StatusInternalServerError,
			Message: "Failed to send email. Please ensure your SMTP settings are correct.",
		}
	}

	logger.Infof("Password reset email sent successfully.")
	return c.JSON(http.StatusOK, GenericResponse{Message: resetRequestMessage})
}

// ResetPasswordHandler godoc
// @Summary      Confirm password reset
// @Description  Sets a new password using the uid and token from the reset link.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        resetPasswordRequest  body  ResetPasswordRequest  true  "Password reset confirmation"
// @Success      200 {object} GenericResponse "Password reset successfully"
// @Failure      400 {object} echo.HTTPError  "Bad request, invalid link or invalid token"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /v1/auth/password-reset/confirm [post]
func ResetPasswordHandler(c echo.Context) error {
	logger := c.Logger()

	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid password reset request payload:", err)
		return echo.ErrBadRequest
	}

	if req.UID == "" {
		logger.Error("Encoded user id is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "uid field is required",
		}
	}

	token := strings.TrimSpace(req.Token)
	if token == "" {
		logger.Error("Password reset token is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "token field is required",
		}
	}

	if req.NewPassword == "" {
		logger.Error("New password is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "new_password field is required",
		}
	}

	userID, err := crypto.DecodeUID(req.UID)
	if err != nil {
		logger.Error("Failed to decode reset link uid: ", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid reset link",
		}
	}

	user := models.User{}
	if err := db.Conn.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("No user behind reset link uid.")
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: "Invalid reset link",
			}
		}
		logger.Errorf("Failed to find user: %v", err)
		return echo.ErrInternalServerError
	}

	newCrypto := crypto.NewCrypto()
	if !newCrypto.CheckResetToken(user.ID, user.Password, token) {
		logger.Error("Invalid or expired password reset token.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid or expired token",
		}
	}

	// The policy check runs only once the link and token are proven good, so
	// rejection messages never mix the two concerns.
	if err := passwordcheck.ValidatePassword(c.Request().Context(), req.NewPassword); err != nil {
		logger.Error("New password validation failed: ", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid new password: " + err.Error(),
		}
	}

	hashedNewPassword, err := newCrypto.HashPassword(req.NewPassword)
	if err != nil {
		logger.Errorf("Failed to hash new password: %v", err)
		return echo.ErrInternalServerError
	}

	tx := db.Conn.Begin()
	if tx.Error != nil {
		logger.Errorf("Transaction begin failed: %v", tx.Error)
		return echo.ErrInternalServerError
	}

	// Persisting the new hash is what invalidates this token and every
	// other token issued against the old hash.
	if err := tx.Model(&user).Update("password", hashedNewPassword).Error; err != nil {
		tx.Rollback()
		logger.Errorf("Failed to update user password: %v", err)
		return echo.ErrInternalServerError
	}

	if err := tx.Unscoped().Where("user_id = ?", user.ID).Delete(&models.Session{}).Error; err != nil {
		tx.Rollback()
		logger.Errorf("Failed to invalidate user sessions: %v", err)
		return echo.ErrInternalServerError
	}

	if err := tx.Commit().Error; err != nil {
		logger.Errorf("Transaction commit failed: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("Password reset successful for user ID: %d", user.ID)
	return c.JSON(http.StatusOK, GenericResponse{
		Message: "Password has been reset successfully",
	})
}
