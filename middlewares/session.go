// SPDX-License-Identifier: GPL-3.0-only

package middlewares

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"daarla-server/commons"
	"daarla-server/db"
	"daarla-server/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var errNoSession = errors.New("no valid session")

// ResolveSession validates the Bearer token on the request and returns the
// live session row it addresses. It never writes a response; callers decide
// whether a missing session is an error.
func ResolveSession(c echo.Context) (models.Session, error) {
	session := models.Session{}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return session, errNoSession
	}
	sessionToken := strings.TrimPrefix(authHeader, "Bearer ")

	token, err := jwt.Parse(sessionToken, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(commons.GetEnv("SECRET_KEY", "default_very_secret_key")), nil
	})
	if err != nil || !token.Valid {
		return session, errNoSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return session, errNoSession
	}

	sessionID := claims["sid"]
	userID := claims["uid"]
	tokenID := claims["jti"]

	err = db.Conn.Where("id = ? AND user_id = ? AND token = ?", sessionID, userID, tokenID).First(&session).Error
	if err != nil || session.ExpiresAt == nil || session.ExpiresAt.Before(time.Now()) {
		return models.Session{}, errNoSession
	}

	now := time.Now()
	session.LastUsedAt = &now
	if err := db.Conn.Save(&session).Error; err != nil {
		c.Logger().Error("Failed to update session LastUsedAt: ", err)
	}

	return session, nil
}

func VerifySessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, err := ResolveSession(c)
		if err != nil {
			c.Logger().Error("Session not found or expired.")
			return &echo.HTTPError{
				Code:    http.StatusUnauthorized,
				Message: "Invalid or expired session token, please login again",
			}
		}

		c.Set("session", session)
		return next(c)
	}
}

// GetAuthenticatedUser resolves the account bound to the session placed in
// the request context by VerifySessionMiddleware.
func GetAuthenticatedUser(c echo.Context) (*models.User, error) {
	if session, ok := c.Get("session").(models.Session); ok {
		var user models.User
		if err := db.Conn.Where("id = ?", session.UserID).First(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
	return nil, errors.New("no authenticated user found")
}
