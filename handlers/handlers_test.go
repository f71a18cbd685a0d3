// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"daarla-server/db"
	"daarla-server/models"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
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
	db.Conn = conn

	// Keep password hashing cheap and email delivery offline in tests.
	t.Setenv("ARGON2_MEMORY", "8192")
	t.Setenv("ARGON2_TIME", "1")
	t.Setenv("MOCK_EMAIL_NOTIFICATIONS", "true")
	t.Setenv("SECRET_KEY", "test-secret-key")
}

func doJSON(t *testing.T, handler echo.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("Failed to decode response body %q: %v", rec.Body.String(), err)
	}
}

func registerTestUser(t *testing.T, username, email, password string) models.User {
	t.Helper()
	body := `{"username":"` + username + `","email":"` + email + `","password":"` + password + `","password_confirm":"` + password + `"}`
	rec := doJSON(t, RegisterHandler, http.MethodPost, "/v1/auth/register", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Registration failed with status %d: %s", rec.Code, rec.Body.String())
	}

	var user models.User
	if err := db.Conn.Where("username = ?", username).First(&user).Error; err != nil {
		t.Fatalf("Registered user not found: %v", err)
	}
	return user
}
