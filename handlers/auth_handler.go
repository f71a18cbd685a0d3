// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"daarla-server/commons"
	"daarla-server/crypto"
	"daarla-server/db"
	"daarla-server/middlewares"
	"daarla-server/models"
	"daarla-server/passwordcheck"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func generateSessionToken(c echo.Context, user models.User) (string, error) {
	logger := c.Logger()

	sessionToken, err := crypto.GenerateRandomString("st_", 32, "hex")
	if err != nil {
		logger.Errorf("Failed to generate session token: %v", err)
		return "", err
	}

	sessionExp := time.Now().Add(30 * 24 * time.Hour)
	sessionLastUsed := time.Now()
	userAgent := c.Request().UserAgent()
	ipAddress := c.RealIP()

	session := models.Session{
		UserID:     user.ID,
		Token:      sessionToken,
		LastUsedAt: &sessionLastUsed,
		ExpiresAt:  &sessionExp,
		UserAgent:  &userAgent,
		IPAddress:  &ipAddress,
	}
	if err := db.Conn.Create(&session).Error; err != nil {
		logger.Errorf("Failed to create session: %v", err)
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": "https://daarla.se",
		"iat": time.Now().Unix(),
		"sub": user.Username,
		"aud": "https://api.daarla.se",
		"jti": sessionToken,
		"sid": session.ID,
		"uid": user.ID,
		"exp": session.ExpiresAt.Unix(),
	})

	tokenString, err := token.SignedString([]byte(commons.GetEnv("SECRET_KEY", "default_very_secret_key")))
	if err != nil {
		logger.Errorf("Failed to sign token: %v", err)
		return "", err
	}

	return tokenString, nil
}

func userDetails(user models.User) UserDetails {
	details := UserDetails{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}

	profile := models.Profile{}
	if err := db.Conn.Where("user_id = ?", user.ID).First(&profile).Error; err == nil && profile.PhoneNumber != nil {
		details.PhoneNumber = *profile.PhoneNumber
	}
	return details
}

// RegisterHandler godoc
// @Summary      Register a new user
// @Description  Creates a new account with its profile and establishes a session.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        registerRequest  body  RegisterRequest  true  "Registration payload"
// @Success      201 {object} AuthResponse 	 "Registration successful"
// @Failure      400 {object} echo.HTTPError     "Bad request, missing or invalid fields"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/auth/register [post]
func RegisterHandler(c echo.Context) error {
	logger := c.Logger()

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid register request payload:", err)
		return echo.ErrBadRequest
	}

	if req.Username == "" {
		logger.Error("Username is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "username field is required",
		}
	}

	if req.Email == "" {
		logger.Error("Email is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "email field is required",
		}
	}

	if req.Password == "" {
		logger.Error("Password is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "password field is required",
		}
	}

	if err := passwordcheck.ValidatePassword(c.Request().Context(), req.Password); err != nil {
		logger.Error("Password validation failed: ", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: fmt.Sprintf("Invalid password: %v", err.Error()),
		}
	}

	// Byte-equal comparison; confirmation is never normalized.
	if req.Password != req.PasswordConfirm {
		logger.Error("Password confirmation does not match.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Passwords do not match.",
		}
	}

	count := db.Conn.Where("username = ?", req.Username).First(&models.User{}).RowsAffected
	if count > 0 {
		logger.Errorf("This username is already taken.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "This username is already taken, please try another one.",
		}
	}

	newCrypto := crypto.NewCrypto()
	hash, err := newCrypto.HashPassword(req.Password)
	if err != nil {
		logger.Errorf("Failed to hash password: %v", err)
		return echo.ErrInternalServerError
	}

	user := models.User{
		Username:  req.Username,
		Email:     strings.ToLower(req.Email),
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	tx := db.Conn.Begin()
	if tx.Error != nil {
		logger.Errorf("Transaction begin failed: %v", tx.Error)
		return echo.ErrInternalServerError
	}

	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		logger.Errorf("Failed to create user: %v", err)
		return echo.ErrInternalServerError
	}

	// The profile is part of the same transaction, so an account is never
	// observable without one.
	if err := tx.Create(&models.Profile{UserID: user.ID}).Error; err != nil {
		tx.Rollback()
		logger.Errorf("Failed to create profile: %v", err)
		return echo.ErrInternalServerError
	}

	if err := tx.Commit().Error; err != nil {
		logger.Errorf("Transaction commit failed: %v", err)
		return echo.ErrInternalServerError
	}

	sessionToken, err := generateSessionToken(c, user)
	if err != nil {
		logger.Errorf("Failed to generate session token after registration: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("User registered successfully")
	return c.JSON(http.StatusCreated, AuthResponse{
		Message:      "User registered successfully",
		SessionToken: sessionToken,
		User:         userDetails(user),
	})
}

// LoginHandler godoc
// @Summary      Login a user
// @Description  Authenticates by username or email and returns a session token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        loginRequest  body  LoginRequest  true  "Login request payload"
// @Success      200 {object} AuthResponse 	 "Login successful"
// @Failure      400 {object} echo.HTTPError     "Bad request, missing required fields"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/auth/login [post]
func LoginHandler(c echo.Context) error {
	logger := c.Logger()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid login request payload:", err)
		return echo.ErrBadRequest
	}

	if req.Username == "" {
		logger.Error("Username is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "username field is required",
		}
	}

	if req.Password == "" {
		logger.Error("Password is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "password field is required",
		}
	}

	newCrypto := crypto.NewCrypto()
	user := models.User{}

	// The identifier resolves to at most one account before any hashing: a
	// username match wins, otherwise an unambiguous email match. Resolving
	// first keeps every path at exactly one argon2id comparison, so failures
	// never reveal whether the identifier exists.
	err := db.Conn.Where("username = ?", req.Username).First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Errorf("Failed to find user: %v", err)
		return echo.ErrInternalServerError
	}
	found := err == nil

	if !found {
		// Only an unambiguous email match is usable since email is not
		// unique.
		var matches []models.User
		if err := db.Conn.Where("LOWER(email) = ?", strings.ToLower(req.Username)).Limit(2).Find(&matches).Error; err != nil {
			logger.Errorf("Failed to find user by email: %v", err)
			return echo.ErrInternalServerError
		}
		if len(matches) == 1 {
			user = matches[0]
			found = true
		}
	}

	authenticated := false
	if found {
		authenticated = newCrypto.VerifyPassword(req.Password, user.Password) == nil
	} else {
		newCrypto.DummyVerifyPassword(req.Password)
	}

	if !authenticated {
		logger.Error("Authentication failed.")
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid email or password",
		}
	}

	sessionToken, err := generateSessionToken(c, user)
	if err != nil {
		logger.Errorf("Failed to generate session token after login: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, AuthResponse{
		Message:      "Login successful",
		SessionToken: sessionToken,
		User:         userDetails(user),
	})
}

// LogoutHandler godoc
// @Summary      Logout a user
// @Description  Logs out a user and invalidates the session.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Success      200 {object} GenericResponse "Logout successful"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/auth/logout [post]
func LogoutHandler(c echo.Context) error {
	logger := c.Logger()

	session, ok := c.Get("session").(models.Session)
	if !ok {
		logger.Error("Session not found in context.")
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired session token, please login again",
		}
	}

	if err := db.Conn.Unscoped().Delete(&session).Error; err != nil {
		logger.Errorf("Failed to delete session: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("User logged out successfully")
	return c.JSON(http.StatusOK, GenericResponse{Message: "Logout successful"})
}

// CurrentUserHandler godoc
// @Summary      Get the current user
// @Description  Returns the identity bound to the active session. Anonymous callers still receive a CSRF cookie.
// @Tags         auth
// @Produce      json
// @Success      200 {object} UserDetails     "Current user"
// @Failure      401 {object} echo.HTTPError  "Not authenticated"
// @Router       /v1/auth/me [get]
func CurrentUserHandler(c echo.Context) error {
	logger := c.Logger()

	// Guests need the anti-forgery cookie too, so it is set before any
	// authentication check.
	if csrfToken, err := crypto.GenerateRandomString("", 16, "hex"); err == nil {
		c.SetCookie(&http.Cookie{
			Name:     "csrftoken",
			Value:    csrfToken,
			Path:     "/",
			SameSite: http.SameSiteLaxMode,
		})
	}

	session, err := middlewares.ResolveSession(c)
	if err != nil {
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Not authenticated",
		}
	}

	var user models.User
	if err := db.Conn.Where("id = ?", session.UserID).First(&user).Error; err != nil {
		logger.Errorf("Failed to find user for session: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, userDetails(user))
}

// UpdateUserHandler godoc
// @Summary      Update the current user
// @Description  Partially updates account fields and the profile phone number.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        updateUserRequest  body  UpdateUserRequest  true  "Fields to update"
// @Success      200 {object} UserDetails     "Updated user"
// @Failure      401 {object} echo.HTTPError  "Unauthorized"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /v1/auth/me [patch]
func UpdateUserHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Authentication credentials were not provided.",
		}
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid update user request payload:", err)
		return echo.ErrBadRequest
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}

	if err := db.Conn.Save(user).Error; err != nil {
		logger.Errorf("Failed to update user: %v", err)
		return echo.ErrInternalServerError
	}

	// Re-create the profile if it went missing, then apply the phone number.
	profile := models.Profile{}
	if err := db.Conn.Where("user_id = ?", user.ID).FirstOrCreate(&profile, models.Profile{UserID: user.ID}).Error; err != nil {
		logger.Errorf("Failed to load profile: %v", err)
		return echo.ErrInternalServerError
	}
	if req.PhoneNumber != nil {
		profile.PhoneNumber = req.PhoneNumber
		if err := db.Conn.Save(&profile).Error; err != nil {
			logger.Errorf("Failed to update profile: %v", err)
			return echo.ErrInternalServerError
		}
	}

	return c.JSON(http.StatusOK, userDetails(*user))
}

// GuestUserHandler godoc
// @Summary      Create a guest identity
// @Description  Returns a fresh guest identifier. Nothing is persisted.
// @Tags         auth
// @Produce      json
// @Success      201 {object} GuestResponse "Guest user created"
// @Router       /v1/auth/guest [post]
func GuestUserHandler(c echo.Context) error {
	return c.JSON(http.StatusCreated, GuestResponse{
		Message: "Guest user created",
		GuestID: uuid.NewString(),
		IsGuest: true,
	})
}
