// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"strings"
	"testing"

	"daarla-server/crypto"
	"daarla-server/db"
	"daarla-server/models"
)

func TestForgotPasswordEnumerationSafe(t *testing.T) {
	setupTestDB(t)
	registerTestUser(t, "alice", "alice@example.com", "password123")

	known := doJSON(t, ForgotPasswordHandler, http.MethodPost, "/v1/auth/password-reset/request",
		`{"email":"alice@example.com"}`)
	unknown := doJSON(t, ForgotPasswordHandler, http.MethodPost, "/v1/auth/password-reset/request",
		`{"email":"nobody@example.com"}`)

	if known.Code != http.StatusOK || unknown.Code != http.StatusOK {
		t.Fatalf("Expected 200 for both, got %d and %d", known.Code, unknown.Code)
	}

	// Byte-identical responses, nothing leaks about which emails exist.
	if known.Body.String() != unknown.Body.String() {
		t.Errorf("Responses differ:\nknown:   %s\nunknown: %s", known.Body.String(), unknown.Body.String())
	}
}

func TestForgotPasswordAmbiguousEmail(t *testing.T) {
	setupTestDB(t)
	registerTestUser(t, "alice", "shared@example.com", "password123")
	registerTestUser(t, "bob", "shared@example.com", "password123")

	rec := doJSON(t, ForgotPasswordHandler, http.MethodPost, "/v1/auth/password-reset/request",
		`{"email":"shared@example.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp GenericResponse
	decodeBody(t, rec, &resp)
	if resp.Message != resetRequestMessage {
		t.Errorf("Ambiguous email should get the generic response, got %q", resp.Message)
	}
}

func TestForgotPasswordMissingEmail(t *testing.T) {
	setupTestDB(t)

	rec := doJSON(t, ForgotPasswordHandler, http.MethodPost, "/v1/auth/password-reset/request", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
}

func TestResetPasswordFlow(t *testing.T) {
	setupTestDB(t)
	user := registerTestUser(t, "alice", "alice@example.com", "password123")

	newCrypto := crypto.NewCrypto()
	token := newCrypto.MakeResetToken(user.ID, user.Password)
	uid := crypto.EncodeUID(user.ID)

	rec := doJSON(t, ResetPasswordHandler, http.MethodPost, "/v1/auth/password-reset/confirm",
		`{"uid":"`+uid+`","token":"`+token+`","new_password":"newpassword456"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// All sessions are revoked alongside the password change.
	var sessions int64
	db.Conn.Model(&models.Session{}).Where("user_id = ?", user.ID).Count(&sessions)
	if sessions != 0 {
		t.Error("Password reset should revoke existing sessions")
	}

	login := doJSON(t, LoginHandler, http.MethodPost, "/v1/auth/login",
		`{"username":"alice","password":"newpassword456"}`)
	if login.Code != http.StatusOK {
		t.Errorf("New password should work, got %d", login.Code)
	}

	old := doJSON(t, LoginHandler, http.MethodPost, "/v1/auth/login",
		`{"username":"alice","password":"password123"}`)
	if old.Code != http.StatusUnauthorized {
		t.Errorf("Old password should be rejected, got %d", old.Code)
	}
}

func TestResetTokenSingleUse(t *testing.T) {
	setupTestDB(t)
	user := registerTestUser(t, "alice", "alice@example.com", "password123")

	token := crypto.NewCrypto().MakeResetToken(user.ID, user.Password)
	uid := crypto.EncodeUID(user.ID)

	first := doJSON(t, ResetPasswordHandler, http.MethodPost, "/v1/auth/password-reset/confirm",
		`{"uid":"`+uid+`","token":"`+token+`","new_password":"newpassword456"}`)
	if first.Code != http.StatusOK {
		t.Fatalf("First reset should succeed, got %d", first.Code)
	}

	// The token was bound to the old hash, so it is dead after the change.
	second := doJSON(t, ResetPasswordHandler, http.MethodPost, "/v1/auth/password-reset/confirm",
		`{"uid":"`+uid+`","token":"`+token+`","new_password":"anotherpass789"}`)
	if second.Code != http.StatusBadRequest {
		t.Errorf("Reusing a token should fail, got %d", second.Code)
	}
}

func TestResetPasswordLinkCheckedBeforePolicy(t *testing.T) {
	setupTestDB(t)
	user := registerTestUser(t, "alice", "alice@example.com", "password123")
	uid := crypto.EncodeUID(user.ID)

	// A broken link is reported as such even when the new password would
	// also fail the policy.
	rec := doJSON(t, ResetPasswordHandler, http.MethodPost, "/v1/auth/password-reset/confirm",
		`{"uid":"%%%","token":"abc-def","new_password":"short"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid reset link") {
		t.Errorf("Expected the link error, got %s", rec.Body.String())
	}

	// Same for a bad token behind a valid link.
	rec = doJSON(t, ResetPasswordHandler, http.MethodPost, "/v1/auth/password-reset/confirm",
		`{"uid":"`+uid+`","token":"abc-deadbeef","new_password":"short"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid or expired token") {
		t.Errorf("Expected the token error, got %s", rec.Body.String())
	}

	// Only a proven link and token surface the policy error.
	token := crypto.NewCrypto().MakeResetToken(user.ID, user.Password)
	rec = doJSON(t, ResetPasswordHandler, http.MethodPost, "/v1/auth/password-reset/confirm",
		`{"uid":"`+uid+`","token":"`+token+`","new_password":"short"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid new password") {
		t.Errorf("Expected the policy error, got %s", rec.Body.String())
	}

	login := doJSON(t, LoginHandler, http.MethodPost, "/v1/auth/login",
		`{"username":"alice","password":"password123"}`)
	if login.Code != http.StatusOK {
		t.Errorf("Rejected reset should leave the password unchanged, got %d", login.Code)
	}
}

func TestResetPasswordInvalidInputs(t *testing.T) {
	setupTestDB(t)
	user := registerTestUser(t, "alice", "alice@example.com", "password123")
	uid := crypto.EncodeUID(user.ID)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"missing uid", `{"token":"x","new_password":"newpassword456"}`, http.StatusBadRequest},
		{"missing token", `{"uid":"` + uid + `","new_password":"newpassword456"}`, http.StatusBadRequest},
		{"short password", `{"uid":"` + uid + `","token":"x","new_password":"short"}`, http.StatusBadRequest},
		{"garbage uid", `{"uid":"%%%","token":"x","new_password":"newpassword456"}`, http.StatusBadRequest},
		{"forged token", `{"uid":"` + uid + `","token":"abc-deadbeef","new_password":"newpassword456"}`, http.StatusBadRequest},
	}

	for _, tc := range cases {
		rec := doJSON(t, ResetPasswordHandler, http.MethodPost, "/v1/auth/password-reset/confirm", tc.body)
		if rec.Code != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, rec.Code)
		}
	}
}
