// SPDX-License-Identifier: GPL-3.0-only

package crypto

import (
	"testing"
	"time"
)

func TestResetTokenRoundtrip(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret-key")
	crypto := NewCrypto()

	token := crypto.MakeResetToken(42, "argon2id$somehash")
	if token == "" {
		t.Fatal("Token should not be empty")
	}

	if !crypto.CheckResetToken(42, "argon2id$somehash", token) {
		t.Error("Freshly issued token should verify")
	}
}

func TestResetTokenBoundToUserAndHash(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret-key")
	crypto := NewCrypto()

	token := crypto.MakeResetToken(42, "old-password-hash")

	if crypto.CheckResetToken(43, "old-password-hash", token) {
		t.Error("Token should not verify for a different user")
	}

	// Changing the password changes the stored hash, which is the single-use
	// property of these tokens.
	if crypto.CheckResetToken(42, "new-password-hash", token) {
		t.Error("Token should not verify after the password hash changed")
	}
}

func TestResetTokenSecretKeyMismatch(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret-key")
	token := NewCrypto().MakeResetToken(42, "hash")

	t.Setenv("SECRET_KEY", "another-secret-key")
	if NewCrypto().CheckResetToken(42, "hash", token) {
		t.Error("Token should not verify under a different signing key")
	}
}

func TestResetTokenExpiry(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret-key")
	crypto := NewCrypto()

	issuedAt := time.Now().Add(-25 * time.Hour).Unix()
	expired := crypto.makeTokenWithTimestamp(42, "hash", issuedAt)
	if crypto.CheckResetToken(42, "hash", expired) {
		t.Error("Token older than the reset window should not verify")
	}

	recent := crypto.makeTokenWithTimestamp(42, "hash", time.Now().Add(-time.Hour).Unix())
	if !crypto.CheckResetToken(42, "hash", recent) {
		t.Error("Token inside the reset window should verify")
	}

	future := crypto.makeTokenWithTimestamp(42, "hash", time.Now().Add(time.Hour).Unix())
	if crypto.CheckResetToken(42, "hash", future) {
		t.Error("Token with a future timestamp should not verify")
	}
}

func TestResetTokenTimeoutConfigurable(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret-key")
	t.Setenv("PASSWORD_RESET_TIMEOUT_HOURS", "1")
	crypto := NewCrypto()

	stale := crypto.makeTokenWithTimestamp(42, "hash", time.Now().Add(-2*time.Hour).Unix())
	if crypto.CheckResetToken(42, "hash", stale) {
		t.Error("Token should not verify past the configured timeout")
	}
}

func TestResetTokenMalformed(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret-key")
	crypto := NewCrypto()

	for _, token := range []string{
		"",
		"no-separator-at-all-but-wrong",
		"nodigits",
		"!!!-abc",
	} {
		if crypto.CheckResetToken(42, "hash", token) {
			t.Errorf("Malformed token %q should not verify", token)
		}
	}
}

func TestUIDCodec(t *testing.T) {
	for _, id := range []uint{1, 42, 99999} {
		encoded := EncodeUID(id)
		decoded, err := DecodeUID(encoded)
		if err != nil {
			t.Fatalf("DecodeUID(%q) failed: %v", encoded, err)
		}
		if decoded != id {
			t.Errorf("DecodeUID(EncodeUID(%d)) = %d", id, decoded)
		}
	}

	for _, encoded := range []string{"", "%%%", "bm90LWEtbnVtYmVy"} {
		if _, err := DecodeUID(encoded); err == nil {
			t.Errorf("DecodeUID(%q) should fail", encoded)
		}
	}
}
