// SPDX-License-Identifier: GPL-3.0-only

package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MakeResetToken derives a password-reset token for a user. The token is
// bound to the user's current password hash, so changing the password
// invalidates every token issued before the change; no used flag is stored.
// The issue timestamp is embedded in base36 so tokens also lapse after
// ResetTimeout even when the password never changes.
func (c *Crypto) MakeResetToken(userID uint, passwordHash string) string {
	return c.makeTokenWithTimestamp(userID, passwordHash, time.Now().Unix())
}

func (c *Crypto) makeTokenWithTimestamp(userID uint, passwordHash string, ts int64) string {
	mac := hmac.New(sha256.New, []byte(c.SecretKey))
	fmt.Fprintf(mac, "%d\x00%s\x00%d", userID, passwordHash, ts)
	return strconv.FormatInt(ts, 36) + "-" + hex.EncodeToString(mac.Sum(nil))
}

// CheckResetToken reports whether token is valid for the user's current
// password hash and still within the reset window.
func (c *Crypto) CheckResetToken(userID uint, passwordHash, token string) bool {
	tsPart, _, found := strings.Cut(token, "-")
	if !found {
		return false
	}
	ts, err := strconv.ParseInt(tsPart, 36, 64)
	if err != nil || ts < 0 {
		return false
	}

	expected := c.makeTokenWithTimestamp(userID, passwordHash, ts)
	if !hmac.Equal([]byte(expected), []byte(token)) {
		return false
	}

	now := time.Now().Unix()
	if ts > now {
		return false
	}
	return now-ts <= int64(c.ResetTimeout/time.Second)
}

// EncodeUID encodes a user ID for reset links as unpadded URL-safe base64 of
// the decimal form, kept separate from the token itself.
func EncodeUID(id uint) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatUint(uint64(id), 10)))
}

func DecodeUID(encoded string) (uint, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return 0, fmt.Errorf("malformed uid: %w", err)
	}
	id, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed uid: %w", err)
	}
	return uint(id), nil
}
