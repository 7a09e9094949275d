package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"deluxe_membership/internal/domain"
)

// DeluxeToken derives the elevation token stored on a user after an upgrade.
// Same email and secret always yield the same token.
func DeluxeToken(email, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(email + string(domain.RoleDeluxe)))
	return hex.EncodeToString(mac.Sum(nil))
}
