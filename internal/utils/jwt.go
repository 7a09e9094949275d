package utils

import (
	"errors"   // Error helpers
	"net/http" // Request header access
	"strings"  // Header parsing
	"time"     // Token lifetime

	"deluxe_membership/internal/domain" // Domain models

	"github.com/golang-jwt/jwt/v5" // JWT library
	"github.com/google/uuid"       // Token ids
)

// ErrInvalidToken is returned for tokens that fail signature, expiry or claim checks
var ErrInvalidToken = errors.New("invalid token")

// Claims carries the user snapshot a token was issued for
type Claims struct {
	UserID uint        `json:"user_id"` // Custom claim for user ID
	Email  string      `json:"email"`   // Email at issuance
	Role   domain.Role `json:"role"`    // Role at issuance
	jwt.RegisteredClaims
}

// GenerateJWT creates a signed token embedding the given user record
func GenerateJWT(user domain.User, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),                 // Token id
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)), // Token expiry
			IssuedAt:  jwt.NewNumericDate(now),          // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseJWT parses and validates a JWT token string
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	if tokenStr == "" {
		return nil, ErrInvalidToken
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if _, known := domain.ParseRole(string(claims.Role)); !known {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// VerifyJWT reports whether the token carries a valid signature and has not expired
func VerifyJWT(tokenStr, secret string) bool {
	_, err := ParseJWT(tokenStr, secret)
	return err == nil
}

// TokenFromRequest extracts the bearer token from the Authorization header
func TokenFromRequest(r *http.Request) string {
	if r == nil {
		return ""
	}
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
