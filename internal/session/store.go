// Package session keeps the registry of tokens issued to authenticated users.
package session

import (
	"context" // Context for store calls
	"errors"  // Sentinel errors

	"deluxe_membership/internal/domain" // Importing domain models
)

// ErrNotFound is returned when a token is not registered
var ErrNotFound = errors.New("session not found")

// Store maps issued tokens to the user record they were issued for
type Store interface {
	Put(ctx context.Context, token string, user domain.User) error
	Get(ctx context.Context, token string) (domain.User, error)
	Delete(ctx context.Context, token string) error
}
