// Package membership implements the paid deluxe membership upgrade.
package membership

import (
	"errors" // Sentinel errors

	"deluxe_membership/internal/domain" // Importing domain models
)

// Cost is the price of a deluxe membership in wallet units
const Cost = 49.0

// PaymentMode selects how an upgrade is paid for
type PaymentMode string

const (
	PaymentWallet PaymentMode = "wallet"
	PaymentCard   PaymentMode = "card"
)

var (
	// ErrInvalidRequest covers unknown or non-customer users and any unexpected failure
	ErrInvalidRequest = errors.New("invalid request")
	// ErrInsufficientFunds is returned when the wallet balance is below Cost
	ErrInsufficientFunds = errors.New("insufficient funds in wallet")
	// ErrInvalidCard is returned for missing, foreign or expired cards
	ErrInvalidCard = errors.New("invalid card")
	// ErrTransactionUnavailable means no transaction could be opened, so nothing needs rolling back
	ErrTransactionUnavailable = errors.New("transaction unavailable")

	ErrAlreadyDeluxe = errors.New("already a deluxe member")
	ErrNotEligible   = errors.New("not eligible for deluxe membership")
)

// Status returns the membership cost for roles that may upgrade
func Status(role domain.Role) (float64, error) {
	switch role {
	case domain.RoleCustomer:
		return Cost, nil
	case domain.RoleDeluxe:
		return 0, ErrAlreadyDeluxe
	case domain.RoleNone, domain.RoleAccounting, domain.RoleAdmin:
		return 0, ErrNotEligible
	default:
		return 0, ErrNotEligible
	}
}
