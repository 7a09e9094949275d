package membership

import (
	"context" // Context for database calls
	"errors"  // Error comparison
	"fmt"     // Error wrapping
	"time"    // Card expiry and log timestamps

	"deluxe_membership/internal/domain" // Importing domain models
	"deluxe_membership/internal/utils"  // Utility functions

	"github.com/sirupsen/logrus" // Logging
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/clause"        // Row locking
)

// UpgradeRequest identifies the user and how the upgrade is paid
type UpgradeRequest struct {
	UserID    uint        // User to promote
	Mode      PaymentMode // wallet, card or anything else
	PaymentID uint        // Card id when Mode is card
}

// Result is the outcome of a committed upgrade
type Result struct {
	User          domain.User // User as stored after the upgrade
	WalletCharged bool        // Whether Cost was taken from the wallet
}

// Service runs upgrades against the database
type Service struct {
	db           *gorm.DB
	deluxeSecret string           // Key for DeluxeToken
	now          func() time.Time // Clock for card expiry
}

func NewService(db *gorm.DB, deluxeSecret string) *Service {
	return &Service{db: db, deluxeSecret: deluxeSecret, now: time.Now}
}

// Upgrade promotes a customer to deluxe inside one transaction. User and wallet rows are
// locked until commit so concurrent upgrades of the same user serialize and at most one
// of them finds the user still in the customer role.
func (s *Service) Upgrade(ctx context.Context, req UpgradeRequest) (Result, error) {
	tx := s.db.WithContext(ctx).Begin() // Start a transaction
	if tx.Error != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrTransactionUnavailable, tx.Error)
	}

	finished := false // Set once commit has been attempted
	defer func() {
		if finished {
			return
		}
		if err := tx.Rollback().Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": req.UserID,
				"error":   err.Error(),
			}).Error("Rollback failed")
		}
	}()

	var user domain.User // Only customers may upgrade
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND role = ?", req.UserID, domain.RoleCustomer).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Result{}, ErrInvalidRequest // Unknown user or not a customer
	}
	if err != nil {
		return Result{}, fmt.Errorf("%w: load user: %w", ErrInvalidRequest, err)
	}

	var charged bool // Whether the wallet paid
	switch req.Mode {
	case PaymentWallet:
		if charged, err = s.chargeWallet(tx, user.ID); err != nil {
			return Result{}, err
		}
	case PaymentCard:
		if err = s.checkCard(tx, user.ID, req.PaymentID); err != nil {
			return Result{}, err
		}
	}

	token := utils.DeluxeToken(user.Email, s.deluxeSecret) // Deterministic per email
	err = tx.Model(&user).Updates(map[string]any{
		"role":         domain.RoleDeluxe,
		"deluxe_token": token,
	}).Error
	if err != nil {
		return Result{}, fmt.Errorf("%w: promote user: %w", ErrInvalidRequest, err)
	}
	user.Role = domain.RoleDeluxe
	user.DeluxeToken = token

	finished = true // A failed commit is not rolled back again
	if err := tx.Commit().Error; err != nil {
		return Result{}, fmt.Errorf("%w: commit: %w", ErrInvalidRequest, err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":      user.ID,
		"payment_mode": string(req.Mode),
		"charged":      charged,
		"timestamp":    s.now().Format(time.RFC3339),
	}).Info("Deluxe membership upgrade")

	return Result{User: user, WalletCharged: charged}, nil
}

// chargeWallet takes Cost from the user's wallet. A user without a wallet is not charged.
func (s *Service) chargeWallet(tx *gorm.DB, userID uint) (bool, error) {
	var wallet domain.Wallet
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&wallet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil // No wallet, nothing to charge
	}
	if err != nil {
		return false, fmt.Errorf("%w: load wallet: %w", ErrInvalidRequest, err)
	}
	if wallet.Balance < Cost {
		return false, ErrInsufficientFunds // Balance untouched, caller rolls back
	}

	// Debit in SQL so the stored balance is the source of truth
	if err := tx.Model(&wallet).Update("balance", gorm.Expr("balance - ?", Cost)).Error; err != nil {
		return false, fmt.Errorf("%w: debit wallet: %w", ErrInvalidRequest, err)
	}
	entry := domain.Transaction{
		FromWalletID: &wallet.ID, // Pointer to handle nullability
		Amount:       Cost,
		Type:         domain.TransactionDeluxeUpgrade,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return false, fmt.Errorf("%w: record debit: %w", ErrInvalidRequest, err)
	}
	return true, nil
}

func (s *Service) checkCard(tx *gorm.DB, userID, cardID uint) error {
	var card domain.Card
	err := tx.Where("id = ? AND user_id = ?", cardID, userID).First(&card).Error // Only the caller's own cards
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidCard
	}
	if err != nil {
		return fmt.Errorf("%w: load card: %w", ErrInvalidRequest, err)
	}
	if CardExpired(card, s.now()) {
		return ErrInvalidCard
	}
	return nil
}

// CardExpired reports whether the card's expiry month lies before the month of now
func CardExpired(card domain.Card, now time.Time) bool {
	year, month := now.Year(), int(now.Month())
	return card.ExpYear < year || (card.ExpYear == year && card.ExpMonth < month)
}
