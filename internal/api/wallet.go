package api

import (
	"errors"   // Error comparison
	"net/http" // HTTP status codes
	"time"     // Time durations

	"deluxe_membership/internal/domain"     // Importing domain models
	"deluxe_membership/internal/membership" // Card expiry rule
	"deluxe_membership/internal/middleware" // Auth context helpers
	"deluxe_membership/internal/utils"      // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
	"gorm.io/gorm/clause"          // Row locking
)

const walletCacheTTL = 60 * time.Second

var errPaymentRejected = errors.New("payment not accepted")

// DepositRequest tops up the wallet from one of the caller's cards
type DepositRequest struct {
	Balance   float64 `json:"balance" binding:"required,gt=0"`   // Amount to add
	PaymentID uint    `json:"paymentId" binding:"required,gt=0"` // Card to charge
}

// GetWalletBalanceHandler returns the balance of the caller's wallet
func GetWalletBalanceHandler(db *gorm.DB, rdb redis.Cmdable) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserIDFrom(c)
		if !ok {
			respondError(c, http.StatusUnauthorized, msgUnauthorized)
			return
		}
		ctx := c.Request.Context()
		cacheKey := utils.WalletCacheKey(userID)
		var wallet domain.Wallet
		if rdb != nil {
			found, err := utils.GetCache(ctx, rdb, cacheKey, &wallet) // Try to get from cache
			if err == nil && found {
				respondSuccess(c, http.StatusOK, wallet.Balance)
				return
			}
		}
		// If not in cache, fetch from DB
		if err := db.WithContext(ctx).Where("user_id = ?", userID).First(&wallet).Error; err != nil {
			respondError(c, http.StatusNotFound, "Wallet not found")
			return
		}
		if rdb != nil {
			_ = utils.SetCache(ctx, rdb, cacheKey, wallet, walletCacheTTL) // Cache the wallet for 60 seconds
		}
		respondSuccess(c, http.StatusOK, wallet.Balance)
	}
}

// DepositHandler adds funds to the caller's wallet, paid with a stored card
func DepositHandler(db *gorm.DB, rdb redis.Cmdable) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserIDFrom(c)
		if !ok {
			respondError(c, http.StatusUnauthorized, msgUnauthorized)
			return
		}
		var req DepositRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid amount")
			return
		}
		ctx := c.Request.Context()
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var card domain.Card
			if err := tx.Where("id = ? AND user_id = ?", req.PaymentID, userID).First(&card).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errPaymentRejected
				}
				return err
			}
			if membership.CardExpired(card, time.Now()) {
				return errPaymentRejected
			}
			var wallet domain.Wallet
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("user_id = ?", userID).First(&wallet).Error; err != nil {
				return err
			}
			// Increment wallet balance
			if err := tx.Model(&wallet).Update("balance", gorm.Expr("balance + ?", req.Balance)).Error; err != nil {
				return err
			}
			entry := domain.Transaction{
				ToWalletID: &wallet.ID, // Pointer to handle nullability
				Amount:     req.Balance,
				Type:       domain.TransactionDeposit,
			}
			return tx.Create(&entry).Error // Commit on nil
		})
		if errors.Is(err, errPaymentRejected) {
			respondError(c, http.StatusPaymentRequired, "Payment not accepted.")
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"amount":  req.Balance,
				"error":   err.Error(),
			}).Error("Deposit failed")
			respondError(c, http.StatusInternalServerError, "Deposit failed")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,
			"amount":     req.Balance,
			"payment_id": req.PaymentID,
			"type":       domain.TransactionDeposit,
			"timestamp":  time.Now().Format(time.RFC3339),
		}).Info("Deposit transaction")
		if rdb != nil {
			_ = utils.DeleteCache(ctx, rdb, utils.WalletCacheKey(userID)) // Invalidate wallet cache
		}
		respondSuccess(c, http.StatusOK, req.Balance)
	}
}
