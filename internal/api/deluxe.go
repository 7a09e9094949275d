package api

import (
	"context"  // Context for collaborators
	"errors"   // Error comparison
	"io"       // Empty body detection
	"net/http" // HTTP status codes
	"time"     // Token lifetime

	"deluxe_membership/internal/domain"     // Domain models
	"deluxe_membership/internal/membership" // Upgrade service
	"deluxe_membership/internal/middleware" // Auth context helpers
	"deluxe_membership/internal/session"    // Session registry
	"deluxe_membership/internal/utils"      // JWT and cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging
)

// Upgrader runs the transactional part of a deluxe upgrade
type Upgrader interface {
	Upgrade(ctx context.Context, req membership.UpgradeRequest) (membership.Result, error)
}

// ChallengeSolver flips a challenge once its predicate holds
type ChallengeSolver interface {
	SolveIf(ctx context.Context, key string, predicate func() bool) (bool, error)
}

// UpgradeDeps are the collaborators of the upgrade endpoint
type UpgradeDeps struct {
	Upgrader   Upgrader
	Sessions   session.Store
	Challenges ChallengeSolver
	Cache      redis.Cmdable // Optional, wallet cache to invalidate after a charge
	JWTSecret  string
	TokenTTL   time.Duration
}

// UpgradeRequest is the body of the upgrade endpoint
type UpgradeRequest struct {
	UserID      uint   `json:"UserId"`      // Overridden by the authenticated session
	PaymentMode string `json:"paymentMode"` // wallet, card or anything else
	PaymentID   uint   `json:"paymentId"`   // Card id when paying by card
}

// UpgradeToDeluxeHandler charges the chosen payment source, promotes the caller to deluxe
// and returns a token reflecting the new role
func UpgradeToDeluxeHandler(deps UpgradeDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpgradeRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			respondError(c, http.StatusBadRequest, msgSomethingWentWrong)
			return
		}
		if userID, ok := middleware.UserIDFrom(c); ok {
			req.UserID = userID // The session decides who is upgraded
		}
		if req.UserID == 0 {
			respondError(c, http.StatusBadRequest, msgSomethingWentWrong)
			return
		}

		ctx := c.Request.Context()
		mode := membership.PaymentMode(req.PaymentMode)
		res, err := deps.Upgrader.Upgrade(ctx, membership.UpgradeRequest{
			UserID:    req.UserID,
			Mode:      mode,
			PaymentID: req.PaymentID,
		})
		if err != nil {
			respondUpgradeError(c, req, err)
			return
		}

		// Committed from here on; nothing below may undo the promotion
		_, err = deps.Challenges.SolveIf(ctx, domain.FreeDeluxeChallengeKey, func() bool {
			return utils.VerifyJWT(utils.TokenFromRequest(c.Request), deps.JWTSecret) &&
				mode != membership.PaymentWallet && mode != membership.PaymentCard
		})
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": res.User.ID,
				"error":   err.Error(),
			}).Warn("Challenge check failed")
		}

		if deps.Cache != nil {
			if res.WalletCharged {
				_ = utils.DeleteCache(ctx, deps.Cache, utils.WalletCacheKey(res.User.ID)) // Invalidate wallet cache
			}
			// Cached admin pages still list the old role
			if err := utils.DeleteCachePattern(ctx, deps.Cache, adminUsersCachePrefix+"*"); err != nil {
				logrus.WithError(err).Warn("Failed to drop cached user pages")
			}
		}

		token, err := utils.GenerateJWT(res.User, deps.JWTSecret, deps.TokenTTL)
		if err == nil {
			err = deps.Sessions.Put(ctx, token, res.User)
		}
		if err != nil {
			// The user stays deluxe but the caller gets no token; logging lets an operator reconcile
			logrus.WithFields(logrus.Fields{
				"user_id": res.User.ID,
				"error":   err.Error(),
			}).Error("Deluxe upgrade committed but token issuance failed")
			respondError(c, http.StatusBadRequest, msgSomethingWentWrong)
			return
		}

		respondSuccess(c, http.StatusOK, gin.H{
			"confirmation": msgDeluxeConfirmation,
			"token":        token,
		})
	}
}

func respondUpgradeError(c *gin.Context, req UpgradeRequest, err error) {
	fields := logrus.Fields{
		"user_id":      req.UserID,
		"payment_mode": req.PaymentMode,
		"error":        err.Error(),
	}
	switch {
	case errors.Is(err, membership.ErrInsufficientFunds):
		logrus.WithFields(fields).Info("Deluxe upgrade rejected")
		respondError(c, http.StatusBadRequest, msgInsufficientFunds)
	case errors.Is(err, membership.ErrInvalidCard):
		logrus.WithFields(fields).Info("Deluxe upgrade rejected")
		respondError(c, http.StatusBadRequest, msgInvalidCard)
	case errors.Is(err, membership.ErrInvalidRequest):
		logrus.WithFields(fields).Warn("Deluxe upgrade failed")
		respondError(c, http.StatusBadRequest, msgSomethingWentWrong)
	default:
		logrus.WithFields(fields).Error("Deluxe upgrade failed")
		respondError(c, http.StatusBadRequest, msgSomethingWentWrong)
	}
}

// DeluxeMembershipStatusHandler reports the membership cost to customers
func DeluxeMembershipStatusHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		cost, err := membership.Status(middleware.RoleFrom(c))
		switch {
		case err == nil:
			respondSuccess(c, http.StatusOK, gin.H{"membershipCost": cost})
		case errors.Is(err, membership.ErrAlreadyDeluxe):
			respondError(c, http.StatusBadRequest, msgAlreadyDeluxe)
		default:
			respondError(c, http.StatusBadRequest, msgNotEligible)
		}
	}
}
