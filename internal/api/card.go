package api

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"deluxe_membership/internal/domain"     // Importing domain models
	"deluxe_membership/internal/middleware" // Auth context helpers

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
	"gorm.io/gorm"               // GORM ORM library
)

// CardRequest is the body for storing a new card
type CardRequest struct {
	FullName string `json:"fullName" binding:"required,max=255"`       // Card holder
	CardNum  string `json:"cardNum" binding:"required,numeric,len=16"` // Full card number, stored masked
	ExpMonth int    `json:"expMonth" binding:"required,min=1,max=12"`  // 1-indexed month
	ExpYear  int    `json:"expYear" binding:"required,min=2000"`       // Four digit year
}

// maskCardNumber keeps the last four digits of the card number
func maskCardNumber(num string) string {
	if len(num) <= 4 {
		return num
	}
	return strings.Repeat("*", len(num)-4) + num[len(num)-4:]
}

// ListCardsHandler returns the caller's stored cards
func ListCardsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserIDFrom(c)
		if !ok {
			respondError(c, http.StatusUnauthorized, msgUnauthorized)
			return
		}
		cards := []domain.Card{} // Empty slice renders as []
		if err := db.WithContext(c.Request.Context()).Where("user_id = ?", userID).Order("id").Find(&cards).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to fetch cards")
			return
		}
		respondSuccess(c, http.StatusOK, cards)
	}
}

// CreateCardHandler stores a card for the caller
func CreateCardHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserIDFrom(c)
		if !ok {
			respondError(c, http.StatusUnauthorized, msgUnauthorized)
			return
		}
		var req CardRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid card details")
			return
		}
		card := domain.Card{
			UserID:   userID,
			FullName: strings.TrimSpace(req.FullName),
			CardNum:  maskCardNumber(req.CardNum), // Never store the full number
			ExpMonth: req.ExpMonth,
			ExpYear:  req.ExpYear,
		}
		if err := db.WithContext(c.Request.Context()).Create(&card).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("Failed to store card")
			respondError(c, http.StatusInternalServerError, "Failed to store card")
			return
		}
		respondSuccess(c, http.StatusCreated, card)
	}
}
