package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"strings"  // String manipulation
	"time"     // Time durations

	"deluxe_membership/internal/domain" // Importing domain models
	"deluxe_membership/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

const (
	adminCacheTTL         = 60 * time.Second
	adminUsersCachePrefix = "admin:users:"
)

// UserAdminResponse represents the user data returned to admin
type UserAdminResponse struct {
	ID      uint        `json:"id"`      // User ID
	Email   string      `json:"email"`   // Login email
	Role    domain.Role `json:"role"`    // User role
	Balance float64     `json:"balance"` // Wallet balance, 0 without a wallet
}

// Page is one page of an admin listing
type Page[T any] struct {
	Items      []T   `json:"items"`       // Entries of this page
	Page       int   `json:"page"`        // Current page
	PageSize   int   `json:"page_size"`   // Page size
	Total      int64 `json:"total"`       // Total number of entries
	TotalPages int   `json:"total_pages"` // Total pages
	Cached     bool  `json:"cached"`      // Whether the page came from cache
}

// pagination reads page and page_size, falling back to 1 and 20
func pagination(c *gin.Context) (page, pageSize int) {
	page = 1      // Default page number
	pageSize = 20 // Default page size
	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v // Set page if valid
		}
	}
	// Check and set page size within limits
	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v // Set page size
		}
	}
	return page, pageSize
}

// ListUsersHandler returns all users with their wallet balance
func ListUsersHandler(db *gorm.DB, rdb redis.Cmdable) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		page, pageSize := pagination(c)
		cacheKey := adminUsersCachePrefix + "page=" + strconv.Itoa(page) + ":size=" + strconv.Itoa(pageSize)
		if rdb != nil {
			var cached Page[UserAdminResponse]
			if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
				cached.Cached = true // Indicate response is from cache
				respondSuccess(c, http.StatusOK, cached)
				return
			}
		}
		var total int64 // Total user count
		if err := db.WithContext(ctx).Model(&domain.User{}).Count(&total).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to count users")
			return
		}
		var users []domain.User // Slice to hold users
		// Preload Wallet relation, apply offset and limit for pagination
		if err := db.WithContext(ctx).Preload("Wallet").Order("id").Offset((page - 1) * pageSize).Limit(pageSize).Find(&users).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to fetch users")
			return
		}
		resp := Page[UserAdminResponse]{
			Items:      make([]UserAdminResponse, len(users)),
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: (int(total) + pageSize - 1) / pageSize, // Calculate total pages
		}
		for i, u := range users {
			resp.Items[i] = UserAdminResponse{
				ID:      u.ID,
				Email:   u.Email,
				Role:    u.Role,
				Balance: u.Wallet.Balance,
			}
		}
		if rdb != nil {
			_ = utils.SetCache(ctx, rdb, cacheKey, resp, adminCacheTTL) // Cache the page for future requests
		}
		respondSuccess(c, http.StatusOK, resp)
	}
}

// ListTransactionsHandler returns ledger entries, optionally filtered by wallet, type or time range
func ListTransactionsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, pageSize := pagination(c)
		query := db.WithContext(c.Request.Context()).Model(&domain.Transaction{}) // Start building the query
		if walletID := c.Query("wallet_id"); walletID != "" {
			query = query.Where("from_wallet_id = ? OR to_wallet_id = ?", walletID, walletID) // Filter by wallet
		}
		if txType := strings.TrimSpace(c.Query("type")); txType != "" {
			query = query.Where("type = ?", txType) // Filter by transaction type
		}
		if from, err := strconv.ParseInt(c.Query("from"), 10, 64); err == nil {
			query = query.Where("created_at >= ?", from) // Milliseconds since epoch
		}
		if to, err := strconv.ParseInt(c.Query("to"), 10, 64); err == nil {
			query = query.Where("created_at <= ?", to)
		}
		var total int64 // Total transaction count
		if err := query.Count(&total).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to count transactions")
			return
		}
		txs := []domain.Transaction{} // Slice to hold transactions
		if err := query.Order("created_at desc").Offset((page - 1) * pageSize).Limit(pageSize).Find(&txs).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to fetch transactions")
			return
		}
		respondSuccess(c, http.StatusOK, Page[domain.Transaction]{
			Items:      txs,
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: (int(total) + pageSize - 1) / pageSize,
		})
	}
}
