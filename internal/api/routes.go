package api

import (
	"time" // Token lifetime

	"deluxe_membership/internal/middleware" // Custom middleware
	"deluxe_membership/internal/session"    // Session registry

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// Challenges lists challenges and records solves
type Challenges interface {
	ChallengeSolver
	ChallengeLister
}

// Deps are the collaborators shared by all routes
type Deps struct {
	DB         *gorm.DB
	Cache      redis.Cmdable // Optional
	Sessions   session.Store
	Challenges Challenges
	Upgrader   Upgrader
	JWTSecret  string
	TokenTTL   time.Duration
	Limiter    *middleware.ClientLimiter // Optional, per client budget for login and upgrade
}

// RegisterRoutes mounts every endpoint on r
func RegisterRoutes(r gin.IRouter, d Deps) {
	auth := middleware.JWTAuthMiddleware(d.JWTSecret, d.Sessions)
	var limited gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if d.Limiter != nil {
		limited = middleware.RateLimit(d.Limiter)
	}

	// Auth routes
	r.POST("/api/Users", RegisterHandler(d.DB))                                                  // Registration endpoint
	r.POST("/rest/user/login", limited, LoginHandler(d.DB, d.Sessions, d.JWTSecret, d.TokenTTL)) // Login endpoint
	r.POST("/rest/user/logout", auth, LogoutHandler(d.Sessions))                                 // Logout endpoint

	// Deluxe membership
	r.GET("/rest/deluxe-membership", middleware.OptionalAuth(d.JWTSecret), DeluxeMembershipStatusHandler())
	r.POST("/rest/deluxe-membership", auth, limited, UpgradeToDeluxeHandler(UpgradeDeps{
		Upgrader:   d.Upgrader,
		Sessions:   d.Sessions,
		Challenges: d.Challenges,
		Cache:      d.Cache,
		JWTSecret:  d.JWTSecret,
		TokenTTL:   d.TokenTTL,
	}))

	// Wallet routes (protected by JWT)
	wallet := r.Group("/rest/wallet", auth)
	wallet.GET("/balance", GetWalletBalanceHandler(d.DB, d.Cache)) // Balance endpoint
	wallet.PUT("/balance", DepositHandler(d.DB, d.Cache))          // Deposit endpoint

	// Card routes (protected by JWT)
	cards := r.Group("/api/Cards", auth)
	cards.GET("", ListCardsHandler(d.DB))   // List own cards
	cards.POST("", CreateCardHandler(d.DB)) // Store a card

	r.GET("/api/Challenges", ListChallengesHandler(d.Challenges)) // Challenge list

	// Admin routes (protected, admin only)
	admin := r.Group("/rest/admin", auth, middleware.AdminOnlyMiddleware(d.DB))
	admin.GET("/users", ListUsersHandler(d.DB, d.Cache))      // List users endpoint
	admin.GET("/transactions", ListTransactionsHandler(d.DB)) // List ledger endpoint
}
