package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strings"  // String manipulation
	"time"     // Token lifetime

	"deluxe_membership/internal/domain"     // Importing domain models
	"deluxe_membership/internal/middleware" // Auth context helpers
	"deluxe_membership/internal/session"    // Session registry
	"deluxe_membership/internal/utils"      // Utility functions

	"github.com/gin-gonic/gin"                   // Gin web framework
	mysqlDriver "github.com/go-sql-driver/mysql" // MySQL error codes
	"github.com/sirupsen/logrus"                 // Logging
	"golang.org/x/crypto/bcrypt"                 // Password hashing
	"gorm.io/gorm"                               // GORM ORM library
)

// Request struct for registration
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`           // Email must be a valid address
	Password string `json:"password" binding:"required,min=8,max=40"` // Password length limits
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// RegisterHandler creates a customer account together with an empty wallet
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid email or password")
			return
		}
		// Hash the password and create the user
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to hash password")
			return
		}
		user := domain.User{
			Email:    strings.ToLower(strings.TrimSpace(req.Email)), // Lowercase to keep emails unique
			Password: string(hash),
			Role:     domain.RoleCustomer,
		}
		err = db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
			if err := tx.Omit("Wallet", "Cards").Create(&user).Error; err != nil {
				return err // Return error to rollback
			}
			wallet := domain.Wallet{UserID: user.ID}
			return tx.Create(&wallet).Error
		})
		if isDuplicateKey(err) {
			respondError(c, http.StatusBadRequest, "Email already registered")
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"email": user.Email,
				"error": err.Error(),
			}).Error("Registration failed")
			respondError(c, http.StatusInternalServerError, msgSomethingWentWrong)
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,
			"type":    "register",
		}).Info("User registered")
		respondSuccess(c, http.StatusCreated, gin.H{"id": user.ID, "email": user.Email, "role": user.Role})
	}
}

// mysqlDuplicateEntry is the MySQL error number for unique key violations
const mysqlDuplicateEntry = 1062

func isDuplicateKey(err error) bool {
	var myErr *mysqlDriver.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry
}

// LoginHandler authenticates a user, registers a session and returns its token
func LoginHandler(db *gorm.DB, sessions session.Store, jwtSecret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid request")
			return
		}
		var user domain.User // Fetch user from database
		if err := db.WithContext(c.Request.Context()).Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
			respondError(c, http.StatusUnauthorized, "Invalid email or password.")
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			respondError(c, http.StatusUnauthorized, "Invalid email or password.")
			return
		}
		token, err := utils.GenerateJWT(user, jwtSecret, ttl)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to generate token")
			return
		}
		if err := sessions.Put(c.Request.Context(), token, user); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,
				"error":   err.Error(),
			}).Error("Failed to register session")
			respondError(c, http.StatusInternalServerError, "Failed to generate token")
			return
		}
		respondSuccess(c, http.StatusOK, gin.H{"token": token, "umail": user.Email})
	}
}

// LogoutHandler drops the session of the presented token
func LogoutHandler(sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetString(middleware.TokenKey) // Set by the auth middleware
		if token == "" {
			respondError(c, http.StatusUnauthorized, msgUnauthorized)
			return
		}
		if err := sessions.Delete(c.Request.Context(), token); err != nil {
			logrus.WithError(err).Error("Failed to drop session")
			respondError(c, http.StatusInternalServerError, msgSomethingWentWrong)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
