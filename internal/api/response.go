package api

import (
	"github.com/gin-gonic/gin" // Gin web framework
)

// Messages returned to API clients
const (
	msgSomethingWentWrong = "Something went wrong. Please try again!"
	msgInsufficientFunds  = "Insufficient funds in Wallet"
	msgInvalidCard        = "Invalid Card"
	msgDeluxeConfirmation = "Congratulations! You are now a deluxe member!"
	msgAlreadyDeluxe      = "You are already a deluxe member!"
	msgNotEligible        = "You are not eligible for deluxe membership!"
	msgUnauthorized       = "Unauthorized"
)

// envelope is the body shape of every API response
type envelope struct {
	Status string `json:"status"`          // success or error
	Data   any    `json:"data,omitempty"`  // Payload on success
	Error  string `json:"error,omitempty"` // Message on error
}

func respondSuccess(c *gin.Context, code int, data any) {
	c.JSON(code, envelope{Status: "success", Data: data})
}

func respondError(c *gin.Context, code int, msg string) {
	c.JSON(code, envelope{Status: "error", Error: msg})
}
