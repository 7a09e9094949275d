package api

import (
	"context"  // Context for collaborators
	"net/http" // HTTP status codes

	"deluxe_membership/internal/domain" // Domain models

	"github.com/gin-gonic/gin" // Gin web framework
)

// ChallengeLister reads the challenge list
type ChallengeLister interface {
	List(ctx context.Context) ([]domain.Challenge, error)
}

// ListChallengesHandler returns every challenge with its solved flag
func ListChallengesHandler(challenges ChallengeLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := challenges.List(c.Request.Context())
		if err != nil {
			respondError(c, http.StatusInternalServerError, msgSomethingWentWrong)
			return
		}
		respondSuccess(c, http.StatusOK, list)
	}
}
