package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"deluxe_membership/internal/domain"
	"deluxe_membership/internal/session"
	"deluxe_membership/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func issue(t *testing.T, user domain.User) string {
	t.Helper()

	token, err := utils.GenerateJWT(user, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func TestJWTAuthMiddleware(t *testing.T) {
	t.Parallel()

	user := domain.User{ID: 11, Email: "uvogin@juice.sh", Role: domain.RoleCustomer}
	registered := issue(t, user)
	unregistered := issue(t, user)

	sessions := session.NewMemoryStore(time.Hour)
	require.NoError(t, sessions.Put(context.Background(), registered, user))

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{name: "registered token", header: "Bearer " + registered, expectedStatus: http.StatusOK},
		{name: "missing header", header: "", expectedStatus: http.StatusUnauthorized},
		{name: "forged token", header: "Bearer abc.def.ghi", expectedStatus: http.StatusUnauthorized},
		{name: "token without session", header: "Bearer " + unregistered, expectedStatus: http.StatusUnauthorized},
	}

	for _, tc := range tests {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotID uint
			var gotRole domain.Role
			router := gin.New()
			router.GET("/", JWTAuthMiddleware(testSecret, sessions), func(c *gin.Context) {
				gotID, _ = UserIDFrom(c)
				gotRole = RoleFrom(c)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, uint(11), gotID)
				assert.Equal(t, domain.RoleCustomer, gotRole)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	t.Parallel()

	deluxe := issue(t, domain.User{ID: 2, Role: domain.RoleDeluxe})

	tests := []struct {
		name   string
		header string
		want   domain.Role
	}{
		{name: "valid token", header: "Bearer " + deluxe, want: domain.RoleDeluxe},
		{name: "invalid token", header: "Bearer nope", want: domain.RoleNone},
		{name: "anonymous", header: "", want: domain.RoleNone},
	}

	for _, tt := range tests {
		var got domain.Role
		router := gin.New()
		router.GET("/", OptionalAuth(testSecret), func(c *gin.Context) {
			got = RoleFrom(c)
			c.Status(http.StatusNoContent)
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}
}
