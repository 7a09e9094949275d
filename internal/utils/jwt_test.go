package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"deluxe_membership/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndParseJWT(t *testing.T) {
	t.Parallel()

	user := domain.User{ID: 7, Email: "jim@juice.sh", Role: domain.RoleDeluxe}

	token, err := GenerateJWT(user, testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "jim@juice.sh", claims.Email)
	assert.Equal(t, domain.RoleDeluxe, claims.Role)
	assert.NotEmpty(t, claims.ID)
	assert.True(t, VerifyJWT(token, testSecret))
}

func TestGenerateJWT_DistinctTokens(t *testing.T) {
	t.Parallel()

	user := domain.User{ID: 1, Email: "a@b.c", Role: domain.RoleCustomer}
	first, err := GenerateJWT(user, testSecret, time.Hour)
	require.NoError(t, err)
	second, err := GenerateJWT(user, testSecret, time.Hour)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestParseJWT_Rejects(t *testing.T) {
	t.Parallel()

	user := domain.User{ID: 1, Email: "a@b.c", Role: domain.RoleCustomer}
	valid, err := GenerateJWT(user, testSecret, time.Hour)
	require.NoError(t, err)
	expired, err := GenerateJWT(user, testSecret, -time.Minute)
	require.NoError(t, err)
	unknownRole, err := GenerateJWT(domain.User{ID: 1, Role: domain.Role("root")}, testSecret, time.Hour)
	require.NoError(t, err)
	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1, Role: domain.RoleAdmin}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{name: "empty", token: "", secret: testSecret},
		{name: "garbage", token: "not.a.token", secret: testSecret},
		{name: "wrong secret", token: valid, secret: "other"},
		{name: "expired", token: expired, secret: testSecret},
		{name: "unknown role", token: unknownRole, secret: testSecret},
		{name: "alg none", token: noneAlg, secret: testSecret},
	}

	for _, tc := range tests {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseJWT(tt.token, tt.secret)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.False(t, VerifyJWT(tt.token, tt.secret))
		})
	}
}

func TestTokenFromRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "bearer", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "lowercase scheme", header: "bearer abc", want: "abc"},
		{name: "basic", header: "Basic dXNlcjpwYXNz", want: ""},
		{name: "missing", header: "", want: ""},
		{name: "no token", header: "Bearer", want: ""},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		assert.Equal(t, tt.want, TokenFromRequest(r), tt.name)
	}
	assert.Equal(t, "", TokenFromRequest(nil))
}
