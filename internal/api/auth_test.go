package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"deluxe_membership/internal/middleware"
	"deluxe_membership/internal/session"
	"deluxe_membership/internal/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

// asUser stands in for the auth middleware
func asUser(id uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, id)
		c.Next()
	}
}

func TestRegisterHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		body           string
		setup          func(mock sqlmock.Sqlmock)
		expectedStatus int
	}{
		{
			name: "creates user and wallet",
			body: `{"email":"Bender@Juice.sh","password":"OhG0dPlease1nsertLiquor!"}`,
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO `users`").WillReturnResult(sqlmock.NewResult(7, 1))
				mock.ExpectExec("INSERT INTO `wallets`").WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "duplicate email",
			body: `{"email":"bender@juice.sh","password":"OhG0dPlease1nsertLiquor!"}`,
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO `users`").WillReturnError(&mysqlDriver.MySQLError{Number: 1062, Message: "Duplicate entry"})
				mock.ExpectRollback()
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "database unavailable",
			body: `{"email":"bender@juice.sh","password":"OhG0dPlease1nsertLiquor!"}`,
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO `users`").WillReturnError(errors.New("connection refused"))
				mock.ExpectRollback()
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "invalid email",
			body:           `{"email":"bender","password":"OhG0dPlease1nsertLiquor!"}`,
			setup:          func(sqlmock.Sqlmock) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "short password",
			body:           `{"email":"bender@juice.sh","password":"short"}`,
			setup:          func(sqlmock.Sqlmock) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, mock := newMockDB(t)
			tt.setup(mock)

			router := gin.New()
			router.POST("/api/Users", RegisterHandler(db))

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/Users", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NoError(t, mock.ExpectationsWereMet())
			if tt.expectedStatus == http.StatusCreated {
				assert.JSONEq(t, `{"id":7,"email":"bender@juice.sh","role":"customer"}`, string(decode(t, w).Data))
			}
		})
	}
}

func TestLoginHandler(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("ncc-1701"), bcrypt.MinCost)
	require.NoError(t, err)
	userColumns := []string{"id", "email", "password", "role", "deluxe_token"}

	tests := []struct {
		name           string
		body           string
		rows           *sqlmock.Rows
		expectedStatus int
	}{
		{
			name:           "valid credentials",
			body:           `{"email":"jim@juice.sh","password":"ncc-1701"}`,
			rows:           sqlmock.NewRows(userColumns).AddRow(5, "jim@juice.sh", string(hash), "customer", ""),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong password",
			body:           `{"email":"jim@juice.sh","password":"ncc-1702"}`,
			rows:           sqlmock.NewRows(userColumns).AddRow(5, "jim@juice.sh", string(hash), "customer", ""),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "unknown email",
			body:           `{"email":"nobody@juice.sh","password":"ncc-1701"}`,
			rows:           sqlmock.NewRows(userColumns),
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range tests {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, mock := newMockDB(t)
			mock.ExpectQuery("SELECT (.+) FROM `users` WHERE email = ?").WillReturnRows(tt.rows)
			sessions := session.NewMemoryStore(time.Hour)

			router := gin.New()
			router.POST("/rest/user/login", LoginHandler(db, sessions, testSecret, time.Hour))

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/rest/user/login", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NoError(t, mock.ExpectationsWereMet())
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var data struct {
				Token string `json:"token"`
			}
			require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
			claims, err := utils.ParseJWT(data.Token, testSecret)
			require.NoError(t, err)
			assert.Equal(t, uint(5), claims.UserID)

			stored, err := sessions.Get(context.Background(), data.Token)
			require.NoError(t, err)
			assert.Equal(t, "jim@juice.sh", stored.Email)
		})
	}
}

func TestLogoutHandler(t *testing.T) {
	t.Parallel()

	sessions := session.NewMemoryStore(time.Hour)
	require.NoError(t, sessions.Put(context.Background(), "tok", deluxeUser()))

	router := gin.New()
	router.POST("/rest/user/logout", func(c *gin.Context) {
		c.Set(middleware.TokenKey, "tok")
		c.Next()
	}, LogoutHandler(sessions))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/rest/user/logout", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	_, err := sessions.Get(context.Background(), "tok")
	assert.ErrorIs(t, err, session.ErrNotFound)
}
