package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashflow/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testUser = &models.User{Base: models.Base{ID: 9}, Username: "alice"}

func serveWithAuth(mw gin.HandlerFunc, header string) (*httptest.ResponseRecorder, gin.H) {
	seen := gin.H{}
	r := gin.New()
	r.GET("/", mw, func(c *gin.Context) {
		if v, ok := c.Get(ContextUserID); ok {
			seen["user_id"] = v
		}
		seen["session_id"] = c.GetString(ContextSessionID)
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec, seen
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("valid access token", func(t *testing.T) {
		token, err := GenerateAccessToken(testUser, "session-1")
		require.NoError(t, err)

		rec, seen := serveWithAuth(AuthMiddleware(), "Bearer "+token)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, uint(9), seen["user_id"])
		assert.Equal(t, "session-1", seen["session_id"])
	})

	t.Run("missing header", func(t *testing.T) {
		rec, _ := serveWithAuth(AuthMiddleware(), "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
	})

	t.Run("wrong scheme", func(t *testing.T) {
		token, _ := GenerateAccessToken(testUser, "s")
		rec, _ := serveWithAuth(AuthMiddleware(), "Token "+token)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("refresh token rejected", func(t *testing.T) {
		token, _ := GenerateRefreshToken(testUser, "s")
		rec, _ := serveWithAuth(AuthMiddleware(), "Bearer "+token)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := signToken(testUser, "s", tokenTypeAccess, -time.Minute)
		require.NoError(t, err)

		rec, _ := serveWithAuth(AuthMiddleware(), "Bearer "+token)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("foreign signature", func(t *testing.T) {
		claims := &JWTClaims{UserID: 9, TokenType: tokenTypeAccess, RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("another-secret"))
		require.NoError(t, err)

		rec, _ := serveWithAuth(AuthMiddleware(), "Bearer "+token)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestOptionalAuthMiddleware(t *testing.T) {
	t.Run("anonymous passes through", func(t *testing.T) {
		rec, seen := serveWithAuth(OptionalAuthMiddleware(), "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.NotContains(t, seen, "user_id")
	})

	t.Run("bad token is treated as anonymous", func(t *testing.T) {
		rec, seen := serveWithAuth(OptionalAuthMiddleware(), "Bearer garbage")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.NotContains(t, seen, "user_id")
	})

	t.Run("valid token sets the user", func(t *testing.T) {
		token, _ := GenerateAccessToken(testUser, "s")
		_, seen := serveWithAuth(OptionalAuthMiddleware(), "Bearer "+token)

		assert.Equal(t, uint(9), seen["user_id"])
	})
}

func TestRefreshTokens(t *testing.T) {
	token, err := GenerateRefreshToken(testUser, "session-2")
	require.NoError(t, err)

	claims, err := ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(9), claims.UserID)
	assert.Equal(t, "session-2", claims.SessionID)

	access, _ := GenerateAccessToken(testUser, "session-2")
	_, err = ValidateRefreshToken(access)
	assert.Error(t, err)

	assert.Len(t, HashToken(token), 64)
	assert.Equal(t, HashToken(token), HashToken(token))
}
