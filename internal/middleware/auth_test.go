package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktracker/internal/services"
)

var testSecret = []byte("test-secret")

func newTestRouter(t *testing.T, invoked *bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware(testSecret))
	r.GET("/tasks", func(c *gin.Context) {
		*invoked = true
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetInt64("user_id"),
		})
	})
	r.POST("/auth/telegram", func(c *gin.Context) {
		*invoked = true
		c.Status(http.StatusOK)
	})
	return r
}

func issueToken(t *testing.T, userID int64, ttl time.Duration) string {
	t.Helper()
	token, err := services.IssueSessionToken(testSecret, userID, 42, ttl)
	require.NoError(t, err)
	return token
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	var invoked bool
	r := newTestRouter(t, &invoked)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, invoked, "handler must not run without a token")
}

func TestAuthMiddlewareMissingIdentityHeader(t *testing.T) {
	var invoked bool
	r := newTestRouter(t, &invoked)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, 7, time.Hour))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, invoked)
}

func TestAuthMiddlewareIdentityMismatch(t *testing.T) {
	var invoked bool
	r := newTestRouter(t, &invoked)

	// токен выписан на 7, а клиент представился как 8
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, 7, time.Hour))
	req.Header.Set(IdentityHeader, "8")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, invoked)
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	var invoked bool
	r := newTestRouter(t, &invoked)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, 7, -time.Hour))
	req.Header.Set(IdentityHeader, "7")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, invoked)
}

func TestAuthMiddlewareValid(t *testing.T) {
	var invoked bool
	r := newTestRouter(t, &invoked)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, 7, time.Hour))
	req.Header.Set(IdentityHeader, "7")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, invoked)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
}

func TestAuthMiddlewarePublicPath(t *testing.T) {
	var invoked bool
	r := newTestRouter(t, &invoked)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/telegram", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, invoked)
}

func TestAuthMiddlewareMalformedBearer(t *testing.T) {
	var invoked bool
	r := newTestRouter(t, &invoked)

	for _, header := range []string{"Bearer", "Token abc", "Bearer   "} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req.Header.Set("Authorization", header)
		req.Header.Set(IdentityHeader, "7")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
	assert.False(t, invoked)
}
