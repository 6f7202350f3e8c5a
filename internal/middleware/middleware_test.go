package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequireAdminForbidsNonAdmin(t *testing.T) {
	r := gin.New()
	mutated := false
	r.POST("/admin-only", func(c *gin.Context) {
		c.Set(CtxRole, "user")
	}, RequireAdmin, func(c *gin.Context) {
		mutated = true
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin-only", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, mutated, "handler must never run for a non-admin")
	assert.Contains(t, w.Body.String(), "Admin access only")
}

func TestRequireAdminRejectsMissingRole(t *testing.T) {
	r := gin.New()
	r.GET("/admin-only", RequireAdmin, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin-only", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	r := gin.New()
	r.GET("/admin-only", func(c *gin.Context) {
		c.Set(CtxRole, "admin")
	}, RequireAdmin, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin-only", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

// The token-shape failures below all reject before any user lookup happens,
// so they run without a database.

func TestAuthRequiredNoHeader(t *testing.T) {
	r := gin.New()
	r.GET("/me", AuthRequired(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredMalformedHeader(t *testing.T) {
	r := gin.New()
	r.GET("/me", AuthRequired(), func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, header := range []string{"Bearer", "Basic abc123", "Bearer a b c"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", header)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
	}
}

func TestAuthRequiredBadToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_jwt_secret")

	r := gin.New()
	r.GET("/me", AuthRequired(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
