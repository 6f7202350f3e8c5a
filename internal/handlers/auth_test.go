package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"gehna-backend/internal/models"
	"gehna-backend/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func postLogin(body string) *httptest.ResponseRecorder {
	r := gin.New()
	r.POST("/api/auth/login", Login)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

// swapUserLookup replaces the login lookup for the test's duration.
func swapUserLookup(t *testing.T, lookup func(context.Context, string) (*models.User, error)) {
	t.Helper()
	orig := userByEmail
	userByEmail = lookup
	t.Cleanup(func() { userByEmail = orig })
}

func TestLoginDoesNotRevealWhichCredentialFailed(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_jwt_secret")

	hashed, err := utils.HashPassword("right-password")
	require.NoError(t, err)
	account := models.User{
		ID:       primitive.NewObjectID(),
		Name:     "Priya",
		Email:    "priya@example.com",
		Password: hashed,
	}

	swapUserLookup(t, func(ctx context.Context, email string) (*models.User, error) {
		if email == account.Email {
			u := account
			return &u, nil
		}
		return nil, mongo.ErrNoDocuments
	})

	unknownEmail := postLogin(`{"email":"nobody@example.com","password":"right-password"}`)
	wrongPassword := postLogin(`{"email":"priya@example.com","password":"wrong-password"}`)

	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, unknownEmail.Body.String(), wrongPassword.Body.String(),
		"unknown email and wrong password must be indistinguishable")
	assert.Contains(t, unknownEmail.Body.String(), invalidCredentials)
}

func TestLoginIssuesTokenForValidCredentials(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_jwt_secret")

	hashed, err := utils.HashPassword("right-password")
	require.NoError(t, err)
	account := models.User{
		ID:       primitive.NewObjectID(),
		Name:     "Priya",
		Email:    "priya@example.com",
		Password: hashed,
	}

	swapUserLookup(t, func(ctx context.Context, email string) (*models.User, error) {
		u := account
		return &u, nil
	})

	w := postLogin(`{"email":"priya@example.com","password":"right-password"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token"`)
	assert.Contains(t, w.Body.String(), "Login successful")
	assert.NotContains(t, w.Body.String(), hashed, "password hash must never leave the server")
}

func TestLoginSurfacesLookupFailureAsServerError(t *testing.T) {
	swapUserLookup(t, func(ctx context.Context, email string) (*models.User, error) {
		return nil, errors.New("server selection timeout")
	})

	w := postLogin(`{"email":"priya@example.com","password":"right-password"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), invalidCredentials,
		"an outage is not a credential failure")
}
