package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gehna-backend/internal/models"
)

func TestGenerateAndParseJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_jwt_secret")

	user := models.User{ID: primitive.NewObjectID(), Email: "asha@example.com", IsAdmin: true}

	token, err := GenerateJWT(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims["user_id"])
	assert.Equal(t, "admin", claims["role"])
}

func TestParseJWTWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret_one")
	token, err := GenerateJWT(models.User{ID: primitive.NewObjectID()})
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "secret_two")
	_, err = ParseJWT(token)
	assert.Error(t, err)
}

func TestParseJWTExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_jwt_secret")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": primitive.NewObjectID().Hex(),
		"role":    "user",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	tokenString, err := expired.SignedString([]byte("test_jwt_secret"))
	require.NoError(t, err)

	_, err = ParseJWT(tokenString)
	assert.Error(t, err)
}

func TestParseJWTGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_jwt_secret")

	_, err := ParseJWT("definitely.not.a-token")
	assert.Error(t, err)
}
