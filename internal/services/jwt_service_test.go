package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTGenerateAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateNewToken("admin-1", "admin@example.fr")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.AdminID)
	assert.Equal(t, "admin@example.fr", claims.Email)
	assert.NotEmpty(t, claims.Id)
}

func TestJWTVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a").GenerateNewToken("admin-1", "admin@example.fr")
	require.NoError(t, err)

	_, err = NewJWTService("secret-b").VerifyToken(token)
	assert.ErrorContains(t, err, "invalid token")

	_, err = NewJWTService("secret-a").VerifyToken("not.a.token")
	assert.Error(t, err)
}
