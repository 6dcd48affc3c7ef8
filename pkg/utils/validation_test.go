package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	ok, err := ValidateEmail("jean.dupont@example.fr")
	assert.True(t, ok)
	assert.NoError(t, err)

	ok, _ = ValidateEmail("not-an-email")
	assert.False(t, ok)

	ok, _ = ValidateEmail("")
	assert.False(t, ok)
}

func TestValidatePhone(t *testing.T) {
	for _, phone := range []string{"+33612345678", "+33123456789", "0612345678", "0123456789"} {
		ok, err := ValidatePhone(phone)
		assert.True(t, ok, phone)
		assert.NoError(t, err)
	}

	for _, phone := range []string{"12345", "+3361234567", "06123456789", "+44612345678", ""} {
		ok, _ := ValidatePhone(phone)
		assert.False(t, ok, phone)
	}
}

func queryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/admin/participants?"+rawQuery, nil)
	return c
}

func TestGetQueryParamAsInt(t *testing.T) {
	value, err := GetQueryParamAsInt(queryContext(t, "limit=25"), "limit", 50)
	require.NoError(t, err)
	assert.Equal(t, 25, value)

	// absent parameter falls back to the default
	value, err = GetQueryParamAsInt(queryContext(t, ""), "limit", 50)
	require.NoError(t, err)
	assert.Equal(t, 50, value)

	_, err = GetQueryParamAsInt(queryContext(t, "limit=abc"), "limit", 50)
	assert.ErrorContains(t, err, "invalid limit")

	_, err = GetQueryParamAsInt(queryContext(t, "limit=0"), "limit", 50)
	assert.ErrorContains(t, err, "invalid limit")

	_, err = GetQueryParamAsInt(queryContext(t, "page=-1"), "page", 1)
	assert.ErrorContains(t, err, "invalid page")
}

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "menu offert", NormalizeTitle("  Menu Offert "))
	assert.Equal(t, "ticket d'or", NormalizeTitle("Ticket d'Or"))
}

func TestSHA256Hex(t *testing.T) {
	digest := SHA256Hex([]byte("hello"))
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", digest)
	assert.NotEqual(t, digest, SHA256Hex([]byte("hello ")))
}
