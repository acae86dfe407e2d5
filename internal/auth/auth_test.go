package auth

import (
	"testing"

	"justfood/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := BuildJWT("testsecret", 42, models.RoleAdmin)
	require.NoError(t, err)

	claims, err := ParseJWT("testsecret", token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := BuildJWT("testsecret", 42, models.RoleCustomer)
	require.NoError(t, err)

	_, err = ParseJWT("othersecret", token)
	assert.Error(t, err)
}

func TestJWTGarbage(t *testing.T) {
	_, err := ParseJWT("testsecret", "not-a-token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, CheckPassword(hash, "hunter22"))
	assert.False(t, CheckPassword(hash, "hunter23"))
}

func TestIsStaff(t *testing.T) {
	assert.True(t, IsStaff(models.RoleAdmin))
	assert.False(t, IsStaff(models.RoleCustomer))
	assert.False(t, IsStaff(""))
}
