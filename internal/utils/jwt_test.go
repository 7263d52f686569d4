package utils

import (
	"testing"

	"cognihub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_RoundTrip(t *testing.T) {
	token, err := GenerateJWT("user-1", domain.RoleTeacher, "secret")
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, domain.RoleTeacher, claims.Role)
}

func TestJWT_WrongSecretRejected(t *testing.T) {
	token, err := GenerateJWT("user-1", domain.RoleStudent, "secret")
	require.NoError(t, err)

	_, err = ParseJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestJWT_GarbageRejected(t *testing.T) {
	_, err := ParseJWT("not.a.token", "secret")
	assert.Error(t, err)
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "resources:network:EDU", ResourceListKey(domain.NetworkEDU))
	assert.Equal(t, "resources:network:GENERAL", ResourceListKey(domain.NetworkGeneral))
	assert.Equal(t, "profile:user:u1", ProfileKey("u1"))
}
