package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndCheck(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.True(t, IsHashed(hash))

	ok, rehash := h.Check("correct horse", hash)
	assert.True(t, ok)
	assert.False(t, rehash)

	ok, _ = h.Check("wrong horse", hash)
	assert.False(t, ok)
}

func TestPasswordHasher_LegacyPlaintext(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	ok, rehash := h.Check("admin", "admin")
	assert.True(t, ok)
	assert.True(t, rehash)

	ok, _ = h.Check("admin1", "admin")
	assert.False(t, ok)
}

func TestPasswordHasher_CostChangeNeedsRehash(t *testing.T) {
	hash, err := NewPasswordHasher(bcrypt.MinCost).Hash("secret")
	require.NoError(t, err)

	ok, rehash := NewPasswordHasher(bcrypt.MinCost+1).Check("secret", hash)
	assert.True(t, ok)
	assert.True(t, rehash)
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Minute)
	sessionID := uuid.New()

	token, err := svc.GenerateToken(sessionID)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, sessionID, claims.SessionID)
	assert.Equal(t, OwnerSubject, claims.Subject)
}

func TestJWTService_RejectsForeignSecretAndExpiry(t *testing.T) {
	token, err := NewJWTService("a", time.Minute).GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = NewJWTService("b", time.Minute).ValidateToken(token)
	assert.Error(t, err)

	expired, err := NewJWTService("a", -time.Minute).GenerateToken(uuid.New())
	require.NoError(t, err)
	_, err = NewJWTService("a", time.Minute).ValidateToken(expired)
	assert.Error(t, err)
}
