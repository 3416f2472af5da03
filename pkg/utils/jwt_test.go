package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "smartiq-backend/pkg/errors"
)

func TestGenerateAndValidateToken(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateToken(userID, "student", "secret", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "student", claims.Role)
}

func TestValidateTokenExpired(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "student", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token, "secret")
	assert.ErrorIs(t, err, appErrors.ErrTokenExpired)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "student", "secret", time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.ErrorIs(t, err, appErrors.ErrTokenInvalid)
}

func TestValidateTokenMalformed(t *testing.T) {
	_, err := ValidateToken("not.a.token", "secret")
	assert.ErrorIs(t, err, appErrors.ErrTokenInvalid)
}
