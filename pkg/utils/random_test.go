package utils

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateResetToken(t *testing.T) {
	token := GenerateResetToken()
	assert.Len(t, token, 64)

	decoded, err := hex.DecodeString(token)
	require.NoError(t, err)
	assert.Len(t, decoded, 32)

	assert.NotEqual(t, token, GenerateResetToken())
}

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 50; i++ {
		otp := GenerateOTP()
		require.Len(t, otp, 6)
		for _, r := range otp {
			require.True(t, r >= '0' && r <= '9')
		}
	}
}

func TestDeriveUsername(t *testing.T) {
	tests := []struct {
		firstName string
		lastName  string
		want      string
	}{
		{"Ann", "Lee", "annlee"},
		{"Mary Jane", "Watson", "maryjanewatson"},
		{"  Bob ", " Smith ", "bobsmith"},
		{"ÉLODIE", "Durand", "élodiedurand"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DeriveUsername(tt.firstName, tt.lastName))
	}
}
