package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// GenerateResetToken returns a 32-byte cryptographically random token,
// hex-encoded.
func GenerateResetToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// GenerateOTP returns a 6-digit numeric one-time code.
func GenerateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf("%06d", n.Int64())
}

// DeriveUsername builds the login name from the user's names: lowercased
// with all whitespace stripped.
func DeriveUsername(firstName, lastName string) string {
	joined := strings.ToLower(firstName + lastName)
	return strings.Join(strings.Fields(joined), "")
}
