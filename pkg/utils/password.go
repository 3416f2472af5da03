package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt work factor used for all stored passwords.
const HashCost = 10

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	return string(bytes), err
}

// CheckPassword never returns an error: a malformed or mismatched hash
// reports as a plain verification failure.
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
