package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrUserNotVerified         = errors.New("account is not verified")
	ErrUnauthorized            = errors.New("unauthorized access")
	ErrInsufficientPermissions = errors.New("insufficient permissions")

	ErrUserNotFound     = errors.New("user not found")
	ErrEmailTaken       = errors.New("email is already taken")
	ErrUsernameTaken    = errors.New("username is already taken")
	ErrCategoryNotFound = errors.New("exam category not found")

	ErrResetTokenInvalid = errors.New("invalid or expired reset token")
	ErrOTPInvalid        = errors.New("invalid or expired OTP")
	ErrTokenExpired      = errors.New("token has expired")
	ErrTokenInvalid      = errors.New("token is invalid")

	ErrEmailDeliveryFailed = errors.New("failed to send email")
)

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
