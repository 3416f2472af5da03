package user

import "errors"

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailTaken    = errors.New("email is already taken")
	ErrUsernameTaken = errors.New("username is already taken")

	ErrResetTokenNotFound = errors.New("reset token not found")
)
