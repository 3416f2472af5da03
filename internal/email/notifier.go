package email

import "context"

// Notifier sends transactional mail. Delivery is fire-once: no retries, the
// caller decides whether a failure is fatal to the request.
type Notifier interface {
	// SendOTP mails the 6-digit verification code to a new account.
	SendOTP(ctx context.Context, to, firstName, code string) error

	// SendPasswordReset mails a reset link embedding the opaque token.
	SendPasswordReset(ctx context.Context, to, resetURL string) error
}
