package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"smartiq-backend/internal/config"
)

// SMTPNotifier delivers mail through an external SMTP relay.
type SMTPNotifier struct {
	cfg *config.SMTPConfig
}

func NewSMTPNotifier(cfg *config.SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg}
}

func (n *SMTPNotifier) SendOTP(ctx context.Context, to, firstName, code string) error {
	subject := "Your SmartIQ Academy verification code"
	body := fmt.Sprintf(otpTemplate, firstName, code)

	return n.send(ctx, to, subject, body)
}

func (n *SMTPNotifier) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	subject := "Password Reset Request for SmartIQ Academy"
	body := fmt.Sprintf(passwordResetTemplate, resetURL)

	return n.send(ctx, to, subject, body)
}

func (n *SMTPNotifier) send(ctx context.Context, to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(
		n.cfg.Host,
		n.cfg.Port,
		n.cfg.User,
		n.cfg.Password,
	)

	done := make(chan error, 1)
	go func() {
		done <- d.DialAndSend(m)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}
