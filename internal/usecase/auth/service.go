package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"smartiq-backend/internal/config"
	domainUser "smartiq-backend/internal/domain/user"
	"smartiq-backend/internal/email"
	"smartiq-backend/internal/logger"
	appErrors "smartiq-backend/pkg/errors"
	"smartiq-backend/pkg/utils"
)

// OTPTTL is how long an emailed verification code stays redeemable.
const OTPTTL = 10 * time.Minute

// Service implements the authentication and credential-lifecycle flows.
type Service struct {
	userRepo       domainUser.Repository
	resetTokenRepo domainUser.ResetTokenRepository
	notifier       email.Notifier
	config         *config.Config

	now func() time.Time
}

// NewService creates a new auth service
func NewService(
	userRepo domainUser.Repository,
	resetTokenRepo domainUser.ResetTokenRepository,
	notifier email.Notifier,
	cfg *config.Config,
) *Service {
	return &Service{
		userRepo:       userRepo,
		resetTokenRepo: resetTokenRepo,
		notifier:       notifier,
		config:         cfg,
		now:            time.Now,
	}
}

func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	username := utils.DeriveUsername(req.FirstName, req.LastName)
	normalizedEmail := utils.SanitizeEmail(req.Email)

	// Pre-checks give the caller a field-specific error; the unique indexes
	// remain the backstop for concurrent registrations.
	if _, err := s.userRepo.GetByEmail(ctx, normalizedEmail); err == nil {
		logger.Warn("Registration attempt with existing email",
			zap.String("email", normalizedEmail),
			zap.String("event", "registration_failed_duplicate_email"),
		)
		return nil, appErrors.ErrEmailTaken
	} else if !errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		logger.Warn("Registration attempt with colliding username",
			zap.String("username", username),
			zap.String("event", "registration_failed_duplicate_username"),
		)
		return nil, appErrors.ErrUsernameTaken
	} else if !errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing username: %w", err)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &domainUser.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Username:     username,
		Email:        normalizedEmail,
		PasswordHash: hashedPassword,
		Role:         domainUser.RoleStudent,
		IsVerified:   true,
	}

	verificationRequired := s.config.Auth.RequireEmailVerification
	if verificationRequired {
		u.IsVerified = false
		u.OTP = &domainUser.OTP{
			Code:      utils.GenerateOTP(),
			ExpiresAt: s.now().Add(OTPTTL),
		}
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		switch {
		case errors.Is(err, domainUser.ErrEmailTaken):
			return nil, appErrors.ErrEmailTaken
		case errors.Is(err, domainUser.ErrUsernameTaken):
			return nil, appErrors.ErrUsernameTaken
		}
		return nil, err
	}

	if verificationRequired {
		// Dispatch failure must not fail the registration, only be visible.
		if err := s.notifier.SendOTP(ctx, u.Email, u.FirstName, u.OTP.Code); err != nil {
			logger.Error("Failed to send verification code",
				zap.String("user_id", u.ID.String()),
				zap.String("email", u.Email),
				zap.String("event", "otp_dispatch_failed"),
				zap.Error(err),
			)
		}
	}

	logger.Info("User registered successfully",
		zap.String("user_id", u.ID.String()),
		zap.String("email", u.Email),
		zap.String("username", u.Username),
		zap.Bool("verification_required", verificationRequired),
		zap.String("event", "user_registered"),
	)

	return &RegisterResponse{
		User:                 ToUserResponse(u),
		VerificationRequired: verificationRequired,
	}, nil
}

func (s *Service) VerifyOTP(ctx context.Context, req *VerifyOTPRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid user ID", err)
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return appErrors.ErrUserNotFound
		}
		return err
	}

	// A cleared payload covers both "already verified" and "never issued".
	if u.OTP == nil || u.OTP.Code != req.OTP || u.OTP.IsExpired(s.now()) {
		logger.Warn("OTP verification failed",
			zap.String("user_id", u.ID.String()),
			zap.String("event", "otp_verification_failed"),
		)
		return appErrors.ErrOTPInvalid
	}

	u.IsVerified = true
	u.OTP = nil

	if err := s.userRepo.Update(ctx, u); err != nil {
		return err
	}

	logger.Info("User verified successfully",
		zap.String("user_id", u.ID.String()),
		zap.String("email", u.Email),
		zap.String("event", "user_verified"),
	)

	return nil
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	normalizedEmail := utils.SanitizeEmail(req.Email)

	u, err := s.userRepo.GetByEmail(ctx, normalizedEmail)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Warn("Login attempt with non-existent email",
				zap.String("email", normalizedEmail),
				zap.String("event", "login_failed_user_not_found"),
			)
			// Same error as a wrong password so callers cannot probe for
			// registered addresses.
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	// Reported before the password check so the client can route straight
	// to the verification screen.
	if !u.IsVerified {
		logger.Warn("Login attempt for unverified user",
			zap.String("user_id", u.ID.String()),
			zap.String("event", "login_failed_not_verified"),
		)
		return nil, appErrors.ErrUserNotVerified
	}

	if !utils.CheckPassword(u.PasswordHash, req.Password) {
		logger.Warn("Login attempt with invalid password",
			zap.String("user_id", u.ID.String()),
			zap.String("event", "login_failed_invalid_password"),
		)
		return nil, appErrors.ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(
		u.ID,
		u.Role,
		s.config.JWT.Secret,
		time.Duration(s.config.JWT.ExpiryHours)*time.Hour,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Info("User logged in successfully",
		zap.String("user_id", u.ID.String()),
		zap.String("role", u.Role),
		zap.String("event", "login_success"),
	)

	return &LoginResponse{
		Token: token,
		User:  ToUserResponse(u),
	}, nil
}

func (s *Service) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	normalizedEmail := utils.SanitizeEmail(req.Email)

	u, err := s.userRepo.GetByEmail(ctx, normalizedEmail)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			// Discloses account existence; kept for parity with the
			// platform's published API contract.
			return appErrors.ErrUserNotFound
		}
		return err
	}

	resetToken := &domainUser.PasswordResetToken{
		UserID: u.ID,
		Token:  utils.GenerateResetToken(),
	}

	if err := s.resetTokenRepo.Create(ctx, resetToken); err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.config.Auth.FrontendURL, resetToken.Token)
	if err := s.notifier.SendPasswordReset(ctx, u.Email, resetURL); err != nil {
		logger.Error("Failed to send password reset email",
			zap.String("user_id", u.ID.String()),
			zap.String("event", "reset_email_dispatch_failed"),
			zap.Error(err),
		)
		return appErrors.ErrEmailDeliveryFailed
	}

	logger.Info("Password reset token issued",
		zap.String("user_id", u.ID.String()),
		zap.String("token_id", resetToken.ID.String()),
		zap.String("event", "password_reset_token_issued"),
	)

	return nil
}

// ValidateResetToken checks a token without consuming it and returns the
// owning account's email for display. Expired rows are deleted on sight.
func (s *Service) ValidateResetToken(ctx context.Context, req *ValidateResetTokenRequest) (*ValidateResetTokenResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	resetToken, err := s.lookupResetToken(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	u, err := s.userRepo.GetByID(ctx, resetToken.UserID)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, appErrors.ErrResetTokenInvalid
		}
		return nil, err
	}

	return &ValidateResetTokenResponse{Email: u.Email}, nil
}

func (s *Service) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	resetToken, err := s.lookupResetToken(ctx, req.Token)
	if err != nil {
		return err
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, resetToken.UserID, hashedPassword); err != nil {
		return err
	}

	// Single-use guarantee: the row is gone before the response leaves.
	if err := s.resetTokenRepo.Delete(ctx, resetToken.ID); err != nil {
		logger.Error("Failed to delete consumed reset token",
			zap.String("token_id", resetToken.ID.String()),
			zap.Error(err),
		)
	}

	logger.Info("Password reset successfully",
		zap.String("user_id", resetToken.UserID.String()),
		zap.String("token_id", resetToken.ID.String()),
		zap.String("event", "password_reset_success"),
	)

	return nil
}

func (s *Service) AdminResetPassword(ctx context.Context, req *AdminResetPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	configured := s.config.Auth.AdminResetToken
	if configured == "" ||
		subtle.ConstantTimeCompare([]byte(req.AdminToken), []byte(configured)) != 1 {
		logger.Warn("Unauthorized admin reset attempt",
			zap.String("email", req.Email),
			zap.String("event", "admin_reset_unauthorized"),
		)
		return appErrors.ErrUnauthorized
	}

	u, err := s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return appErrors.ErrUserNotFound
		}
		return err
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, u.ID, hashedPassword); err != nil {
		return err
	}

	// The override also force-verifies the account.
	u.IsVerified = true
	u.OTP = nil
	if err := s.userRepo.Update(ctx, u); err != nil {
		return err
	}

	// Audit trail for the emergency override.
	logger.Info("Admin password reset performed",
		zap.String("user_id", u.ID.String()),
		zap.String("email", u.Email),
		zap.String("event", "admin_password_reset"),
	)

	return nil
}

// lookupResetToken fetches a token row and enforces the one-hour TTL,
// eagerly deleting expired rows.
func (s *Service) lookupResetToken(ctx context.Context, token string) (*domainUser.PasswordResetToken, error) {
	resetToken, err := s.resetTokenRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domainUser.ErrResetTokenNotFound) {
			logger.Warn("Reset token lookup failed",
				zap.String("event", "reset_token_not_found"),
			)
			return nil, appErrors.ErrResetTokenInvalid
		}
		return nil, err
	}

	if resetToken.IsExpired(s.now()) {
		if err := s.resetTokenRepo.Delete(ctx, resetToken.ID); err != nil {
			logger.Error("Failed to delete expired reset token",
				zap.String("token_id", resetToken.ID.String()),
				zap.Error(err),
			)
		}
		return nil, appErrors.ErrResetTokenInvalid
	}

	return resetToken, nil
}
