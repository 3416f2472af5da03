package auth

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"smartiq-backend/internal/config"
	domainUser "smartiq-backend/internal/domain/user"
	"smartiq-backend/internal/logger"
	appErrors "smartiq-backend/pkg/errors"
	"smartiq-backend/pkg/utils"
)

func TestMain(m *testing.M) {
	logger.Logger = zap.NewNop()
	os.Exit(m.Run())
}

type fakeUserRepo struct {
	users map[uuid.UUID]*domainUser.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domainUser.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *domainUser.User) error {
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domainUser.ErrEmailTaken
		}
		if existing.Username == u.Username {
			return domainUser.ErrUsernameTaken
		}
	}

	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()

	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domainUser.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domainUser.ErrUserNotFound
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domainUser.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domainUser.ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID uuid.UUID) (*domainUser.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, domainUser.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *domainUser.User) error {
	stored, ok := r.users[u.ID]
	if !ok {
		return domainUser.ErrUserNotFound
	}
	stored.IsVerified = u.IsVerified
	stored.OTP = u.OTP
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, userID uuid.UUID, passwordHash string) error {
	stored, ok := r.users[userID]
	if !ok {
		return domainUser.ErrUserNotFound
	}
	stored.PasswordHash = passwordHash
	stored.UpdatedAt = time.Now()
	return nil
}

type fakeResetTokenRepo struct {
	tokens map[string]*domainUser.PasswordResetToken
}

func newFakeResetTokenRepo() *fakeResetTokenRepo {
	return &fakeResetTokenRepo{tokens: make(map[string]*domainUser.PasswordResetToken)}
}

func (r *fakeResetTokenRepo) Create(_ context.Context, t *domainUser.PasswordResetToken) error {
	t.ID = uuid.New()
	t.CreatedAt = time.Now()
	r.tokens[t.Token] = t
	return nil
}

func (r *fakeResetTokenRepo) GetByToken(_ context.Context, token string) (*domainUser.PasswordResetToken, error) {
	t, ok := r.tokens[token]
	if !ok {
		return nil, domainUser.ErrResetTokenNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *fakeResetTokenRepo) Delete(_ context.Context, tokenID uuid.UUID) error {
	for key, t := range r.tokens {
		if t.ID == tokenID {
			delete(r.tokens, key)
			return nil
		}
	}
	return domainUser.ErrResetTokenNotFound
}

type fakeNotifier struct {
	otpCodes  []string
	resetURLs []string
	failSends bool
}

func (n *fakeNotifier) SendOTP(_ context.Context, _, _, code string) error {
	if n.failSends {
		return assert.AnError
	}
	n.otpCodes = append(n.otpCodes, code)
	return nil
}

func (n *fakeNotifier) SendPasswordReset(_ context.Context, _, resetURL string) error {
	if n.failSends {
		return assert.AnError
	}
	n.resetURLs = append(n.resetURLs, resetURL)
	return nil
}

func newTestConfig(requireVerification bool) *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:      "test-secret",
			ExpiryHours: 1,
		},
		Auth: config.AuthConfig{
			AdminResetToken:          "super-secret-admin-token",
			RequireEmailVerification: requireVerification,
			FrontendURL:              "https://app.example.com",
		},
	}
}

type testEnv struct {
	svc       *Service
	userRepo  *fakeUserRepo
	tokenRepo *fakeResetTokenRepo
	notifier  *fakeNotifier
}

func newTestEnv(requireVerification bool) *testEnv {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeResetTokenRepo()
	notifier := &fakeNotifier{}
	svc := NewService(userRepo, tokenRepo, notifier, newTestConfig(requireVerification))

	return &testEnv{svc: svc, userRepo: userRepo, tokenRepo: tokenRepo, notifier: notifier}
}

func registerAnnLee(t *testing.T, env *testEnv) *RegisterResponse {
	t.Helper()

	resp, err := env.svc.Register(context.Background(), &RegisterRequest{
		FirstName: "Ann",
		LastName:  "Lee",
		Email:     "Ann.Lee@Example.com",
		Password:  "correct-horse",
	})
	require.NoError(t, err)
	return resp
}

func TestRegisterAndLoginRoundTrip(t *testing.T) {
	env := newTestEnv(false)

	resp := registerAnnLee(t, env)
	assert.Equal(t, "annlee", resp.User.Username)
	assert.Equal(t, "ann.lee@example.com", resp.User.Email)
	assert.Equal(t, domainUser.RoleStudent, resp.User.Role)
	assert.True(t, resp.User.IsVerified)
	assert.False(t, resp.VerificationRequired)

	login, err := env.svc.Login(context.Background(), &LoginRequest{
		Email:    "ann.lee@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	require.NotEmpty(t, login.Token)
	assert.Equal(t, resp.User.ID, login.User.ID)

	claims, err := utils.ValidateToken(login.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "student", claims.Role)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	env := newTestEnv(false)
	registerAnnLee(t, env)

	_, err := env.svc.Register(context.Background(), &RegisterRequest{
		FirstName: "Another",
		LastName:  "Person",
		Email:     "ann.lee@example.com",
		Password:  "password1",
	})
	assert.ErrorIs(t, err, appErrors.ErrEmailTaken)

	_, err = env.svc.Register(context.Background(), &RegisterRequest{
		FirstName: "Ann",
		LastName:  "Lee",
		Email:     "different@example.com",
		Password:  "password1",
	})
	assert.ErrorIs(t, err, appErrors.ErrUsernameTaken)
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	env := newTestEnv(false)

	_, err := env.svc.Register(context.Background(), &RegisterRequest{
		FirstName: "A",
		LastName:  "Lee",
		Email:     "not-an-email",
		Password:  "short",
	})
	require.Error(t, err)

	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestLoginEnumerationResistance(t *testing.T) {
	env := newTestEnv(false)
	registerAnnLee(t, env)

	_, wrongPassword := env.svc.Login(context.Background(), &LoginRequest{
		Email:    "ann.lee@example.com",
		Password: "wrong-password",
	})
	_, unknownEmail := env.svc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct-horse",
	})

	assert.ErrorIs(t, wrongPassword, appErrors.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, appErrors.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestOTPVerificationFlow(t *testing.T) {
	env := newTestEnv(true)

	resp := registerAnnLee(t, env)
	assert.True(t, resp.VerificationRequired)
	assert.False(t, resp.User.IsVerified)
	require.Len(t, env.notifier.otpCodes, 1)

	code := env.notifier.otpCodes[0]
	require.Len(t, code, 6)

	_, err := env.svc.Login(context.Background(), &LoginRequest{
		Email:    "ann.lee@example.com",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, appErrors.ErrUserNotVerified)

	wrongCode := "000000"
	if wrongCode == code {
		wrongCode = "000001"
	}
	err = env.svc.VerifyOTP(context.Background(), &VerifyOTPRequest{
		UserID: resp.User.ID.String(),
		OTP:    wrongCode,
	})
	assert.ErrorIs(t, err, appErrors.ErrOTPInvalid)

	err = env.svc.VerifyOTP(context.Background(), &VerifyOTPRequest{
		UserID: resp.User.ID.String(),
		OTP:    code,
	})
	require.NoError(t, err)

	login, err := env.svc.Login(context.Background(), &LoginRequest{
		Email:    "ann.lee@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.True(t, login.User.IsVerified)

	// The code is cleared on success and cannot be replayed.
	err = env.svc.VerifyOTP(context.Background(), &VerifyOTPRequest{
		UserID: resp.User.ID.String(),
		OTP:    code,
	})
	assert.ErrorIs(t, err, appErrors.ErrOTPInvalid)
}

func TestOTPExpiry(t *testing.T) {
	env := newTestEnv(true)

	resp := registerAnnLee(t, env)
	require.Len(t, env.notifier.otpCodes, 1)
	code := env.notifier.otpCodes[0]

	env.svc.now = func() time.Time { return time.Now().Add(OTPTTL + time.Minute) }

	err := env.svc.VerifyOTP(context.Background(), &VerifyOTPRequest{
		UserID: resp.User.ID.String(),
		OTP:    code,
	})
	assert.ErrorIs(t, err, appErrors.ErrOTPInvalid)
}

func TestVerifyOTPUnknownUser(t *testing.T) {
	env := newTestEnv(true)

	err := env.svc.VerifyOTP(context.Background(), &VerifyOTPRequest{
		UserID: uuid.NewString(),
		OTP:    "123456",
	})
	assert.ErrorIs(t, err, appErrors.ErrUserNotFound)
}

func TestForgotPassword(t *testing.T) {
	env := newTestEnv(false)
	registerAnnLee(t, env)

	err := env.svc.ForgotPassword(context.Background(), &ForgotPasswordRequest{
		Email: "nobody@example.com",
	})
	assert.ErrorIs(t, err, appErrors.ErrUserNotFound)

	err = env.svc.ForgotPassword(context.Background(), &ForgotPasswordRequest{
		Email: "ann.lee@example.com",
	})
	require.NoError(t, err)
	require.Len(t, env.tokenRepo.tokens, 1)
	require.Len(t, env.notifier.resetURLs, 1)

	for token := range env.tokenRepo.tokens {
		assert.Len(t, token, 64)
		assert.Contains(t, env.notifier.resetURLs[0], token)
	}
}

func TestForgotPasswordEmailFailure(t *testing.T) {
	env := newTestEnv(false)
	registerAnnLee(t, env)
	env.notifier.failSends = true

	err := env.svc.ForgotPassword(context.Background(), &ForgotPasswordRequest{
		Email: "ann.lee@example.com",
	})
	assert.ErrorIs(t, err, appErrors.ErrEmailDeliveryFailed)
}

func issueResetToken(t *testing.T, env *testEnv) string {
	t.Helper()

	err := env.svc.ForgotPassword(context.Background(), &ForgotPasswordRequest{
		Email: "ann.lee@example.com",
	})
	require.NoError(t, err)

	for token := range env.tokenRepo.tokens {
		return token
	}
	t.Fatal("no reset token issued")
	return ""
}

func TestValidateResetTokenWindow(t *testing.T) {
	env := newTestEnv(false)
	registerAnnLee(t, env)
	token := issueResetToken(t, env)

	issuedAt := env.tokenRepo.tokens[token].CreatedAt

	env.svc.now = func() time.Time { return issuedAt.Add(59 * time.Minute) }
	resp, err := env.svc.ValidateResetToken(context.Background(), &ValidateResetTokenRequest{Token: token})
	require.NoError(t, err)
	assert.Equal(t, "ann.lee@example.com", resp.Email)

	env.svc.now = func() time.Time { return issuedAt.Add(61 * time.Minute) }
	_, err = env.svc.ValidateResetToken(context.Background(), &ValidateResetTokenRequest{Token: token})
	assert.ErrorIs(t, err, appErrors.ErrResetTokenInvalid)

	// The expired row is deleted eagerly, not left to rot.
	assert.Empty(t, env.tokenRepo.tokens)
}

func TestValidateResetTokenUnknown(t *testing.T) {
	env := newTestEnv(false)

	_, err := env.svc.ValidateResetToken(context.Background(), &ValidateResetTokenRequest{
		Token: "deadbeef",
	})
	assert.ErrorIs(t, err, appErrors.ErrResetTokenInvalid)
}

func TestResetPasswordSingleUse(t *testing.T) {
	env := newTestEnv(false)
	registerAnnLee(t, env)
	token := issueResetToken(t, env)

	err := env.svc.ResetPassword(context.Background(), &ResetPasswordRequest{
		Token:       token,
		NewPassword: "brand-new-password",
	})
	require.NoError(t, err)

	_, err = env.svc.Login(context.Background(), &LoginRequest{
		Email:    "ann.lee@example.com",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	_, err = env.svc.Login(context.Background(), &LoginRequest{
		Email:    "ann.lee@example.com",
		Password: "brand-new-password",
	})
	require.NoError(t, err)

	err = env.svc.ResetPassword(context.Background(), &ResetPasswordRequest{
		Token:       token,
		NewPassword: "yet-another-password",
	})
	assert.ErrorIs(t, err, appErrors.ErrResetTokenInvalid)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	env := newTestEnv(false)
	registerAnnLee(t, env)
	token := issueResetToken(t, env)

	issuedAt := env.tokenRepo.tokens[token].CreatedAt
	env.svc.now = func() time.Time { return issuedAt.Add(domainUser.ResetTokenTTL + time.Minute) }

	err := env.svc.ResetPassword(context.Background(), &ResetPasswordRequest{
		Token:       token,
		NewPassword: "brand-new-password",
	})
	assert.ErrorIs(t, err, appErrors.ErrResetTokenInvalid)
}

func TestAdminResetPassword(t *testing.T) {
	env := newTestEnv(true)
	resp := registerAnnLee(t, env)

	err := env.svc.AdminResetPassword(context.Background(), &AdminResetPasswordRequest{
		Email:       "ann.lee@example.com",
		NewPassword: "admin-chosen-pass",
		AdminToken:  "wrong-token",
	})
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)

	err = env.svc.AdminResetPassword(context.Background(), &AdminResetPasswordRequest{
		Email:       "nobody@example.com",
		NewPassword: "admin-chosen-pass",
		AdminToken:  "super-secret-admin-token",
	})
	assert.ErrorIs(t, err, appErrors.ErrUserNotFound)

	err = env.svc.AdminResetPassword(context.Background(), &AdminResetPasswordRequest{
		Email:       "ann.lee@example.com",
		NewPassword: "admin-chosen-pass",
		AdminToken:  "super-secret-admin-token",
	})
	require.NoError(t, err)

	// The override verifies the account even though the OTP was never redeemed.
	login, err := env.svc.Login(context.Background(), &LoginRequest{
		Email:    "ann.lee@example.com",
		Password: "admin-chosen-pass",
	})
	require.NoError(t, err)
	assert.True(t, login.User.IsVerified)
	assert.Equal(t, resp.User.ID, login.User.ID)
}

func TestAdminResetPasswordUnconfiguredToken(t *testing.T) {
	env := newTestEnv(false)
	registerAnnLee(t, env)
	env.svc.config.Auth.AdminResetToken = ""

	err := env.svc.AdminResetPassword(context.Background(), &AdminResetPasswordRequest{
		Email:       "ann.lee@example.com",
		NewPassword: "admin-chosen-pass",
		AdminToken:  "anything",
	})
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}
