package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartiq-backend/internal/domain/user"
	"smartiq-backend/internal/infrastructure/database/postgres/models"
)

// ResetTokenRepository implements user.ResetTokenRepository on top of gorm.
type ResetTokenRepository struct {
	db *DB
}

// NewResetTokenRepository creates a new password-reset token repository
func NewResetTokenRepository(db *DB) user.ResetTokenRepository {
	return &ResetTokenRepository{db: db}
}

func (r *ResetTokenRepository) Create(ctx context.Context, token *user.PasswordResetToken) error {
	token.ID = uuid.New()
	token.CreatedAt = time.Now()

	dbModel := toResetTokenModel(token)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}

	token.ID = dbModel.ID
	token.CreatedAt = dbModel.CreatedAt

	return nil
}

func (r *ResetTokenRepository) GetByToken(ctx context.Context, token string) (*user.PasswordResetToken, error) {
	var dbModel models.PasswordResetTokenModel
	err := r.db.DB.WithContext(ctx).Where("token = ?", token).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrResetTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reset token: %w", err)
	}

	return toResetTokenEntity(&dbModel), nil
}

func (r *ResetTokenRepository) Delete(ctx context.Context, tokenID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Delete(&models.PasswordResetTokenModel{}, "id = ?", tokenID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete reset token: %w", result.Error)
	}

	return nil
}

func toResetTokenModel(t *user.PasswordResetToken) *models.PasswordResetTokenModel {
	return &models.PasswordResetTokenModel{
		ID:        t.ID,
		UserID:    t.UserID,
		Token:     t.Token,
		CreatedAt: t.CreatedAt,
	}
}

func toResetTokenEntity(m *models.PasswordResetTokenModel) *user.PasswordResetToken {
	return &user.PasswordResetToken{
		ID:        m.ID,
		UserID:    m.UserID,
		Token:     m.Token,
		CreatedAt: m.CreatedAt,
	}
}
