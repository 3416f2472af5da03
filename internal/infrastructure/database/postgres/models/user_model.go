package models

import (
	"time"

	"github.com/google/uuid"
)

// UserModel represents the database model for User
type UserModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	FirstName    string     `gorm:"type:varchar(100);not null"`
	LastName     string     `gorm:"type:varchar(100);not null"`
	Username     string     `gorm:"type:varchar(200);not null;uniqueIndex"`
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	Role         string     `gorm:"type:varchar(50);not null;default:'student'"`
	IsVerified   bool       `gorm:"default:false;not null"`
	OTPCode      *string    `gorm:"type:varchar(6)"`
	OTPExpiresAt *time.Time `gorm:"type:timestamp"`
	CreatedAt    time.Time  `gorm:"not null"`
	UpdatedAt    time.Time  `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}

// PasswordResetTokenModel represents the database model for PasswordResetToken
type PasswordResetTokenModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Token     string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"not null;index"`

	User *UserModel `gorm:"foreignKey:UserID"`
}

func (PasswordResetTokenModel) TableName() string {
	return "password_reset_tokens"
}
