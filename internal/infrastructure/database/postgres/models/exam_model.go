package models

import (
	"time"

	"github.com/google/uuid"
)

// ExamCategoryModel represents the database model for an exam category
type ExamCategoryModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name          string    `gorm:"type:varchar(100);not null;index"`
	Description   string    `gorm:"type:text"`
	Icon          string    `gorm:"type:varchar(255)"`
	Subcategories []ExamSubcategoryModel `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

func (ExamCategoryModel) TableName() string {
	return "exam_categories"
}

// ExamSubcategoryModel represents the database model for a subcategory.
// SortOrder preserves the ordering a category's subcategories were created in.
type ExamSubcategoryModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CategoryID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Name             string    `gorm:"type:varchar(255);not null"`
	Eligibility      string    `gorm:"type:text;not null"`
	Courses          []string  `gorm:"serializer:json;type:jsonb"`
	Subjects         []string  `gorm:"serializer:json;type:jsonb"`
	ExamMode         string    `gorm:"type:varchar(20)"`
	Frequency        string    `gorm:"type:varchar(255)"`
	ConductingBody   string    `gorm:"type:varchar(255)"`
	Level            string    `gorm:"type:varchar(20);default:'National'"`
	AgeMin           *int
	AgeMax           *int
	SelectionProcess []string `gorm:"serializer:json;type:jsonb"`
	Purpose          string   `gorm:"type:text"`
	SortOrder        int      `gorm:"not null;default:0"`
}

func (ExamSubcategoryModel) TableName() string {
	return "exam_subcategories"
}
