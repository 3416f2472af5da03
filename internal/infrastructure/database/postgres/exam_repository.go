package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartiq-backend/internal/domain/exam"
	"smartiq-backend/internal/infrastructure/database/postgres/models"
)

// ExamRepository implements exam.Repository on top of gorm.
type ExamRepository struct {
	db *DB
}

// NewExamRepository creates a new exam catalog repository
func NewExamRepository(db *DB) exam.Repository {
	return &ExamRepository{db: db}
}

func (r *ExamRepository) Create(ctx context.Context, category *exam.Category) error {
	category.ID = uuid.New()
	category.CreatedAt = time.Now()
	category.UpdatedAt = time.Now()

	dbModel := toCategoryModel(category)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create exam category: %w", err)
	}

	*category = *toCategoryEntity(dbModel)

	return nil
}

func (r *ExamRepository) GetByID(ctx context.Context, categoryID uuid.UUID) (*exam.Category, error) {
	var dbModel models.ExamCategoryModel
	err := r.db.DB.WithContext(ctx).
		Preload("Subcategories", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&dbModel, "id = ?", categoryID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, exam.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get exam category: %w", err)
	}

	return toCategoryEntity(&dbModel), nil
}

func (r *ExamRepository) GetAll(ctx context.Context) ([]*exam.Category, error) {
	var dbModels []models.ExamCategoryModel
	err := r.db.DB.WithContext(ctx).
		Order("name ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list exam categories: %w", err)
	}

	categories := make([]*exam.Category, len(dbModels))
	for i := range dbModels {
		categories[i] = toCategoryEntity(&dbModels[i])
	}

	return categories, nil
}

func (r *ExamRepository) Search(ctx context.Context, filter exam.SearchFilter) ([]*exam.Category, error) {
	query := r.db.DB.WithContext(ctx).
		Model(&models.ExamCategoryModel{}).
		Distinct("exam_categories.*").
		Joins("LEFT JOIN exam_subcategories ON exam_subcategories.category_id = exam_categories.id")

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where(
			"exam_categories.name ILIKE ? OR exam_categories.description ILIKE ? OR exam_subcategories.name ILIKE ?",
			pattern, pattern, pattern,
		)
	}
	if filter.Level != "" {
		query = query.Where("exam_subcategories.level = ?", filter.Level)
	}
	if filter.ExamMode != "" {
		query = query.Where("exam_subcategories.exam_mode = ?", filter.ExamMode)
	}

	var dbModels []models.ExamCategoryModel
	if err := query.
		Preload("Subcategories", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to search exam categories: %w", err)
	}

	categories := make([]*exam.Category, len(dbModels))
	for i := range dbModels {
		categories[i] = toCategoryEntity(&dbModels[i])
	}

	return categories, nil
}

// Update replaces the category's fields and its full subcategory list.
func (r *ExamRepository) Update(ctx context.Context, category *exam.Category) error {
	category.UpdatedAt = time.Now()

	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ExamCategoryModel{}).
			Where("id = ?", category.ID).
			Updates(map[string]interface{}{
				"name":        category.Name,
				"description": category.Description,
				"icon":        category.Icon,
				"updated_at":  category.UpdatedAt,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update exam category: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return exam.ErrCategoryNotFound
		}

		if err := tx.Delete(&models.ExamSubcategoryModel{}, "category_id = ?", category.ID).Error; err != nil {
			return fmt.Errorf("failed to replace subcategories: %w", err)
		}

		for i := range category.Subcategories {
			sub := toSubcategoryModel(&category.Subcategories[i], category.ID, i)
			if err := tx.Create(sub).Error; err != nil {
				return fmt.Errorf("failed to replace subcategories: %w", err)
			}
		}

		return nil
	})
}

func (r *ExamRepository) Delete(ctx context.Context, categoryID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Delete(&models.ExamCategoryModel{}, "id = ?", categoryID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete exam category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return exam.ErrCategoryNotFound
	}

	return nil
}

func (r *ExamRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.DB.WithContext(ctx).Model(&models.ExamCategoryModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count exam categories: %w", err)
	}
	return count, nil
}

// Helper functions to convert between domain entities and database models

func toCategoryModel(c *exam.Category) *models.ExamCategoryModel {
	m := &models.ExamCategoryModel{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Icon:        c.Icon,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	for i := range c.Subcategories {
		m.Subcategories = append(m.Subcategories, *toSubcategoryModel(&c.Subcategories[i], c.ID, i))
	}
	return m
}

func toSubcategoryModel(s *exam.Subcategory, categoryID uuid.UUID, sortOrder int) *models.ExamSubcategoryModel {
	id := s.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &models.ExamSubcategoryModel{
		ID:               id,
		CategoryID:       categoryID,
		Name:             s.Name,
		Eligibility:      s.Eligibility,
		Courses:          s.Courses,
		Subjects:         s.Subjects,
		ExamMode:         s.ExamMode,
		Frequency:        s.Frequency,
		ConductingBody:   s.ConductingBody,
		Level:            s.Level,
		AgeMin:           s.AgeMin,
		AgeMax:           s.AgeMax,
		SelectionProcess: s.SelectionProcess,
		Purpose:          s.Purpose,
		SortOrder:        sortOrder,
	}
}

func toCategoryEntity(m *models.ExamCategoryModel) *exam.Category {
	c := &exam.Category{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Icon:        m.Icon,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	for i := range m.Subcategories {
		sub := &m.Subcategories[i]
		c.Subcategories = append(c.Subcategories, exam.Subcategory{
			ID:               sub.ID,
			CategoryID:       sub.CategoryID,
			Name:             sub.Name,
			Eligibility:      sub.Eligibility,
			Courses:          sub.Courses,
			Subjects:         sub.Subjects,
			ExamMode:         sub.ExamMode,
			Frequency:        sub.Frequency,
			ConductingBody:   sub.ConductingBody,
			Level:            sub.Level,
			AgeMin:           sub.AgeMin,
			AgeMax:           sub.AgeMax,
			SelectionProcess: sub.SelectionProcess,
			Purpose:          sub.Purpose,
			SortOrder:        sub.SortOrder,
		})
	}
	return c
}
