package exam

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainExam "smartiq-backend/internal/domain/exam"
	"smartiq-backend/internal/logger"
	appErrors "smartiq-backend/pkg/errors"
	"smartiq-backend/pkg/utils"
)

// Service implements the exam catalog use cases.
type Service struct {
	repo domainExam.Repository
}

// NewService creates a new exam catalog service
func NewService(repo domainExam.Repository) *Service {
	return &Service{repo: repo}
}

// GetAll returns the listing projection for every category.
func (s *Service) GetAll(ctx context.Context) ([]*CategorySummary, error) {
	categories, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]*CategorySummary, len(categories))
	for i, c := range categories {
		summaries[i] = ToCategorySummary(c)
	}

	return summaries, nil
}

func (s *Service) GetByID(ctx context.Context, categoryID uuid.UUID) (*CategoryResponse, error) {
	category, err := s.repo.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, domainExam.ErrCategoryNotFound) {
			return nil, appErrors.ErrCategoryNotFound
		}
		return nil, err
	}

	return ToCategoryResponse(category), nil
}

func (s *Service) Search(ctx context.Context, req *SearchRequest) ([]*CategoryResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid search filter", err)
	}

	categories, err := s.repo.Search(ctx, domainExam.SearchFilter{
		Query:    req.Query,
		Level:    req.Level,
		ExamMode: req.ExamMode,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]*CategoryResponse, len(categories))
	for i, c := range categories {
		responses[i] = ToCategoryResponse(c)
	}

	return responses, nil
}

func (s *Service) Create(ctx context.Context, req *CategoryRequest) (*CategoryResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if !domainExam.IsValidCategoryName(req.Name) {
		return nil, appErrors.NewAppError("VALIDATION_ERROR",
			fmt.Sprintf("category name %q is not in the allowed set", req.Name), nil)
	}

	category := toCategoryEntity(req)
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}

	logger.Info("Exam category created",
		zap.String("category_id", category.ID.String()),
		zap.String("name", category.Name),
		zap.String("event", "exam_category_created"),
	)

	return ToCategoryResponse(category), nil
}

func (s *Service) Update(ctx context.Context, categoryID uuid.UUID, req *CategoryRequest) (*CategoryResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if !domainExam.IsValidCategoryName(req.Name) {
		return nil, appErrors.NewAppError("VALIDATION_ERROR",
			fmt.Sprintf("category name %q is not in the allowed set", req.Name), nil)
	}

	category := toCategoryEntity(req)
	category.ID = categoryID

	if err := s.repo.Update(ctx, category); err != nil {
		if errors.Is(err, domainExam.ErrCategoryNotFound) {
			return nil, appErrors.ErrCategoryNotFound
		}
		return nil, err
	}

	logger.Info("Exam category updated",
		zap.String("category_id", categoryID.String()),
		zap.String("event", "exam_category_updated"),
	)

	return s.GetByID(ctx, categoryID)
}

func (s *Service) Delete(ctx context.Context, categoryID uuid.UUID) error {
	if err := s.repo.Delete(ctx, categoryID); err != nil {
		if errors.Is(err, domainExam.ErrCategoryNotFound) {
			return appErrors.ErrCategoryNotFound
		}
		return err
	}

	logger.Info("Exam category deleted",
		zap.String("category_id", categoryID.String()),
		zap.String("event", "exam_category_deleted"),
	)

	return nil
}

// SeedDefaults populates the catalog on first boot. It is a no-op whenever
// any category already exists.
func (s *Service) SeedDefaults(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, category := range defaultCategories() {
		c := category
		if err := s.repo.Create(ctx, &c); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", c.Name, err)
		}
	}

	logger.Info("Seeded default exam categories",
		zap.Int("count", len(defaultCategories())),
		zap.String("event", "exam_catalog_seeded"),
	)

	return nil
}
