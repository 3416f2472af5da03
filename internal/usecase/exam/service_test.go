package exam

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainExam "smartiq-backend/internal/domain/exam"
	"smartiq-backend/internal/logger"
	appErrors "smartiq-backend/pkg/errors"
)

func TestMain(m *testing.M) {
	logger.Logger = zap.NewNop()
	os.Exit(m.Run())
}

type fakeExamRepo struct {
	categories map[uuid.UUID]*domainExam.Category
}

func newFakeExamRepo() *fakeExamRepo {
	return &fakeExamRepo{categories: make(map[uuid.UUID]*domainExam.Category)}
}

func (r *fakeExamRepo) Create(_ context.Context, c *domainExam.Category) error {
	c.ID = uuid.New()
	for i := range c.Subcategories {
		c.Subcategories[i].ID = uuid.New()
		c.Subcategories[i].CategoryID = c.ID
	}
	clone := *c
	r.categories[c.ID] = &clone
	return nil
}

func (r *fakeExamRepo) GetByID(_ context.Context, categoryID uuid.UUID) (*domainExam.Category, error) {
	c, ok := r.categories[categoryID]
	if !ok {
		return nil, domainExam.ErrCategoryNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *fakeExamRepo) GetAll(_ context.Context) ([]*domainExam.Category, error) {
	out := make([]*domainExam.Category, 0, len(r.categories))
	for _, c := range r.categories {
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeExamRepo) Search(_ context.Context, filter domainExam.SearchFilter) ([]*domainExam.Category, error) {
	var out []*domainExam.Category
	for _, c := range r.categories {
		if matches(c, filter) {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func matches(c *domainExam.Category, filter domainExam.SearchFilter) bool {
	if filter.Query != "" {
		q := strings.ToLower(filter.Query)
		hit := strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Description), q)
		for _, sub := range c.Subcategories {
			hit = hit || strings.Contains(strings.ToLower(sub.Name), q)
		}
		if !hit {
			return false
		}
	}
	for _, sub := range c.Subcategories {
		if (filter.Level == "" || sub.Level == filter.Level) &&
			(filter.ExamMode == "" || sub.ExamMode == filter.ExamMode) {
			return true
		}
	}
	return filter.Level == "" && filter.ExamMode == ""
}

func (r *fakeExamRepo) Update(_ context.Context, c *domainExam.Category) error {
	if _, ok := r.categories[c.ID]; !ok {
		return domainExam.ErrCategoryNotFound
	}
	clone := *c
	r.categories[c.ID] = &clone
	return nil
}

func (r *fakeExamRepo) Delete(_ context.Context, categoryID uuid.UUID) error {
	if _, ok := r.categories[categoryID]; !ok {
		return domainExam.ErrCategoryNotFound
	}
	delete(r.categories, categoryID)
	return nil
}

func (r *fakeExamRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.categories)), nil
}

func TestSeedDefaultsIsIdempotent(t *testing.T) {
	repo := newFakeExamRepo()
	svc := NewService(repo)

	require.NoError(t, svc.SeedDefaults(context.Background()))
	seeded := len(repo.categories)
	require.Equal(t, len(defaultCategories()), seeded)

	// A second boot must not duplicate the catalog.
	require.NoError(t, svc.SeedDefaults(context.Background()))
	assert.Equal(t, seeded, len(repo.categories))
}

func TestCreateRejectsUnknownCategoryName(t *testing.T) {
	svc := NewService(newFakeExamRepo())

	_, err := svc.Create(context.Background(), &CategoryRequest{
		Name: "Astrology Exams",
	})
	require.Error(t, err)

	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestCreateAndGetByID(t *testing.T) {
	svc := NewService(newFakeExamRepo())

	created, err := svc.Create(context.Background(), &CategoryRequest{
		Name:        "Defence Exams",
		Description: "Exams for the armed forces",
		Subcategories: []SubcategoryRequest{
			{
				Name:        "NDA",
				Eligibility: "12th pass",
				ExamMode:    domainExam.ModeOffline,
				Level:       domainExam.LevelNational,
			},
		},
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	got, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Defence Exams", got.Name)
	require.Len(t, got.Subcategories, 1)
	assert.Equal(t, "NDA", got.Subcategories[0].Name)
}

func TestGetByIDNotFound(t *testing.T) {
	svc := NewService(newFakeExamRepo())

	_, err := svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, appErrors.ErrCategoryNotFound)
}

func TestSearchValidatesFilters(t *testing.T) {
	svc := NewService(newFakeExamRepo())

	_, err := svc.Search(context.Background(), &SearchRequest{Level: "Galactic"})
	require.Error(t, err)

	_, err = svc.Search(context.Background(), &SearchRequest{ExamMode: "Telepathic"})
	require.Error(t, err)
}

func TestSearchByQueryAndLevel(t *testing.T) {
	repo := newFakeExamRepo()
	svc := NewService(repo)
	require.NoError(t, svc.SeedDefaults(context.Background()))

	results, err := svc.Search(context.Background(), &SearchRequest{Query: "MHT"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Engineering & Pharmacy Entrance", results[0].Name)

	results, err = svc.Search(context.Background(), &SearchRequest{Level: domainExam.LevelState})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Engineering & Pharmacy Entrance", results[0].Name)
}

func TestUpdateAndDelete(t *testing.T) {
	repo := newFakeExamRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), &CategoryRequest{
		Name: "Board Exams",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, &CategoryRequest{
		Name:        "Board Exams",
		Description: "Updated description",
	})
	require.NoError(t, err)
	assert.Equal(t, "Updated description", updated.Description)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID), appErrors.ErrCategoryNotFound)
}
