package exam

import (
	"context"

	"github.com/google/uuid"
)

// SearchFilter narrows a catalog search. Query matches category names,
// descriptions and subcategory names case-insensitively; Level and ExamMode
// filter on subcategory enums.
type SearchFilter struct {
	Query    string
	Level    string
	ExamMode string
}

// Repository defines the interface for exam catalog persistence
type Repository interface {
	Create(ctx context.Context, category *Category) error
	GetByID(ctx context.Context, categoryID uuid.UUID) (*Category, error)
	GetAll(ctx context.Context) ([]*Category, error)
	Search(ctx context.Context, filter SearchFilter) ([]*Category, error)
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, categoryID uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
