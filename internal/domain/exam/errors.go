package exam

import "errors"

var (
	ErrCategoryNotFound    = errors.New("exam category not found")
	ErrInvalidCategoryName = errors.New("category name is not in the allowed set")
)
