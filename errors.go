package buckets

import "errors"

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrEmptyTitle       = errors.New("task title is empty")
	ErrEmptyName        = errors.New("category name is empty")
	ErrInvalidColor     = errors.New("invalid color")
)
