package catalog

import "errors"

var (
	ErrNotFound      = errors.New("catalog: not found")
	ErrEmptyName     = errors.New("catalog: category name is required")
	ErrNameTooLong   = errors.New("catalog: category name is too long")
	ErrEmptyTitle    = errors.New("catalog: page title is required")
	ErrDuplicateSlug = errors.New("catalog: another category already uses this slug")
)
