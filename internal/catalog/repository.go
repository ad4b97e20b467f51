package catalog

import "context"

// Repository is the persistence contract for categories and pages.
// Implementations return ErrNotFound for missing records.
type Repository interface {
	// TopCategories returns at most limit categories ordered by likes, highest first.
	TopCategories(ctx context.Context, limit int) ([]Category, error)
	// TopPages returns at most limit pages ordered by views, highest first.
	TopPages(ctx context.Context, limit int) ([]Page, error)
	// ListCategories returns all categories ordered by name.
	ListCategories(ctx context.Context) ([]Category, error)
	CategoryBySlug(ctx context.Context, slug string) (Category, error)
	// PagesByCategory returns the pages of a category ordered by views, highest first.
	PagesByCategory(ctx context.Context, categoryID int64) ([]Page, error)

	// GetOrCreateCategory returns the category with the given name, creating it when missing.
	GetOrCreateCategory(ctx context.Context, name string) (Category, error)
	// GetOrCreatePage returns the page with the given title in a category, creating it when missing.
	GetOrCreatePage(ctx context.Context, categoryID int64, title string) (Page, error)
	UpdateCategory(ctx context.Context, c Category) error
	UpdatePage(ctx context.Context, p Page) error
}
