package pg

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/rango/internal/catalog"
)

const (
	categoryColumns = `id, name, slug, views, likes`
	pageColumns     = `id, category_id, title, url, views`
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// CatalogStore implements catalog.Repository on PostgreSQL.
// Queries join the transaction carried by the context, if any.
type CatalogStore struct {
	pool *pgxpool.Pool
}

var _ catalog.Repository = (*CatalogStore)(nil)

// NewCatalogStore wraps a migrated pool.
func NewCatalogStore(pool *pgxpool.Pool) *CatalogStore {
	return &CatalogStore{pool: pool}
}

func (s *CatalogStore) db(ctx context.Context) querier {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return s.pool
}

// TopCategories returns the most liked categories.
func (s *CatalogStore) TopCategories(ctx context.Context, limit int) ([]catalog.Category, error) {
	return s.categories(ctx,
		`SELECT `+categoryColumns+` FROM categories ORDER BY likes DESC, id ASC LIMIT $1`, limit)
}

// TopPages returns the most viewed pages.
func (s *CatalogStore) TopPages(ctx context.Context, limit int) ([]catalog.Page, error) {
	return s.pages(ctx,
		`SELECT `+pageColumns+` FROM pages ORDER BY views DESC, id ASC LIMIT $1`, limit)
}

// ListCategories returns every category ordered by name.
func (s *CatalogStore) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	return s.categories(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name ASC`)
}

// CategoryBySlug returns catalog.ErrNotFound for an unknown slug.
func (s *CatalogStore) CategoryBySlug(ctx context.Context, slug string) (catalog.Category, error) {
	return s.category(ctx, `SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug)
}

// PagesByCategory returns the pages of a category, most viewed first.
func (s *CatalogStore) PagesByCategory(ctx context.Context, categoryID int64) ([]catalog.Page, error) {
	return s.pages(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE category_id = $1 ORDER BY views DESC, id ASC`, categoryID)
}

// GetOrCreateCategory returns catalog.ErrDuplicateSlug when a differently named
// category already owns the derived slug.
func (s *CatalogStore) GetOrCreateCategory(ctx context.Context, name string) (catalog.Category, error) {
	c, err := catalog.NewCategory(name)
	if err != nil {
		return catalog.Category{}, err
	}

	if _, err := s.db(ctx).Exec(ctx,
		`INSERT INTO categories (name, slug) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		c.Name, c.Slug,
	); err != nil {
		return catalog.Category{}, fmt.Errorf("insert category: %w", err)
	}

	c, err = s.category(ctx, `SELECT `+categoryColumns+` FROM categories WHERE name = $1`, c.Name)
	if IsNotFoundError(err) {
		return catalog.Category{}, catalog.ErrDuplicateSlug
	}
	return c, err
}

// GetOrCreatePage returns catalog.ErrNotFound when the category does not exist.
func (s *CatalogStore) GetOrCreatePage(ctx context.Context, categoryID int64, title string) (catalog.Page, error) {
	p := catalog.Page{CategoryID: categoryID, Title: title}
	if err := p.Normalize(); err != nil {
		return catalog.Page{}, err
	}

	if _, err := s.db(ctx).Exec(ctx,
		`INSERT INTO pages (category_id, title) VALUES ($1, $2) ON CONFLICT (category_id, title) DO NOTHING`,
		p.CategoryID, p.Title,
	); err != nil {
		if IsForeignKeyViolationError(err) {
			return catalog.Page{}, catalog.ErrNotFound
		}
		return catalog.Page{}, fmt.Errorf("insert page: %w", err)
	}

	rows, err := s.db(ctx).Query(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE category_id = $1 AND title = $2`, p.CategoryID, p.Title)
	if err != nil {
		return catalog.Page{}, fmt.Errorf("query page: %w", err)
	}
	p, err = pgx.CollectOneRow(rows, pgx.RowToStructByPos[catalog.Page])
	if err != nil {
		return catalog.Page{}, notFound(err)
	}
	return p, nil
}

// UpdateCategory overwrites the stored category with the same id.
func (s *CatalogStore) UpdateCategory(ctx context.Context, c catalog.Category) error {
	if err := c.Normalize(); err != nil {
		return err
	}
	tag, err := s.db(ctx).Exec(ctx,
		`UPDATE categories SET name = $1, slug = $2, views = $3, likes = $4 WHERE id = $5`,
		c.Name, c.Slug, c.Views, c.Likes, c.ID,
	)
	if err != nil {
		if IsDuplicateKeyError(err) {
			return catalog.ErrDuplicateSlug
		}
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

// UpdatePage overwrites the stored page with the same id.
func (s *CatalogStore) UpdatePage(ctx context.Context, p catalog.Page) error {
	if err := p.Normalize(); err != nil {
		return err
	}
	tag, err := s.db(ctx).Exec(ctx,
		`UPDATE pages SET category_id = $1, title = $2, url = $3, views = $4 WHERE id = $5`,
		p.CategoryID, p.Title, p.URL, p.Views, p.ID,
	)
	if err != nil {
		if IsForeignKeyViolationError(err) {
			return catalog.ErrNotFound
		}
		return fmt.Errorf("update page: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (s *CatalogStore) category(ctx context.Context, sql string, args ...any) (catalog.Category, error) {
	rows, err := s.db(ctx).Query(ctx, sql, args...)
	if err != nil {
		return catalog.Category{}, fmt.Errorf("query category: %w", err)
	}
	c, err := pgx.CollectOneRow(rows, pgx.RowToStructByPos[catalog.Category])
	if err != nil {
		return catalog.Category{}, notFound(err)
	}
	return c, nil
}

func (s *CatalogStore) categories(ctx context.Context, sql string, args ...any) ([]catalog.Category, error) {
	rows, err := s.db(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	categories, err := pgx.CollectRows(rows, pgx.RowToStructByPos[catalog.Category])
	if err != nil {
		return nil, fmt.Errorf("collect categories: %w", err)
	}
	return categories, nil
}

func (s *CatalogStore) pages(ctx context.Context, sql string, args ...any) ([]catalog.Page, error) {
	rows, err := s.db(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query pages: %w", err)
	}
	pages, err := pgx.CollectRows(rows, pgx.RowToStructByPos[catalog.Page])
	if err != nil {
		return nil, fmt.Errorf("collect pages: %w", err)
	}
	return pages, nil
}

// notFound keeps pgx.ErrNoRows matchable while adding catalog.ErrNotFound.
func notFound(err error) error {
	if IsNotFoundError(err) {
		return fmt.Errorf("%w: %w", catalog.ErrNotFound, err)
	}
	return err
}
