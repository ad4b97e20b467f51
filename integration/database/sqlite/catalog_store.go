package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/dmitrymomot/rango/internal/catalog"
)

const (
	categoryColumns = `id, name, slug, views, likes`
	pageColumns     = `id, category_id, title, url, views`
)

// CatalogStore implements catalog.Repository on SQLite.
type CatalogStore struct {
	db *sql.DB
}

var _ catalog.Repository = (*CatalogStore)(nil)

// NewCatalogStore wraps a migrated database.
func NewCatalogStore(db *sql.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// TopCategories returns the most liked categories.
func (s *CatalogStore) TopCategories(ctx context.Context, limit int) ([]catalog.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories ORDER BY likes DESC, id ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query top categories: %w", err)
	}
	return scanCategories(rows)
}

// TopPages returns the most viewed pages.
func (s *CatalogStore) TopPages(ctx context.Context, limit int) ([]catalog.Page, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+pageColumns+` FROM pages ORDER BY views DESC, id ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query top pages: %w", err)
	}
	return scanPages(rows)
}

// ListCategories returns every category ordered by name.
func (s *CatalogStore) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	return scanCategories(rows)
}

// CategoryBySlug returns catalog.ErrNotFound for an unknown slug.
func (s *CatalogStore) CategoryBySlug(ctx context.Context, slug string) (catalog.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE slug = ?`, slug)
	c, err := scanCategory(row)
	if err != nil {
		return catalog.Category{}, fmt.Errorf("query category by slug: %w", err)
	}
	return c, nil
}

// PagesByCategory returns the pages of a category, most viewed first.
func (s *CatalogStore) PagesByCategory(ctx context.Context, categoryID int64) ([]catalog.Page, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE category_id = ? ORDER BY views DESC, id ASC`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("query pages by category: %w", err)
	}
	return scanPages(rows)
}

// GetOrCreateCategory returns catalog.ErrDuplicateSlug when a differently named
// category already owns the derived slug.
func (s *CatalogStore) GetOrCreateCategory(ctx context.Context, name string) (catalog.Category, error) {
	c, err := catalog.NewCategory(name)
	if err != nil {
		return catalog.Category{}, err
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (name, slug) VALUES (?, ?) ON CONFLICT DO NOTHING`,
		c.Name, c.Slug,
	); err != nil {
		return catalog.Category{}, fmt.Errorf("insert category: %w", err)
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE name = ?`, c.Name)
	c, err = scanCategory(row)
	if errors.Is(err, catalog.ErrNotFound) {
		return catalog.Category{}, catalog.ErrDuplicateSlug
	}
	if err != nil {
		return catalog.Category{}, fmt.Errorf("query category: %w", err)
	}
	return c, nil
}

// GetOrCreatePage returns catalog.ErrNotFound when the category does not exist.
func (s *CatalogStore) GetOrCreatePage(ctx context.Context, categoryID int64, title string) (catalog.Page, error) {
	p := catalog.Page{CategoryID: categoryID, Title: title}
	if err := p.Normalize(); err != nil {
		return catalog.Page{}, err
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO pages (category_id, title) VALUES (?, ?) ON CONFLICT (category_id, title) DO NOTHING`,
		p.CategoryID, p.Title,
	); err != nil {
		if isForeignKeyViolation(err) {
			return catalog.Page{}, catalog.ErrNotFound
		}
		return catalog.Page{}, fmt.Errorf("insert page: %w", err)
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE category_id = ? AND title = ?`, p.CategoryID, p.Title)
	p, err := scanPage(row)
	if err != nil {
		return catalog.Page{}, fmt.Errorf("query page: %w", err)
	}
	return p, nil
}

// UpdateCategory overwrites the stored category with the same id.
func (s *CatalogStore) UpdateCategory(ctx context.Context, c catalog.Category) error {
	if err := c.Normalize(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE categories SET name = ?, slug = ?, views = ?, likes = ? WHERE id = ?`,
		c.Name, c.Slug, c.Views, c.Likes, c.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return catalog.ErrDuplicateSlug
		}
		return fmt.Errorf("update category: %w", err)
	}
	return affectedOne(res)
}

// UpdatePage overwrites the stored page with the same id.
func (s *CatalogStore) UpdatePage(ctx context.Context, p catalog.Page) error {
	if err := p.Normalize(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE pages SET category_id = ?, title = ?, url = ?, views = ? WHERE id = ?`,
		p.CategoryID, p.Title, p.URL, p.Views, p.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return catalog.ErrNotFound
		}
		return fmt.Errorf("update page: %w", err)
	}
	return affectedOne(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCategory(row scanner) (catalog.Category, error) {
	var c catalog.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Views, &c.Likes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.Category{}, catalog.ErrNotFound
		}
		return catalog.Category{}, err
	}
	return c, nil
}

func scanPage(row scanner) (catalog.Page, error) {
	var p catalog.Page
	if err := row.Scan(&p.ID, &p.CategoryID, &p.Title, &p.URL, &p.Views); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.Page{}, catalog.ErrNotFound
		}
		return catalog.Page{}, err
	}
	return p, nil
}

func scanCategories(rows *sql.Rows) ([]catalog.Category, error) {
	defer rows.Close()

	categories := []catalog.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

func scanPages(rows *sql.Rows) ([]catalog.Page, error) {
	defer rows.Close()

	pages := []catalog.Page{}
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		pages = append(pages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pages: %w", err)
	}
	return pages, nil
}

func affectedOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var sqliteErr *msqlite.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY
}
