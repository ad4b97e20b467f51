package catalog

import (
	"strings"

	"github.com/dmitrymomot/rango/pkg/slug"
)

// MaxNameLength bounds category names and slugs.
const MaxNameLength = 128

// Category groups bookmarked pages.
type Category struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Views int    `json:"views"`
	Likes int    `json:"likes"`
}

// Page is a bookmarked URL within a category.
type Page struct {
	ID         int64  `json:"id"`
	CategoryID int64  `json:"category_id"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	Views      int    `json:"views"`
}

// NewCategory returns a normalized category for name.
func NewCategory(name string) (Category, error) {
	c := Category{Name: name}
	if err := c.Normalize(); err != nil {
		return Category{}, err
	}
	return c, nil
}

// Normalize trims the name, derives the slug from it and clamps counters at zero.
func (c *Category) Normalize() error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return ErrEmptyName
	}
	if len([]rune(c.Name)) > MaxNameLength {
		return ErrNameTooLong
	}
	c.Slug = slug.Make(c.Name, slug.MaxLength(MaxNameLength))
	c.Views = max(c.Views, 0)
	c.Likes = max(c.Likes, 0)
	return nil
}

// Normalize trims the title and clamps views at zero.
func (p *Page) Normalize() error {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return ErrEmptyTitle
	}
	p.URL = strings.TrimSpace(p.URL)
	p.Views = max(p.Views, 0)
	return nil
}
