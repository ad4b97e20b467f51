package catalog_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rango/internal/catalog"
)

func TestNewCategory(t *testing.T) {
	t.Parallel()

	t.Run("slug line creation", func(t *testing.T) {
		t.Parallel()

		c, err := catalog.NewCategory("Random Category String")
		require.NoError(t, err)
		assert.Equal(t, "random-category-string", c.Slug)
		assert.Equal(t, "Random Category String", c.Name)
	})

	t.Run("views are never negative", func(t *testing.T) {
		t.Parallel()

		c := catalog.Category{Name: "test", Views: -1, Likes: -3}
		require.NoError(t, c.Normalize())
		assert.GreaterOrEqual(t, c.Views, 0)
		assert.GreaterOrEqual(t, c.Likes, 0)
	})

	t.Run("trims name", func(t *testing.T) {
		t.Parallel()

		c, err := catalog.NewCategory("  Other Frameworks ")
		require.NoError(t, err)
		assert.Equal(t, "Other Frameworks", c.Name)
		assert.Equal(t, "other-frameworks", c.Slug)
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		_, err := catalog.NewCategory(" ")
		assert.ErrorIs(t, err, catalog.ErrEmptyName)
	})

	t.Run("name too long", func(t *testing.T) {
		t.Parallel()

		_, err := catalog.NewCategory(strings.Repeat("x", catalog.MaxNameLength+1))
		assert.ErrorIs(t, err, catalog.ErrNameTooLong)
	})
}

func TestPageNormalize(t *testing.T) {
	t.Parallel()

	p := catalog.Page{Title: " Flask ", URL: " http://flask.pocoo.org ", Views: -2}
	require.NoError(t, p.Normalize())
	assert.Equal(t, "Flask", p.Title)
	assert.Equal(t, "http://flask.pocoo.org", p.URL)
	assert.Zero(t, p.Views)

	empty := catalog.Page{}
	assert.ErrorIs(t, empty.Normalize(), catalog.ErrEmptyTitle)
}
