package views_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rango/app/rango/views"
	"github.com/dmitrymomot/rango/internal/catalog"
)

func TestIndex(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, views.Index(views.IndexData{Visits: 1}).Render(context.Background(), &buf))
		assert.Contains(t, buf.String(), "There are no categories present.")
		assert.Contains(t, buf.String(), "visits: 1")
	})

	t.Run("escapes content", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := views.Index(views.IndexData{
			Categories: []catalog.Category{{Name: "<script>", Slug: "script"}},
			Pages:      []catalog.Page{{Title: "Bad", URL: "javascript:alert(1)"}},
		}).Render(context.Background(), &buf)
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "&lt;script&gt;")
		assert.Contains(t, out, `href="/category/script"`)
		assert.NotContains(t, out, "javascript:")
	})
}

func TestCategory(t *testing.T) {
	t.Parallel()

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, views.Category(views.CategoryData{}).Render(context.Background(), &buf))
		assert.Contains(t, buf.String(), "The specified category does not exist!")
	})

	t.Run("pages", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := views.Category(views.CategoryData{
			Category: &catalog.Category{Name: "Other Frameworks"},
			Pages:    []catalog.Page{{Title: "Flask", URL: "http://flask.pocoo.org"}},
		}).Render(context.Background(), &buf)
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "<h1>Other Frameworks</h1>")
		assert.Contains(t, buf.String(), `href="http://flask.pocoo.org"`)
	})
}

func TestAbout(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, views.About(4).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "visits: 4")
}
