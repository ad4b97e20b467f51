package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/rango/internal/catalog"
)

// IndexData is rendered by Index.
type IndexData struct {
	Categories []catalog.Category
	Pages      []catalog.Page
	Visits     int
}

// CategoryData is rendered by Category. A nil Category renders the not-found message.
type CategoryData struct {
	Category *catalog.Category
	Pages    []catalog.Page
}

// Index is the home page: most liked categories and most viewed pages.
func Index(data IndexData) templ.Component {
	return layout("Home", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<h1>Rango says...</h1><div>hey there partner!</div>`)

		h.raw(`<section id="categories"><h2>Most Liked Categories</h2>`)
		if len(data.Categories) == 0 {
			h.raw(`<strong>There are no categories present.</strong>`)
		} else {
			h.raw(`<ul>`)
			for _, c := range data.Categories {
				h.raw(`<li><a`)
				h.href(templ.URL("/category/" + c.Slug))
				h.raw(`>`)
				h.text(c.Name)
				h.raw(`</a></li>`)
			}
			h.raw(`</ul>`)
		}
		h.raw(`</section>`)

		h.raw(`<section id="pages"><h2>Most Viewed Pages</h2>`)
		if len(data.Pages) == 0 {
			h.raw(`<strong>There are no pages present.</strong>`)
		} else {
			h.raw(`<ul>`)
			for _, p := range data.Pages {
				pageLink(h, p)
			}
			h.raw(`</ul>`)
		}
		h.raw(`</section>`)

		visits(h, data.Visits)
		return h.err
	}))
}

// About shows the visit count of the current visitor.
func About(visitCount int) templ.Component {
	return layout("About", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<h1>Rango says here is the about page.</h1>`)
		visits(h, visitCount)
		return h.err
	}))
}

// Category lists the pages filed under a category.
func Category(data CategoryData) templ.Component {
	title := "Category"
	if data.Category != nil {
		title = data.Category.Name
	}
	return layout(title, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		if data.Category == nil {
			h.raw(`<strong>The specified category does not exist!</strong>`)
			return h.err
		}

		h.raw(`<h1>`)
		h.text(data.Category.Name)
		h.raw(`</h1>`)
		if len(data.Pages) == 0 {
			h.raw(`<strong>No pages currently in category.</strong>`)
			return h.err
		}
		h.raw(`<ul>`)
		for _, p := range data.Pages {
			pageLink(h, p)
		}
		h.raw(`</ul>`)
		return h.err
	}))
}

func pageLink(h *htmlWriter, p catalog.Page) {
	h.raw(`<li><a`)
	h.href(templ.URL(p.URL))
	h.raw(`>`)
	h.text(p.Title)
	h.raw(`</a></li>`)
}

func visits(h *htmlWriter, n int) {
	h.raw(`<p class="visits">visits: `)
	h.int(n)
	h.raw(`</p>`)
}
