package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/dmitrymomot/rango/core/logger"
)

// MaxSeedLikes is the upper bound for likes assigned to seeded categories.
const MaxSeedLikes = 50

// SeedCategory describes a category and its pages for Populate.
type SeedCategory struct {
	Name  string
	Pages []SeedPage
}

// SeedPage describes a page for Populate.
type SeedPage struct {
	Title string
	URL   string
	Views int
}

// DefaultSeed is the starter data set for a new installation.
var DefaultSeed = []SeedCategory{
	{
		Name: "Python",
		Pages: []SeedPage{
			{Title: "Official Python Tutorial", URL: "http://docs.python.org/2/tutorial/", Views: 10},
			{Title: "How to Think Like a Computer Scientist", URL: "http://www.greenteapress.com/thinkpython/", Views: 12},
			{Title: "Learn Python in 10 Minutes", URL: "http://www.korokithakis.net/tutorials/python/", Views: 9},
		},
	},
	{
		Name: "Django",
		Pages: []SeedPage{
			{Title: "Official Django Tutorial", URL: "https://docs.djangoproject.com/en/1.9/intro/tutorial01/", Views: 13},
			{Title: "Django Rocks", URL: "http://www.djangorocks.com/", Views: 10},
			{Title: "How to Tango with Django", URL: "http://www.tangowithdjango.com/", Views: 8},
		},
	},
	{
		Name: "Other Frameworks",
		Pages: []SeedPage{
			{Title: "Bottle", URL: "http://bottlepy.org/docs/dev/", Views: 10},
			{Title: "Flask", URL: "http://flask.pocoo.org", Views: 30},
		},
	},
}

type populateOptions struct {
	likes  func() int
	logger *slog.Logger
}

// PopulateOption configures Populate.
type PopulateOption func(*populateOptions)

// WithLikes overrides the likes generator. Defaults to a uniform value in [0, MaxSeedLikes].
func WithLikes(fn func() int) PopulateOption {
	return func(o *populateOptions) {
		if fn != nil {
			o.likes = fn
		}
	}
}

// WithPopulateLogger sets the logger used to report seeded records.
func WithPopulateLogger(l *slog.Logger) PopulateOption {
	return func(o *populateOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// Populate creates or updates the categories and pages in seed.
// It is idempotent with respect to names and titles; likes are reassigned on every run.
func Populate(ctx context.Context, repo Repository, seed []SeedCategory, opts ...PopulateOption) ([]Category, error) {
	o := populateOptions{
		likes:  func() int { return rand.IntN(MaxSeedLikes + 1) },
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	categories := make([]Category, 0, len(seed))
	for _, sc := range seed {
		c, err := repo.GetOrCreateCategory(ctx, sc.Name)
		if err != nil {
			return nil, fmt.Errorf("populate category %q: %w", sc.Name, err)
		}
		c.Likes = o.likes()
		if err := c.Normalize(); err != nil {
			return nil, fmt.Errorf("populate category %q: %w", sc.Name, err)
		}
		if err := repo.UpdateCategory(ctx, c); err != nil {
			return nil, fmt.Errorf("populate category %q: %w", sc.Name, err)
		}

		for _, sp := range sc.Pages {
			p, err := repo.GetOrCreatePage(ctx, c.ID, sp.Title)
			if err != nil {
				return nil, fmt.Errorf("populate page %q: %w", sp.Title, err)
			}
			p.URL = sp.URL
			p.Views = sp.Views
			if err := p.Normalize(); err != nil {
				return nil, fmt.Errorf("populate page %q: %w", sp.Title, err)
			}
			if err := repo.UpdatePage(ctx, p); err != nil {
				return nil, fmt.Errorf("populate page %q: %w", sp.Title, err)
			}

			o.logger.InfoContext(ctx, "page seeded",
				logger.Component("populate"),
				slog.String("category", c.Name),
				slog.String("page", p.Title),
			)
		}
		categories = append(categories, c)
	}

	o.logger.InfoContext(ctx, "catalog populated",
		logger.Component("populate"),
		logger.Count("categories", len(categories)),
	)
	return categories, nil
}
