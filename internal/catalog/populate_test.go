package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rango/integration/database/sqlite"
	"github.com/dmitrymomot/rango/internal/catalog"
)

type mockRepository struct {
	mock.Mock
	catalog.Repository
}

func (m *mockRepository) GetOrCreateCategory(ctx context.Context, name string) (catalog.Category, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(catalog.Category), args.Error(1)
}

func (m *mockRepository) UpdateCategory(ctx context.Context, c catalog.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func newSQLiteRepository(t *testing.T) *sqlite.CatalogStore {
	t.Helper()

	ctx := context.Background()
	cfg := sqlite.MemoryConfig()
	db, err := sqlite.Open(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(ctx, db, cfg, nil))
	return sqlite.NewCatalogStore(db)
}

func TestPopulate(t *testing.T) {
	t.Parallel()

	t.Run("seeds default data", func(t *testing.T) {
		t.Parallel()
		repo := newSQLiteRepository(t)
		ctx := context.Background()

		cats, err := catalog.Populate(ctx, repo, catalog.DefaultSeed)
		require.NoError(t, err)
		require.Len(t, cats, 3)
		for _, c := range cats {
			assert.GreaterOrEqual(t, c.Likes, 0)
			assert.LessOrEqual(t, c.Likes, catalog.MaxSeedLikes)
		}

		all, err := repo.ListCategories(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)

		python, err := repo.CategoryBySlug(ctx, "python")
		require.NoError(t, err)
		pages, err := repo.PagesByCategory(ctx, python.ID)
		require.NoError(t, err)
		assert.Len(t, pages, 3)
	})

	t.Run("rerun does not duplicate", func(t *testing.T) {
		t.Parallel()
		repo := newSQLiteRepository(t)
		ctx := context.Background()

		likes := 0
		next := func() int { likes++; return likes }

		_, err := catalog.Populate(ctx, repo, catalog.DefaultSeed, catalog.WithLikes(next))
		require.NoError(t, err)
		_, err = catalog.Populate(ctx, repo, catalog.DefaultSeed, catalog.WithLikes(next))
		require.NoError(t, err)

		all, err := repo.ListCategories(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)

		top, err := repo.TopPages(ctx, 100)
		require.NoError(t, err)
		assert.Len(t, top, 8)

		// likes are reassigned on the second run
		best, err := repo.TopCategories(ctx, 1)
		require.NoError(t, err)
		require.Len(t, best, 1)
		assert.Equal(t, 6, best[0].Likes)
	})

	t.Run("repository error", func(t *testing.T) {
		t.Parallel()
		repo := &mockRepository{}
		boom := errors.New("boom")
		repo.On("GetOrCreateCategory", mock.Anything, "Python").Return(catalog.Category{}, boom)

		_, err := catalog.Populate(context.Background(), repo, catalog.DefaultSeed)
		assert.ErrorIs(t, err, boom)
		repo.AssertExpectations(t)
	})

	t.Run("update error", func(t *testing.T) {
		t.Parallel()
		repo := &mockRepository{}
		boom := errors.New("boom")
		repo.On("GetOrCreateCategory", mock.Anything, "Python").
			Return(catalog.Category{ID: 1, Name: "Python", Slug: "python"}, nil)
		repo.On("UpdateCategory", mock.Anything, mock.AnythingOfType("catalog.Category")).Return(boom)

		_, err := catalog.Populate(context.Background(), repo, catalog.DefaultSeed)
		assert.ErrorIs(t, err, boom)
	})
}
