package pg_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/rango/integration/database/pg"
)

func TestErrorClassification(t *testing.T) {
	t.Parallel()

	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"})
	other := errors.New("boom")

	assert.True(t, pg.IsNotFoundError(fmt.Errorf("select: %w", pgx.ErrNoRows)))
	assert.False(t, pg.IsNotFoundError(other))

	assert.True(t, pg.IsDuplicateKeyError(unique))
	assert.False(t, pg.IsDuplicateKeyError(fk))

	assert.True(t, pg.IsForeignKeyViolationError(fk))
	assert.False(t, pg.IsForeignKeyViolationError(unique))

	assert.True(t, pg.IsTxClosedError(pgx.ErrTxClosed))
	assert.False(t, pg.IsTxClosedError(other))
}

func TestWithTx(t *testing.T) {
	t.Parallel()

	ctx := pg.WithTx(t.Context(), nil)
	_, ok := pg.TxFromContext(ctx)
	assert.False(t, ok)
}
