package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"venue-scheduler/pkg/database"
	"venue-scheduler/pkg/scheduling"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPgTimeRoundTrip(t *testing.T) {
	for _, tod := range []scheduling.TimeOfDay{{Hour: 0, Minute: 0}, {Hour: 14, Minute: 30}, {Hour: 23, Minute: 59}} {
		assert.Equal(t, tod, fromPgTime(toPgTime(tod)))
	}

	// 14:30:45 from the database drops the seconds.
	assert.Equal(t, scheduling.TimeOfDay{Hour: 14, Minute: 30},
		fromPgTime(pgtype.Time{Microseconds: (14*3600 + 30*60 + 45) * 1_000_000, Valid: true}))
}

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "halls_name_key"}

	assert.True(t, isUniqueViolation(dup))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert hall: %w", dup)))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("23505")))
}

type stubTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (s *stubTx) Commit(context.Context) error {
	s.committed = true
	return nil
}

func (s *stubTx) Rollback(context.Context) error {
	s.rolledBack = true
	return nil
}

type stubDB struct {
	database.PgxIface
	tx *stubTx
}

func (s *stubDB) Begin(context.Context) (pgx.Tx, error) {
	return s.tx, nil
}

func TestWithinTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commits", func(t *testing.T) {
		db := &stubDB{tx: &stubTx{}}
		repo := NewRepository(db, zap.NewNop())

		require.NoError(t, repo.Tx.WithinTx(ctx, func(*Repository) error { return nil }))
		assert.True(t, db.tx.committed)
		assert.False(t, db.tx.rolledBack)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db := &stubDB{tx: &stubTx{}}
		repo := NewRepository(db, zap.NewNop())
		boom := errors.New("boom")

		assert.ErrorIs(t, repo.Tx.WithinTx(ctx, func(*Repository) error { return boom }), boom)
		assert.False(t, db.tx.committed)
		assert.True(t, db.tx.rolledBack)
	})

	t.Run("rolls back and repanics", func(t *testing.T) {
		db := &stubDB{tx: &stubTx{}}
		repo := NewRepository(db, zap.NewNop())

		assert.PanicsWithValue(t, "boom", func() {
			_ = repo.Tx.WithinTx(ctx, func(*Repository) error { panic("boom") })
		})
		assert.False(t, db.tx.committed)
		assert.True(t, db.tx.rolledBack)
	})

	t.Run("nested reuses the transaction", func(t *testing.T) {
		db := &stubDB{tx: &stubTx{}}
		repo := NewRepository(db, zap.NewNop())

		err := repo.Tx.WithinTx(ctx, func(tx *Repository) error {
			return tx.Tx.WithinTx(ctx, func(inner *Repository) error {
				assert.Same(t, tx, inner)
				return nil
			})
		})
		require.NoError(t, err)
		assert.True(t, db.tx.committed)
	})
}
