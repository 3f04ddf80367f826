package repository

import (
	"context"
	"fmt"

	"venue-scheduler/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Hall     HallRepository
	Movie    MovieRepository
	Schedule ScheduleRepository
	Booking  BookingRepository

	// Tx runs fn against repositories bound to a single transaction.
	Tx Transactor
}

// TxFunc receives repositories that share one open transaction.
type TxFunc func(tx *Repository) error

type Transactor interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	repo := newRepository(db, log)
	repo.Tx = &pgxTransactor{db: db, log: log.With(zap.String("repository", "tx"))}
	return repo
}

func newRepository(q database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		Hall:     NewHallRepository(q, log),
		Movie:    NewMovieRepository(q, log),
		Schedule: NewScheduleRepository(q, log),
		Booking:  NewBookingRepository(q, log),
	}
}

type pgxTransactor struct {
	db  database.PgxIface
	log *zap.Logger
}

func (t *pgxTransactor) WithinTx(ctx context.Context, fn TxFunc) (err error) {
	tx, err := t.db.Begin(ctx)
	if err != nil {
		t.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				t.log.Warn("Failed to rollback transaction", zap.Error(rbErr))
			}
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				t.log.Warn("Failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	txRepo := newRepository(tx, t.log)
	txRepo.Tx = nestedTransactor{repo: txRepo}

	if err = fn(txRepo); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		t.log.Error("Failed to commit transaction", zap.Error(err))
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// nestedTransactor reuses the already open transaction.
type nestedTransactor struct {
	repo *Repository
}

func (n nestedTransactor) WithinTx(_ context.Context, fn TxFunc) error {
	return fn(n.repo)
}
