package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/tenancy/pkg/pg"
	"github.com/dmitrymomot/tenancy/pkg/slug"
	"github.com/dmitrymomot/tenancy/pkg/tenant"
)

// DB is the subset of *pgxpool.Pool the store uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store is the PostgreSQL implementation of tenant.Store plus the writes
// used by registration and tenant administration.
type Store struct {
	db    DB
	rules slug.Rules
	log   *slog.Logger
}

var _ tenant.Store = (*Store)(nil)

type Option func(*Store)

// WithSlugRules sets the rules slugs are re-checked against before insert.
func WithSlugRules(rules slug.Rules) Option {
	return func(s *Store) { s.rules = rules }
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

func New(db DB, opts ...Option) *Store {
	s := &Store{
		db:    db,
		rules: slug.DefaultRules(),
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// inTx runs fn in a transaction, rolling back on any error.
func (s *Store) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			s.log.ErrorContext(ctx, "rollback failed", slog.Any("error", err))
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// conflict maps unique and foreign key violations on known constraints to sentinel errors.
func conflict(err error) error {
	switch {
	case pg.IsDuplicateKeyError(err):
		switch pg.ConstraintName(err) {
		case constraintSlug:
			return errors.Join(ErrSlugTaken, err)
		case constraintEmail:
			return errors.Join(ErrEmailTaken, err)
		}
	case pg.IsForeignKeyViolationError(err):
		switch pg.ConstraintName(err) {
		case constraintOwner, constraintMember:
			return errors.Join(ErrOwnerNotFound, err)
		}
	}
	return err
}
