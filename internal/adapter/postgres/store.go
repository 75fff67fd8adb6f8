package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"linkswap/internal/core/domain"
	"linkswap/internal/core/port"
)

// maxSerializationRetries bounds how often a transaction aborted by
// PostgreSQL with a serialization failure is replayed before the caller gets
// domain.ErrStateConflict.
const maxSerializationRetries = 3

// Store implements port.Store using pgxpool for PostgreSQL. Every write runs
// in a serializable transaction and locks the rows it changes with
// SELECT ... FOR UPDATE, always campaigns first, then slots, then users in id
// order.
type Store struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

var _ port.Store = (*Store)(nil)

// NewStore returns a new store instance.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool: pool,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// querier is the part of pgx shared by the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// inTx runs fn in a serializable transaction, replaying it when PostgreSQL
// reports a serialization failure. fn must not keep state between attempts.
func (s *Store) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	for attempt := 0; ; attempt++ {
		err := s.tryTx(ctx, fn)
		if isSerializationFailure(err) && attempt < maxSerializationRetries {
			continue
		}
		return mapError(err)
	}
}

func (s *Store) tryTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()
	return fn(tx)
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}

// mapError translates driver errors into the domain taxonomy. Domain errors
// pass through untouched.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01":
			return fmt.Errorf("%w: concurrent update, retry the request", domain.ErrStateConflict)
		case "23505":
			return fmt.Errorf("%w: %s already exists", domain.ErrStateConflict, pgErr.ConstraintName)
		case "23503":
			return fmt.Errorf("%w: referenced row is missing (%s)", domain.ErrNotFound, pgErr.ConstraintName)
		case "23514":
			return fmt.Errorf("%w: constraint %s violated", domain.ErrStateConflict, pgErr.ConstraintName)
		}
	}
	return err
}

// notFound wraps pgx.ErrNoRows with the entity name.
func notFound(err error, entity string, id fmt.Stringer) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	return err
}
