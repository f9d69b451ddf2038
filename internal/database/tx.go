package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/askhub/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// AuthenticatedRole is the database role user-scoped transactions switch
// to. Row-level security policies apply to it; the owning role used for
// system work bypasses them.
const AuthenticatedRole = "askhub_authenticated"

// Querier is what repositories need from a pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxFunc runs inside a transaction.
type TxFunc func(ctx context.Context, q Querier) error

// Transactor opens transactions on behalf of a caller.
//
// AsUser runs fn as the authenticated role with app.user_id set to
// userID; an empty userID is an anonymous caller, which can still read
// public rows. AsSystem runs fn as the owning role.
type Transactor interface {
	AsUser(ctx context.Context, userID string, fn TxFunc) error
	AsSystem(ctx context.Context, fn TxFunc) error
}

// Beginner starts transactions. *pgxpool.Pool satisfies it.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

const maxTxAttempts = 3

// TxManager implements Transactor over a pool.
type TxManager struct {
	db Beginner
}

func NewTxManager(db Beginner) *TxManager {
	return &TxManager{db: db}
}

func (m *TxManager) AsUser(ctx context.Context, userID string, fn TxFunc) error {
	return m.run(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "SET LOCAL ROLE "+AuthenticatedRole); err != nil {
			return fmt.Errorf("switching role: %w", err)
		}
		if _, err := tx.Exec(ctx, "SELECT set_config('app.user_id', $1, true)", userID); err != nil {
			return fmt.Errorf("setting caller identity: %w", err)
		}
		return fn(ctx, tx)
	})
}

func (m *TxManager) AsSystem(ctx context.Context, fn TxFunc) error {
	return m.run(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, tx)
	})
}

// run retries fn on serialization failures and deadlocks.
func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	var err error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err = m.once(ctx, fn)
		if !retryable(err) {
			return err
		}
	}
	return fmt.Errorf("transaction retries exhausted: %w", err)
}

func (m *TxManager) once(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) (err error) {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func retryable(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	code := sqlerr.MapCode(pgErr.Code)
	return code == sqlerr.SerializationFailure || code == sqlerr.DeadlockDetected
}
