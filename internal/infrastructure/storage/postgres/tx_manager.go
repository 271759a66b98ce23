package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"

	"stockmaster/internal/core/tx"
	"stockmaster/pkg/logger"
)

var tracer = otel.Tracer("stockmaster/tx")

var _ tx.Manager = (*TxManager)(nil)

// statementTimeout bounds every statement inside a managed transaction.
// Document validation holds row locks on level rows; a runaway query
// must not keep other validations waiting indefinitely.
const statementTimeout = 30 * time.Second

// TxManager owns the transaction boundary. It stores the open
// transaction in the context, so repositories called inside
// RunInTransaction pick it up through GetQuerier without any plumbing
// in their signatures.
type TxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager creates a transaction manager on top of the pool.
func NewTxManager(pool *Pool) *TxManager {
	return &TxManager{pool: pool.Pool}
}

type txKey struct{}

// Tx is the context-carried transaction handle.
type Tx struct {
	pgx.Tx
}

// RunInTransaction executes fn inside a ReadCommitted transaction and
// commits when fn returns nil. A nested call joins the transaction
// already carried by ctx, so a service can call another service without
// splitting the unit of work.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, span := tracer.Start(ctx, "transaction")
	defer span.End()

	if m.GetTx(ctx) != nil {
		return fn(ctx)
	}

	dbTx, err := m.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.ReadCommitted,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if _, err := dbTx.Exec(ctx, fmt.Sprintf("SET LOCAL statement_timeout = '%dms'", statementTimeout.Milliseconds())); err != nil {
		_ = dbTx.Rollback(ctx)
		return fmt.Errorf("set statement_timeout: %w", err)
	}

	txCtx := context.WithValue(ctx, txKey{}, &Tx{Tx: dbTx})

	if err := fn(txCtx); err != nil {
		// Roll back on a background context so cancellation of the
		// request does not leave the transaction open.
		if rbErr := dbTx.Rollback(context.Background()); rbErr != nil {
			logger.Error(ctx, "rollback failed", "error", rbErr, "original_error", err)
		}
		return err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// GetTx returns the transaction carried by ctx, or nil outside one.
func (m *TxManager) GetTx(ctx context.Context) *Tx {
	if t, ok := ctx.Value(txKey{}).(*Tx); ok {
		return t
	}
	return nil
}

// Querier is the query surface shared by the pool and an open
// transaction. Repositories run their SQL against it and stay unaware
// of whether a transaction is active.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// GetQuerier returns the ambient transaction when ctx carries one,
// otherwise the pool.
func (m *TxManager) GetQuerier(ctx context.Context) Querier {
	if t := m.GetTx(ctx); t != nil {
		return t.Tx
	}
	return m.pool
}
