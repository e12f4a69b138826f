package repositories

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

// DB is the query surface the repositories need. Both *pgxpool.Pool and
// pgx.Tx satisfy it, so every repository method runs against the ambient
// transaction when one is present (see tx.go) and the pool otherwise.
type DB interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// executor resolves the DB to run a statement on: the transaction bound to
// ctx if any, else the repository's pool.
func executor(ctx context.Context, db DB) DB {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return db
}
