// Package postgres implements the service repository over PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/researchhub/researchhub-service/internal/domain"
)

// pgxPool is the subset of pgxpool.Pool the store needs. pgxmock satisfies
// it as well, which is what the tests run against.
type pgxPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// psql builds queries with Postgres placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type Store struct {
	pool pgxPool
}

func New(pool pgxPool) *Store {
	return &Store{pool: pool}
}

// parseID validates a path id before it reaches a query.
func parseID(id, field string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(field+" is not a valid id", err)
	}
	return parsed, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

// nullable turns an empty string into NULL for insert arguments.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func fromNull(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatNullTimestamp(nt sql.NullTime) string {
	if !nt.Valid {
		return ""
	}
	return formatTimestamp(nt.Time)
}
