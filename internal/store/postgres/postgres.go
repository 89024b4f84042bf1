// Package postgres implements the store interfaces over PostgreSQL
// using database/sql with the pgx driver. Not-found reads surface as
// nil records; unique violations map to the store sentinel errors.
package postgres

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"inkwell/internal/store"
)

// New wraps an open connection pool in the store interfaces.
func New(db *sql.DB) *store.Stores {
	return &store.Stores{
		Users:      &userStore{db: db},
		Categories: &categoryStore{db: db},
		Posts:      &postStore{db: db},
	}
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
