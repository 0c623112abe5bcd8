package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres unique_violation, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const uniqueViolationCode = "23505"

// isUniqueViolation reports whether err is a Postgres duplicate-key error. The unique
// constraint is the source of truth for membership duplicates, so concurrent inserts
// of the same pair resolve to one success and one violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
