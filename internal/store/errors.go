package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate signals a unique constraint violation (email, file number).
	ErrDuplicate = errors.New("duplicate record")

	// ErrCodeExhausted is returned when every code generation attempt collided.
	ErrCodeExhausted = errors.New("session code generation exhausted")

	// ErrQuotaExceeded is returned by AppendWithinQuota when the student has
	// already used all their words in the session.
	ErrQuotaExceeded = errors.New("word limit reached")
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
