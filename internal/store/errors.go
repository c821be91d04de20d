package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Dup maps a unique violation to ErrDuplicate and passes anything else through.
func Dup(err error) error {
	if IsUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}
