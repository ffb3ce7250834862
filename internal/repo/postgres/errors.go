package postgres

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation     = pgerrcode.UniqueViolation
	foreignKeyViolation = pgerrcode.ForeignKeyViolation

	registrationCodeConstraint = "registrations_registration_code_uniq"
	registrationMeetupFK       = "registrations_meetup_id_fkey"
)

func isConstraintViolation(err error, code, constraint string) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == code && pgErr.ConstraintName == constraint
}

type rowScanner interface {
	Scan(dest ...any) error
}
