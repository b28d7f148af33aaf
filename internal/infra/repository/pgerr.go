package repository

import (
	"errors"

	"facility-booking/internal/infra"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
)

// pgKind maps constraint violations to repository error kinds so callers can
// distinguish duplicates from plain failures without parsing SQLSTATEs.
func pgKind(err error) infra.RepositoryErrorKind {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return infra.KindDBFailure
	}
	switch pgErr.Code {
	case pgErrCodeUniqueViolation:
		return infra.KindDuplicateKey
	case pgErrCodeForeignKeyViolation:
		return infra.KindForeignKeyViolated
	default:
		return infra.KindDBFailure
	}
}
