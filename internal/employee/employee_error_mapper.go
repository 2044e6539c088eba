package employee

import (
	"errors"
	"strings"

	employeeerrors "github.com/kingxjullien14/nkp-ems/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// mapRepositoryError translates driver-level failures into domain errors.
func mapRepositoryError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "email") {
			return employeeerrors.ErrEmailTaken
		}
		return employeeerrors.ErrEmployeeCodeTaken
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate key value") {
		if strings.Contains(msg, "email") {
			return employeeerrors.ErrEmailTaken
		}
		return employeeerrors.ErrEmployeeCodeTaken
	}

	return err
}
