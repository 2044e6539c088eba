package employeeerrors

import (
	"net/http"

	"github.com/kingxjullien14/nkp-ems/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeCodeTaken = apperror.New(
		apperror.CodeConflict,
		"employee code is already in use",
		http.StatusConflict,
	)
	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"email is already in use",
		http.StatusConflict,
	)
	ErrEmployeeHasDependents = apperror.New(
		apperror.CodeConflict,
		"employee has dependent attendance, leave or salary records",
		http.StatusConflict,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
