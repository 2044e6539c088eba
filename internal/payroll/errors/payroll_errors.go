package payrollerrors

import (
	"net/http"

	"github.com/kingxjullien14/nkp-ems/internal/shared/apperror"
)

var (
	ErrPeriodAlreadyGenerated = apperror.New(
		apperror.CodeConflict,
		"payroll has already been generated for this period, set regenerate to replace it",
		http.StatusConflict,
	)
	ErrNoPunchData = apperror.New(
		apperror.CodeInvalidState,
		"no attendance data available to aggregate",
		http.StatusBadRequest,
	)
	ErrCorruptPunchTime = apperror.New(
		apperror.CodeInvalidState,
		"attendance row carries a malformed action time",
		http.StatusBadRequest,
	)
)
