package requesterrors

import (
	"net/http"

	"github.com/Ashmit12092000/ems/internal/shared/apperror"
)

var (
	ErrInvalidRequestID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid request id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidTimeFormat = apperror.New(
		apperror.CodeInvalidInput,
		"start_time and end_time must be HH:MM",
		http.StatusBadRequest,
	)
	ErrInvalidTimeRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_time must be before end_time",
		http.StatusBadRequest,
	)
	ErrPermissionTimesRequired = apperror.New(
		apperror.CodeInvalidInput,
		"start_time and end_time are required for permission requests",
		http.StatusBadRequest,
	)
	ErrShiftsRequired = apperror.New(
		apperror.CodeInvalidInput,
		"current_shift and requested_shift are required for shift requests",
		http.StatusBadRequest,
	)
	ErrInvalidShift = apperror.New(
		apperror.CodeInvalidInput,
		"shift must be one of Morning, Evening, Night, Off",
		http.StatusBadRequest,
	)
	ErrSameShift = apperror.New(
		apperror.CodeInvalidInput,
		"requested_shift must differ from current_shift",
		http.StatusBadRequest,
	)
	ErrValidationFailed = apperror.New(
		apperror.CodeValidationFailed,
		"request did not pass validation",
		http.StatusUnprocessableEntity,
	)
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"request not found",
		http.StatusNotFound,
	)
	ErrRequestAlreadyProcessed = apperror.New(
		apperror.CodeConflict,
		"request has already been processed",
		http.StatusConflict,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"only HOD can decide requests",
		http.StatusForbidden,
	)
)
