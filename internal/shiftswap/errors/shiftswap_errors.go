package shiftswaperrors

import (
	"net/http"

	"github.com/Ashmit12092000/ems/internal/shared/apperror"
)

var (
	ErrInvalidSwapID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid swap id",
		http.StatusBadRequest,
	)
	ErrInvalidTargetID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid target id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrSelfSwap = apperror.New(
		apperror.CodeInvalidInput,
		"cannot swap a shift with yourself",
		http.StatusBadRequest,
	)
	ErrTargetNotFound = apperror.New(
		apperror.CodeNotFound,
		"target employee not found",
		http.StatusNotFound,
	)
	ErrTargetNotEmployee = apperror.New(
		apperror.CodeInvalidInput,
		"target must be an Employee",
		http.StatusBadRequest,
	)
	ErrRequesterNotRostered = apperror.New(
		apperror.CodeInvalidState,
		"you have no shift on this date",
		http.StatusUnprocessableEntity,
	)
	ErrTargetNotRostered = apperror.New(
		apperror.CodeInvalidState,
		"target has no shift on this date",
		http.StatusUnprocessableEntity,
	)
	ErrShiftMismatch = apperror.New(
		apperror.CodeInvalidInput,
		"submitted shifts do not match the duty roster",
		http.StatusBadRequest,
	)
	ErrSwapNotFound = apperror.New(
		apperror.CodeNotFound,
		"shift swap not found",
		http.StatusNotFound,
	)
	ErrNotTarget = apperror.New(
		apperror.CodeForbidden,
		"only the target can respond to this swap",
		http.StatusForbidden,
	)
	ErrNotHOD = apperror.New(
		apperror.CodeForbidden,
		"only HOD can decide swaps",
		http.StatusForbidden,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeConflict,
		"shift swap is not awaiting this action",
		http.StatusConflict,
	)
	ErrRosterChanged = apperror.New(
		apperror.CodeConflict,
		"duty roster changed since the swap was requested",
		http.StatusConflict,
	)
)
