package limiterrors

import (
	"net/http"

	"github.com/Ashmit12092000/ems/internal/shared/apperror"
)

var (
	ErrInvalidLimitType = apperror.New(
		apperror.CodeInvalidInput,
		"limit type must be one of leave, permission, shift",
		http.StatusBadRequest,
	)
	ErrInvalidLimitValue = apperror.New(
		apperror.CodeInvalidInput,
		"limit value must be between 0 and 31",
		http.StatusBadRequest,
	)
)
