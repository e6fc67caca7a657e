package http

import (
	"net/http"

	"stockwatch-srv/internal/alert"
	pkgErrors "stockwatch-srv/pkg/errors"
	"stockwatch-srv/pkg/response"
)

var errMap = response.ErrorMapping{
	alert.ErrNotFound:          pkgErrors.NewHTTPError(40401, "alert not found", http.StatusNotFound),
	alert.ErrInvalidCondition:  pkgErrors.NewHTTPError(40001, "invalid alert condition", http.StatusBadRequest),
	alert.ErrThresholdRequired: pkgErrors.NewHTTPError(40002, "condition requires a threshold", http.StatusBadRequest),
	alert.ErrSymbolRequired:    pkgErrors.NewHTTPError(40003, "symbol is required", http.StatusBadRequest),
}
