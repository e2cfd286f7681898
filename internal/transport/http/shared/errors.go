package shared

import (
	"errors"
	"net/http"

	"hrconnect/internal/domain/filter"
	"hrconnect/internal/domain/record"
	"hrconnect/internal/transport/http/api"
)

// FailError maps a service error to an envelope. Errors listed in invalid
// are reported as validation failures carrying their message.
func FailError(w http.ResponseWriter, requestID string, err error, invalid ...error) {
	switch {
	case errors.Is(err, record.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "resource not found", requestID)
		return
	case errors.Is(err, filter.ErrUnknownDimension),
		errors.Is(err, filter.ErrDateUnsupported),
		errors.Is(err, filter.ErrExprUnsupported),
		errors.Is(err, filter.ErrInvalidExpr):
		api.Fail(w, http.StatusBadRequest, "invalid_filter", err.Error(), requestID)
		return
	}
	for _, target := range invalid {
		if errors.Is(err, target) {
			FailValidation(w, requestID, []ValidationIssue{{Reason: err.Error()}})
			return
		}
	}
	api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
}
