package shared

import (
	"net/http"

	"hrconnect/internal/domain/filter"
	"hrconnect/internal/domain/paging"
	"hrconnect/internal/requestctx"
	"hrconnect/internal/transport/http/api"
)

type PageSizes struct {
	Default int
	Max     int
}

// RespondList filters with the query criteria, pages the result and writes
// it. Any criteria change is expected to come with page=1 or no page at all.
func RespondList[T any](w http.ResponseWriter, r *http.Request, sizes PageSizes, list func(filter.Criteria) ([]T, error)) {
	requestID := requestctx.GetRequestID(r.Context())
	v := NewValidator()
	criteria := ParseCriteria(r, v)
	if v.Reject(w, requestID) {
		return
	}
	records, err := list(criteria)
	if err != nil {
		FailError(w, requestID, err)
		return
	}
	p := ParsePagination(r, sizes.Default, sizes.Max)
	api.Success(w, paging.Paginate(records, p.PageSize, p.Page), requestID)
}
