package shared

import (
	"net/http"
	"strconv"
)

type Pagination struct {
	Page     int
	PageSize int
}

// ParsePagination reads page and pageSize. A missing or malformed page is
// page 1; the page engine clamps anything past the end.
func ParsePagination(r *http.Request, defaultSize, maxSize int) Pagination {
	page := 1
	size := defaultSize
	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page = v
		}
	}
	if raw := r.URL.Query().Get("pageSize"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			size = v
		}
	}
	if maxSize > 0 && size > maxSize {
		size = maxSize
	}
	return Pagination{Page: page, PageSize: size}
}
