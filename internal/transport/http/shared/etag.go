package shared

import (
	"net/http"
	"strconv"
	"strings"
)

// NotModified tags the response with a weak ETag built from the collection
// version. It writes 304 and reports true when the client already holds that
// version. The tag is per URL, so each query string is cached separately.
func NotModified(w http.ResponseWriter, r *http.Request, version uint64) bool {
	etag := `W/"` + strconv.FormatUint(version, 10) + `"`
	w.Header().Set("ETag", etag)
	for _, candidate := range strings.Split(r.Header.Get("If-None-Match"), ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == etag || candidate == "*" {
			w.WriteHeader(http.StatusNotModified)
			return true
		}
	}
	return false
}
