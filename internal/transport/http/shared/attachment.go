package shared

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"hrconnect/internal/requestctx"
	"hrconnect/internal/transport/http/api"
)

// ExportFormat reads the format query parameter. The first allowed format is
// the default.
func ExportFormat(w http.ResponseWriter, r *http.Request, allowed ...string) (string, bool) {
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		return allowed[0], true
	}
	v := NewValidator()
	v.Enum("format", format, allowed, "must be one of "+strings.Join(allowed, ", "))
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return "", false
	}
	return format, true
}

// WriteAttachment renders into memory first so a failing renderer still gets
// a proper error response.
func WriteAttachment(w http.ResponseWriter, r *http.Request, filename, contentType string, render func(io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to render export", requestctx.GetRequestID(r.Context()))
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
