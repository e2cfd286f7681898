package middleware

import "net/http"

type headerPair struct{ name, value string }

// apiHeaders suit a JSON API that also streams file exports. Nothing it
// returns is meant to be framed, cached or rendered as a page.
var apiHeaders = []headerPair{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"Referrer-Policy", "no-referrer"},
	{"Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'"},
	{"Cross-Origin-Resource-Policy", "same-origin"},
	{"Permissions-Policy", "camera=(), microphone=(), geolocation=()"},
	{"Cache-Control", "no-store"},
}

var hsts = headerPair{"Strict-Transport-Security", "max-age=63072000; includeSubDomains"}

// SecureHeaders sets the response hardening headers. HSTS is only sent in
// production where TLS terminates in front of the service.
func SecureHeaders(production bool) func(http.Handler) http.Handler {
	headers := apiHeaders
	if production {
		headers = append(append([]headerPair(nil), apiHeaders...), hsts)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for _, p := range headers {
				h.Set(p.name, p.value)
			}
			next.ServeHTTP(w, r)
		})
	}
}
