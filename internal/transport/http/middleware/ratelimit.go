package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"hrconnect/internal/transport/http/api"
)

// loginPeekLimit caps how much of a login body is buffered to find the email.
const loginPeekLimit = 16 << 10

type RateLimitKeyFunc func(r *http.Request) string

type RateLimitOption func(*limiterOptions)

type limiterOptions struct {
	log   *zap.Logger
	keyFn RateLimitKeyFunc
	now   func() time.Time
}

func WithKeyFunc(fn RateLimitKeyFunc) RateLimitOption {
	return func(o *limiterOptions) {
		if fn != nil {
			o.keyFn = fn
		}
	}
}

func WithLogger(log *zap.Logger) RateLimitOption {
	return func(o *limiterOptions) {
		if log != nil {
			o.log = log
		}
	}
}

// WithClock replaces the wall clock, mostly for tests.
func WithClock(now func() time.Time) RateLimitOption {
	return func(o *limiterOptions) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []RateLimitOption) limiterOptions {
	o := limiterOptions{log: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// window counts hits per key in fixed windows. Expired keys are swept at
// most once per window length so idle clients do not accumulate.
type window struct {
	name   string
	limit  int
	length time.Duration
	keyFn  RateLimitKeyFunc
	now    func() time.Time
	log    *zap.Logger

	mu        sync.Mutex
	hits      map[string]*windowCount
	nextSweep time.Time
}

type windowCount struct {
	n       int
	resetAt time.Time
}

type verdict struct {
	allowed   bool
	remaining int
	resetIn   time.Duration
}

func newWindow(name string, limit int, length time.Duration, keyFn RateLimitKeyFunc, o limiterOptions) *window {
	if keyFn == nil {
		keyFn = actorOrIPKey
	}
	return &window{
		name:   name,
		limit:  limit,
		length: length,
		keyFn:  keyFn,
		now:    o.now,
		log:    o.log,
		hits:   map[string]*windowCount{},
	}
}

func (wd *window) hit(key string) verdict {
	now := wd.now()

	wd.mu.Lock()
	defer wd.mu.Unlock()

	if now.After(wd.nextSweep) {
		for k, c := range wd.hits {
			if !now.Before(c.resetAt) {
				delete(wd.hits, k)
			}
		}
		wd.nextSweep = now.Add(wd.length)
	}

	c, ok := wd.hits[key]
	if !ok || !now.Before(c.resetAt) {
		c = &windowCount{resetAt: now.Add(wd.length)}
		wd.hits[key] = c
	}
	c.n++
	return verdict{
		allowed:   c.n <= wd.limit,
		remaining: max(wd.limit-c.n, 0),
		resetIn:   c.resetAt.Sub(now),
	}
}

// admit records the request and writes the 429 envelope when the key is over
// budget. It reports whether the request may proceed.
func (wd *window) admit(w http.ResponseWriter, r *http.Request) bool {
	if wd.limit <= 0 {
		return true
	}
	key := wd.keyFn(r)
	if key == "" {
		key = clientIPKey(r)
	}
	v := wd.hit(key)

	resetSec := ceilSeconds(v.resetIn)
	h := w.Header()
	h.Set("X-RateLimit-Limit", strconv.Itoa(wd.limit))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(v.remaining))
	h.Set("X-RateLimit-Reset", strconv.Itoa(resetSec))
	if v.allowed {
		return true
	}

	h.Set("Retry-After", strconv.Itoa(max(resetSec, 1)))
	wd.log.Warn("rate limit exceeded",
		zap.String("limiter", wd.name),
		zap.String("key", key),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("limit", wd.limit),
		zap.Duration("window", wd.length),
	)
	api.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests", GetRequestID(r.Context()))
	return false
}

func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}

// RateLimit applies one budget per signed-in user, or per client IP for
// anonymous traffic.
func RateLimit(limit int, length time.Duration, opts ...RateLimitOption) func(http.Handler) http.Handler {
	o := buildOptions(opts)
	wd := newWindow("global", limit, length, o.keyFn, o)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if wd.admit(w, r) {
				next.ServeHTTP(w, r)
			}
		})
	}
}

type routeClass int

const (
	classOther routeClass = iota
	classLogin
	classActor
)

// sensitiveRoute matches a mutation by its path below /api/v1. Without a
// suffix the path must equal prefix, or extend it when prefix ends in a slash.
type sensitiveRoute struct {
	prefix string
	suffix string
	class  routeClass
}

var sensitiveRoutes = []sensitiveRoute{
	{prefix: "/auth/login", class: classLogin},
	{prefix: "/auth/mfa/", class: classActor},
	{prefix: "/leave/requests/", suffix: "/approve", class: classActor},
	{prefix: "/leave/requests/", suffix: "/reject", class: classActor},
	{prefix: "/leave/calendar/", suffix: "/status", class: classActor},
	{prefix: "/settings/profile", class: classActor},
}

func (s sensitiveRoute) matches(path string) bool {
	if s.suffix == "" {
		if strings.HasSuffix(s.prefix, "/") {
			return strings.HasPrefix(path, s.prefix) && len(path) > len(s.prefix)
		}
		return path == s.prefix
	}
	return len(path) > len(s.prefix)+len(s.suffix) &&
		strings.HasPrefix(path, s.prefix) && strings.HasSuffix(path, s.suffix)
}

func classify(r *http.Request) routeClass {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
	default:
		return classOther
	}
	path := strings.TrimPrefix(r.URL.Path, "/api/v1")
	for _, route := range sensitiveRoutes {
		if route.matches(path) {
			return route.class
		}
	}
	return classOther
}

// SensitiveMutationRateLimit layers tighter budgets over login attempts and
// account or approval mutations. Logins get a quarter of base, counted both
// per IP and per submitted email. The rest get half of base per actor.
func SensitiveMutationRateLimit(base int, length time.Duration, opts ...RateLimitOption) func(http.Handler) http.Handler {
	o := buildOptions(opts)
	loginLimit := max(base/4, 1)
	loginByIP := newWindow("login-ip", loginLimit, length, clientIPKey, o)
	loginByEmail := newWindow("login-email", loginLimit, length, AuthEmailOrIPKey("email"), o)
	byActor := newWindow("actor", max(base/2, 1), length, actorOrIPKey, o)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch classify(r) {
			case classLogin:
				if !loginByIP.admit(w, r) || !loginByEmail.admit(w, r) {
					return
				}
			case classActor:
				if !byActor.admit(w, r) {
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AuthEmailOrIPKey keys on the named JSON body field, lower-cased, falling
// back to the client IP. The body is restored for the downstream handler.
func AuthEmailOrIPKey(field string) RateLimitKeyFunc {
	field = strings.TrimSpace(field)
	if field == "" {
		field = "email"
	}
	return func(r *http.Request) string {
		if v := peekJSONString(r, field); v != "" {
			return "email:" + strings.ToLower(v)
		}
		return clientIPKey(r)
	}
}

func actorOrIPKey(r *http.Request) string {
	if user, ok := GetUser(r.Context()); ok && user.ID != 0 {
		return "user:" + strconv.FormatInt(user.ID, 10)
	}
	return clientIPKey(r)
}

func clientIPKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return "ip:" + first
		}
	}
	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil && host != "" {
		return "ip:" + host
	}
	return "ip:" + addr
}

type replayBody struct {
	io.Reader
	io.Closer
}

func peekJSONString(r *http.Request, field string) string {
	if r.Body == nil || !strings.Contains(strings.ToLower(r.Header.Get("Content-Type")), "application/json") {
		return ""
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, loginPeekLimit))
	r.Body = replayBody{Reader: io.MultiReader(bytes.NewReader(raw), r.Body), Closer: r.Body}
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload map[string]json.RawMessage
	if json.Unmarshal(raw, &payload) != nil {
		return ""
	}
	var value string
	if json.Unmarshal(payload[field], &value) != nil {
		return ""
	}
	return strings.TrimSpace(value)
}
