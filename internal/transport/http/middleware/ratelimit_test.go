package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "hrconnect/internal/domain/auth"
	"hrconnect/internal/requestctx"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2023, 6, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

var noContent = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

type call struct {
	method string
	path   string
	body   string
	addr   string
	user   int64
}

func (p call) send(h http.Handler) *httptest.ResponseRecorder {
	method := p.method
	if method == "" {
		method = http.MethodPost
	}
	var body io.Reader
	if p.body != "" {
		body = strings.NewReader(p.body)
	}
	req := httptest.NewRequest(method, p.path, body)
	if p.body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if p.addr != "" {
		req.RemoteAddr = p.addr
	}
	if p.user != 0 {
		req = req.WithContext(requestctx.WithUser(context.Background(), domainauth.User{ID: p.user, Role: domainauth.RoleHR}))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitKeysOnUserBeforeIP(t *testing.T) {
	h := RateLimit(1, time.Minute)(noContent)

	assert.Equal(t, http.StatusNoContent, call{path: "/api/v1/employees", addr: "198.51.100.11:2222", user: 1}.send(h).Code)
	assert.Equal(t, http.StatusTooManyRequests, call{path: "/api/v1/employees", addr: "198.51.100.12:3333", user: 1}.send(h).Code,
		"same user from another address shares the budget")
	assert.Equal(t, http.StatusNoContent, call{path: "/api/v1/employees", addr: "198.51.100.11:2222", user: 2}.send(h).Code)
}

func TestRateLimitFallsBackToClientIP(t *testing.T) {
	h := RateLimit(1, time.Minute)(noContent)

	assert.Equal(t, http.StatusNoContent, call{path: "/api/v1/auth/login", body: `{"email":"a@example.com"}`, addr: "203.0.113.10:4444"}.send(h).Code)
	assert.Equal(t, http.StatusTooManyRequests, call{path: "/api/v1/auth/login", body: `{"email":"b@example.com"}`, addr: "203.0.113.10:5555"}.send(h).Code)
	assert.Equal(t, http.StatusNoContent, call{path: "/api/v1/auth/login", addr: "203.0.113.99:5555"}.send(h).Code)
}

func TestRateLimitWindowResetsWithClock(t *testing.T) {
	clock := newFakeClock()
	h := RateLimit(2, time.Minute, WithClock(clock.Now))(noContent)
	hit := call{path: "/api/v1/leave/requests", addr: "192.0.2.20:1111"}

	assert.Equal(t, http.StatusNoContent, hit.send(h).Code)
	assert.Equal(t, http.StatusNoContent, hit.send(h).Code)
	assert.Equal(t, http.StatusTooManyRequests, hit.send(h).Code)

	clock.Advance(59 * time.Second)
	assert.Equal(t, http.StatusTooManyRequests, hit.send(h).Code)

	clock.Advance(time.Second)
	rec := hit.send(h)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimitReportsRetryMetadata(t *testing.T) {
	clock := newFakeClock()
	h := RateLimit(1, time.Minute, WithClock(clock.Now))(noContent)
	hit := call{path: "/api/v1/employees", addr: "192.0.2.30:1234"}

	first := hit.send(h)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", first.Header().Get("X-RateLimit-Remaining"))
	assert.Empty(t, first.Header().Get("Retry-After"))

	clock.Advance(20*time.Second + 500*time.Millisecond)
	rec := hit.send(h)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "40", rec.Header().Get("Retry-After"))
	assert.Equal(t, "40", rec.Header().Get("X-RateLimit-Reset"))
	assert.Equal(t, "rate_limited", decodeEnvelope(t, rec.Body).Error.Code)
}

func TestRateLimitDisabledWithZeroLimit(t *testing.T) {
	h := RateLimit(0, time.Minute)(noContent)
	for range 5 {
		assert.Equal(t, http.StatusNoContent, call{path: "/", addr: "192.0.2.1:1"}.send(h).Code)
	}
}

func TestWindowSweepsExpiredKeys(t *testing.T) {
	clock := newFakeClock()
	wd := newWindow("test", 5, time.Minute, clientIPKey, limiterOptions{now: clock.Now})

	wd.hit("ip:a")
	wd.hit("ip:b")
	require.Len(t, wd.hits, 2)

	clock.Advance(2 * time.Minute)
	wd.hit("ip:c")
	assert.Len(t, wd.hits, 1)
	assert.Contains(t, wd.hits, "ip:c")
}

func TestSensitiveMutationRateLimitOnlyCoversMutations(t *testing.T) {
	h := SensitiveMutationRateLimit(4, time.Minute)(noContent)

	for range 6 {
		assert.Equal(t, http.StatusNoContent, call{method: http.MethodGet, path: "/api/v1/dashboard", addr: "198.51.100.40:8888"}.send(h).Code)
		assert.Equal(t, http.StatusNoContent, call{path: "/api/v1/employees", user: 2}.send(h).Code)
	}

	approve := call{path: "/api/v1/leave/requests/1/approve", user: 2}
	assert.Equal(t, http.StatusNoContent, approve.send(h).Code)
	assert.Equal(t, http.StatusNoContent, call{path: "/api/v1/leave/requests/3/reject", user: 2}.send(h).Code)
	assert.Equal(t, http.StatusTooManyRequests, approve.send(h).Code, "decisions share one per-actor budget")
	assert.Equal(t, http.StatusNoContent, call{path: "/api/v1/leave/requests/1/approve", user: 3}.send(h).Code)
}

func TestSensitiveMutationRateLimitLoginByEmail(t *testing.T) {
	h := SensitiveMutationRateLimit(8, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, strings.ToLower(string(body)), "@example.com", "body must survive the key lookup")
		assert.Contains(t, string(body), `"password":"x"`)
		w.WriteHeader(http.StatusNoContent)
	}))

	login := func(email, addr string) int {
		return call{path: "/api/v1/auth/login", body: `{"email":"` + email + `","password":"x"}`, addr: addr}.send(h).Code
	}

	assert.Equal(t, http.StatusNoContent, login("John@Example.com", "198.51.100.1:1"))
	assert.Equal(t, http.StatusNoContent, login("john@example.com", "198.51.100.2:1"))
	assert.Equal(t, http.StatusTooManyRequests, login("JOHN@example.com", "198.51.100.3:1"), "email budget ignores case")
	assert.Equal(t, http.StatusNoContent, login("sarah@example.com", "198.51.100.4:1"))
}

func TestClassifySensitiveRoutes(t *testing.T) {
	cases := []struct {
		method string
		path   string
		want   routeClass
	}{
		{http.MethodPost, "/api/v1/auth/login", classLogin},
		{http.MethodGet, "/api/v1/auth/login", classOther},
		{http.MethodPost, "/api/v1/auth/mfa/enable", classActor},
		{http.MethodPost, "/api/v1/auth/mfa/", classOther},
		{http.MethodPost, "/api/v1/leave/requests/7/approve", classActor},
		{http.MethodPost, "/api/v1/leave/requests/approve", classOther},
		{http.MethodPost, "/api/v1/leave/calendar/7/status", classActor},
		{http.MethodPut, "/api/v1/settings/profile", classActor},
		{http.MethodPut, "/api/v1/settings/profile/extra", classOther},
		{http.MethodDelete, "/api/v1/employees/1", classOther},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			assert.Equal(t, tc.want, classify(httptest.NewRequest(tc.method, tc.path, nil)))
		})
	}
}

func TestClientIPKeyPrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5000"
	assert.Equal(t, "ip:10.0.0.1", clientIPKey(req))

	req.Header.Set("X-Forwarded-For", " 203.0.113.5 , 10.0.0.1")
	assert.Equal(t, "ip:203.0.113.5", clientIPKey(req))
}
