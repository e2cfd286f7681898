package metrics

import (
	"maps"
	"sync"
	"sync/atomic"
	"time"
)

const unmatchedRoute = "unmatched"

// Collector keeps process-local request counters for the /metrics endpoint.
type Collector struct {
	started time.Time

	requests    atomic.Uint64
	clientErrs  atomic.Uint64
	serverErrs  atomic.Uint64
	rateLimited atomic.Uint64
	totalMs     atomic.Uint64
	slowestMs   atomic.Uint64

	mu     sync.Mutex
	routes map[string]uint64
}

type Snapshot struct {
	StartedAt         time.Time         `json:"startedAt"`
	UptimeSeconds     int64             `json:"uptimeSeconds"`
	RequestsTotal     uint64            `json:"requestsTotal"`
	ClientErrorsTotal uint64            `json:"clientErrorsTotal"`
	ErrorsTotal       uint64            `json:"errorsTotal"`
	RateLimitedTotal  uint64            `json:"rateLimitedTotal"`
	AvgDurationMs     float64           `json:"avgDurationMs"`
	SlowestDurationMs uint64            `json:"slowestDurationMs"`
	TotalDurationMs   uint64            `json:"totalDurationMs"`
	Routes            map[string]uint64 `json:"routes"`
}

func New() *Collector {
	return &Collector{started: time.Now(), routes: map[string]uint64{}}
}

// Record counts one finished request. route is the matched pattern, not the
// raw path, so ids do not explode the route table.
func (c *Collector) Record(route string, status int, duration time.Duration) {
	c.requests.Add(1)
	switch {
	case status == 429:
		c.rateLimited.Add(1)
		c.clientErrs.Add(1)
	case status >= 500:
		c.serverErrs.Add(1)
	case status >= 400:
		c.clientErrs.Add(1)
	}

	ms := uint64(max(duration.Milliseconds(), 0))
	c.totalMs.Add(ms)
	for {
		cur := c.slowestMs.Load()
		if ms <= cur || c.slowestMs.CompareAndSwap(cur, ms) {
			break
		}
	}

	if route == "" {
		route = unmatchedRoute
	}
	c.mu.Lock()
	c.routes[route]++
	c.mu.Unlock()
}

func (c *Collector) Snapshot() Snapshot {
	s := Snapshot{
		StartedAt:         c.started,
		UptimeSeconds:     int64(time.Since(c.started).Seconds()),
		RequestsTotal:     c.requests.Load(),
		ClientErrorsTotal: c.clientErrs.Load(),
		ErrorsTotal:       c.serverErrs.Load(),
		RateLimitedTotal:  c.rateLimited.Load(),
		SlowestDurationMs: c.slowestMs.Load(),
		TotalDurationMs:   c.totalMs.Load(),
	}
	if s.RequestsTotal > 0 {
		s.AvgDurationMs = float64(s.TotalDurationMs) / float64(s.RequestsTotal)
	}

	c.mu.Lock()
	s.Routes = maps.Clone(c.routes)
	c.mu.Unlock()
	return s
}
