package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCollectorSnapshot(t *testing.T) {
	c := New()
	c.Record("GET /api/v1/employees", 200, 10*time.Millisecond)
	c.Record("GET /api/v1/employees", 500, 30*time.Millisecond)
	c.Record("POST /api/v1/leave/requests", 400, 0)
	c.Record("", 429, 0)

	snap := c.Snapshot()
	assert.Equal(t, uint64(4), snap.RequestsTotal)
	assert.Equal(t, uint64(1), snap.ErrorsTotal)
	assert.Equal(t, uint64(2), snap.ClientErrorsTotal)
	assert.Equal(t, uint64(1), snap.RateLimitedTotal)
	assert.Equal(t, uint64(30), snap.SlowestDurationMs)
	assert.InDelta(t, 10.0, snap.AvgDurationMs, 0.001)
	assert.Equal(t, map[string]uint64{
		"GET /api/v1/employees":       2,
		"POST /api/v1/leave/requests": 1,
		"unmatched":                   1,
	}, snap.Routes)
}

func TestSnapshotIsDetached(t *testing.T) {
	c := New()
	c.Record("GET /healthz", 200, time.Millisecond)
	snap := c.Snapshot()
	snap.Routes["GET /healthz"] = 99

	assert.Equal(t, uint64(1), c.Snapshot().Routes["GET /healthz"])
}

func TestCollectorConcurrentRecord(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				c.Record("GET /api/v1/dashboard", 200, time.Duration(i)*time.Millisecond)
			}
		}()
	}
	wg.Wait()

	snap := c.Snapshot()
	assert.Equal(t, uint64(800), snap.RequestsTotal)
	assert.Equal(t, uint64(7), snap.SlowestDurationMs)
}
