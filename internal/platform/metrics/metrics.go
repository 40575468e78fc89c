package metrics

import (
	"sync/atomic"
	"time"
)

// Collector counts request traffic plus the domain events worth watching:
// logins, photo captures, and dataset fallbacks broken down by cause. The
// fallback path is invisible to users, so the counters are the only place the
// three causes stay distinguishable.
type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	totalDurationMs uint64
	logins          uint64
	captures        uint64
	fallbackNetwork uint64
	fallbackDecode  uint64
	fallbackShape   uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) Login() {
	atomic.AddUint64(&c.logins, 1)
}

func (c *Collector) Capture() {
	atomic.AddUint64(&c.captures, 1)
}

func (c *Collector) Fallback(cause string) {
	switch cause {
	case "network":
		atomic.AddUint64(&c.fallbackNetwork, 1)
	case "decode":
		atomic.AddUint64(&c.fallbackDecode, 1)
	case "shape":
		atomic.AddUint64(&c.fallbackShape, 1)
	}
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":        total,
		"errorsTotal":          atomic.LoadUint64(&c.errorRequests),
		"avgDurationMs":        avg,
		"loginsTotal":          atomic.LoadUint64(&c.logins),
		"capturesTotal":        atomic.LoadUint64(&c.captures),
		"fallbackNetworkTotal": atomic.LoadUint64(&c.fallbackNetwork),
		"fallbackDecodeTotal":  atomic.LoadUint64(&c.fallbackDecode),
		"fallbackShapeTotal":   atomic.LoadUint64(&c.fallbackShape),
	}
}
