package metrics

import (
	"sync/atomic"
	"time"
)

// Counter is a monotonic in-process counter, reset on restart.
type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

// Checkout groups the counters updated by the order composer.
type Checkout struct {
	OrdersPlaced Counter
	OrdersFailed Counter
	// header written, lines not
	PartialOrders Counter
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
