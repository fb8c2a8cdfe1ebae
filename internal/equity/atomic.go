package equity

import "sync/atomic"

// atomicCounter accumulates worker-local totals with relaxed-equivalent
// ordering: Go's atomic package offers no weaker mode, which is a strict
// superset of what aggregation here requires (no worker ever reads another
// worker's partial count).
type atomicCounter struct {
	v atomic.Uint64
}

func (c *atomicCounter) add(n uint64) {
	c.v.Add(n)
}

func (c *atomicCounter) load() uint64 {
	return c.v.Load()
}
