package journal

import "sync/atomic"

// Clock issues the strictly increasing sequence numbers that order
// journal entries. Wall-clock timestamps on entries are informational
// only; seq is the authoritative order, so replay and export produce
// identical results regardless of clock skew between writes.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations),
// though the recorder's single-writer design means only one goroutine
// typically calls Next().
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a new clock starting at a specific sequence number.
// Used when reopening a journal to resume after the last stored entry.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number and increments the clock.
// Each call returns a unique, increasing value.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
