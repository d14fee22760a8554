package srp

import "time"

// Clock abstracts time so a run can execute against the wall clock or
// against synthetic, accelerated time for tests and batch scenarios.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type SystemClock struct{}

func (SystemClock) Now() time.Time        { return time.Now() }
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }

// VirtualClock advances only when someone sleeps on it. A 30-second
// simulated run completes in microseconds of real time, deterministically.
type VirtualClock struct {
	now time.Time
}

func NewVirtualClock() *VirtualClock {
	return &VirtualClock{now: time.Unix(0, 0)}
}

func (c *VirtualClock) Now() time.Time        { return c.now }
func (c *VirtualClock) Sleep(d time.Duration) { c.now = c.now.Add(d) }
