package app

import (
	"runtime"
	"time"
)

// spinMargin is how much of each wait is spent polling the clock instead of
// sleeping. Sleep overshoots by up to a scheduler tick.
const spinMargin = 200 * time.Microsecond

// Limiter paces the frame loop to a fixed rate.
type Limiter struct {
	interval time.Duration
	deadline time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// NewLimiter returns a limiter for fps frames per second. A zero or negative
// fps disables pacing.
func NewLimiter(fps int) *Limiter {
	l := &Limiter{now: time.Now, sleep: time.Sleep}
	if fps > 0 {
		l.interval = time.Second / time.Duration(fps)
	}
	return l
}

// Wait blocks until the next frame is due. Deadlines advance by a fixed
// interval so short frames make up for long ones; a frame more than one
// interval late restarts the schedule from now.
func (l *Limiter) Wait() {
	if l == nil || l.interval <= 0 {
		return
	}
	now := l.now()
	switch {
	case l.deadline.IsZero(), now.Sub(l.deadline) > l.interval:
		l.deadline = now.Add(l.interval)
	default:
		l.deadline = l.deadline.Add(l.interval)
	}

	if d := l.deadline.Sub(now) - spinMargin; d > 0 {
		l.sleep(d)
	}
	for l.now().Before(l.deadline) {
		runtime.Gosched()
	}
}
