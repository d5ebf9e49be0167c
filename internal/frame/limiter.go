package frame

import (
	"time"

	"reactive-gradient/internal/config"
)

// Limiter paces drawn frames to config.GetFPSLimit
type Limiter struct {
	next time.Time

	// overridable in tests
	now   func() time.Time
	sleep func(time.Duration)
}

func NewLimiter() *Limiter {
	return &Limiter{now: time.Now, sleep: time.Sleep}
}

// Reset forgets the frame cadence; the next Wait starts a new one. Call it
// after the loop has been idle so the first frame is not delayed.
func (l *Limiter) Reset() {
	l.next = time.Time{}
}

// Wait blocks until the next frame may be drawn.
// Uses a hybrid sleep/spin approach for better precision on high caps.
func (l *Limiter) Wait() {
	limit := config.GetFPSLimit()
	if limit <= 0 {
		l.next = time.Time{}
		return
	}

	target := time.Second / time.Duration(limit)

	if l.next.IsZero() {
		l.next = l.now().Add(target)
	} else {
		l.next = l.next.Add(target)
	}

	for {
		remaining := l.next.Sub(l.now())
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			l.sleep(remaining - 200*time.Microsecond)
		}
		// busy-wait for the final few microseconds
		if l.next.Sub(l.now()) <= 0 {
			break
		}
	}

	// resync after a hitch instead of bursting to catch up
	if late := l.now().Sub(l.next); late > target {
		l.next = l.now().Add(target)
	}
}
