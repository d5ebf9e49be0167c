// Package frame provides the host side of cooperative frame scheduling: a
// per-frame callback queue with cancellable tokens and a frame rate limiter.
package frame

import "time"

// Token identifies a requested callback. The zero Token is never issued.
type Token uint64

type request struct {
	token Token
	cb    func(now time.Time)
}

// Scheduler queues callbacks for the next frame, in the manner of a
// browser's animation frame queue. It is not safe for concurrent use; all
// calls come from the thread that pumps events.
type Scheduler struct {
	last    Token
	pending []request
	running []request
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Request queues cb for the next RunFrame
func (s *Scheduler) Request(cb func(now time.Time)) Token {
	s.last++
	s.pending = append(s.pending, request{token: s.last, cb: cb})
	return s.last
}

// Cancel drops a queued callback. Unknown or already run tokens are ignored.
func (s *Scheduler) Cancel(t Token) {
	for i, r := range s.pending {
		if r.token == t {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
	// cancelled from inside a callback of the batch being run
	for i := range s.running {
		if s.running[i].token == t {
			s.running[i].cb = nil
			return
		}
	}
}

// Pending returns the number of queued callbacks
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

// RunFrame runs the callbacks queued before the call, in request order.
// Callbacks requested while it runs wait for the next frame; callbacks
// cancelled while it runs are skipped. Returns how many ran.
func (s *Scheduler) RunFrame(now time.Time) int {
	if len(s.pending) == 0 {
		return 0
	}
	s.running, s.pending = s.pending, nil

	ran := 0
	for i := range s.running {
		cb := s.running[i].cb
		if cb == nil {
			continue
		}
		s.running[i].cb = nil
		cb(now)
		ran++
	}
	s.running = nil
	return ran
}
