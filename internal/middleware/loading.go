package middleware

import (
	"net/http"
	"strings"
	"sync"
)

// Tracker counts in-flight requests and exposes a single boolean loading
// signal: true on the 0->1 transition, false when the count returns to 0.
// The mutex keeps the count and the flag flip atomic together.
type Tracker struct {
	mu       sync.Mutex
	inflight int
	active   bool
	onChange []func(bool)
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// OnChange registers a callback fired on every loading-flag transition. The
// callback runs with the tracker lock held, so it must not call back in.
func (t *Tracker) OnChange(fn func(active bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onChange = append(t.onChange, fn)
}

// Active reports whether any tracked request is in flight.
func (t *Tracker) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

func (t *Tracker) add() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inflight++
	if !t.active {
		t.active = true
		t.emit(true)
	}
}

func (t *Tracker) done() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.inflight > 0 {
		t.inflight--
	}
	if t.inflight == 0 && t.active {
		t.active = false
		t.emit(false)
	}
}

func (t *Tracker) emit(active bool) {
	for _, fn := range t.onChange {
		fn(active)
	}
}

// Loading tracks requests through the tracker. Paths with a prefix in skip
// (background endpoints) bypass tracking entirely. The decrement is deferred,
// so it runs on success, transport failure, and panic alike.
func Loading(t *Tracker, skip ...string) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(req *http.Request) (*http.Response, error) {
			for _, prefix := range skip {
				if strings.HasPrefix(req.URL.Path, prefix) {
					return next.RoundTrip(req)
				}
			}

			t.add()
			defer t.done()
			return next.RoundTrip(req)
		})
	}
}
