package schedule

import (
	"sync"
	"sync/atomic"
	"time"
)

// Loop is the single logical thread widget callbacks run on.
type Loop interface {
	// Do runs fn on the loop and returns once fn has returned.
	// fn must not call Do itself.
	Do(fn func())

	// Every schedules fn to run on the loop once per interval until the
	// returned handle is cancelled. The first run happens one interval
	// after registration.
	Every(interval time.Duration, fn func()) *Handle

	// Now reports the loop's current time.
	Now() time.Time
}

// Handle controls a repeating task.
type Handle struct {
	cancelled atomic.Bool
	stop      chan struct{}
	once      sync.Once
}

func newHandle() *Handle {
	return &Handle{stop: make(chan struct{})}
}

// Cancel stops future runs. It is idempotent, safe on a nil handle and safe
// to call from inside the task's own callback.
func (h *Handle) Cancel() {
	if h == nil {
		return
	}
	h.once.Do(func() {
		h.cancelled.Store(true)
		close(h.stop)
	})
}

// Active reports whether the task is still scheduled.
func (h *Handle) Active() bool {
	return h != nil && !h.cancelled.Load()
}

// Done is closed once the handle is cancelled.
func (h *Handle) Done() <-chan struct{} {
	return h.stop
}
