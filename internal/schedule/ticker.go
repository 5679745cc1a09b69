package schedule

import (
	"sync"
	"time"
)

// TickerLoop is a Loop backed by the wall clock. Each repeating task owns a
// goroutine and a time.Ticker; callbacks acquire the loop lock before running.
type TickerLoop struct {
	mu sync.Mutex

	hmu     sync.Mutex
	handles map[*Handle]struct{}
	closed  bool
	wg      sync.WaitGroup
}

var _ Loop = (*TickerLoop)(nil)

// NewTickerLoop returns a running loop.
func NewTickerLoop() *TickerLoop {
	return &TickerLoop{handles: make(map[*Handle]struct{})}
}

// Do implements Loop.
func (l *TickerLoop) Do(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn()
}

// Now implements Loop.
func (l *TickerLoop) Now() time.Time {
	return time.Now()
}

// Every implements Loop. After Close it returns an already cancelled handle.
func (l *TickerLoop) Every(interval time.Duration, fn func()) *Handle {
	h := newHandle()

	l.hmu.Lock()
	if l.closed {
		l.hmu.Unlock()
		h.Cancel()
		return h
	}
	l.handles[h] = struct{}{}
	l.wg.Add(1)
	l.hmu.Unlock()

	go l.run(h, interval, fn)
	return h
}

func (l *TickerLoop) run(h *Handle, interval time.Duration, fn func()) {
	defer l.wg.Done()
	defer func() {
		l.hmu.Lock()
		delete(l.handles, h)
		l.hmu.Unlock()
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-h.stop:
			return
		case <-ticker.C:
			l.mu.Lock()
			// A tick can race with Cancel; the flag is checked under the
			// loop lock so a cancelled task never runs again.
			if h.Active() {
				fn()
			}
			l.mu.Unlock()
		}
	}
}

// Pending reports how many repeating tasks are still scheduled.
func (l *TickerLoop) Pending() int {
	l.hmu.Lock()
	defer l.hmu.Unlock()
	return len(l.handles)
}

// Close cancels every task and waits for their goroutines to exit.
// It must not be called from a loop callback.
func (l *TickerLoop) Close() {
	l.hmu.Lock()
	l.closed = true
	handles := make([]*Handle, 0, len(l.handles))
	for h := range l.handles {
		handles = append(handles, h)
	}
	l.hmu.Unlock()

	for _, h := range handles {
		h.Cancel()
	}
	l.wg.Wait()
}
