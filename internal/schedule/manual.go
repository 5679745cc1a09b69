package schedule

import (
	"sort"
	"sync"
	"time"
)

// ManualLoop is a Loop on a virtual clock. Repeating tasks only run when the
// clock is moved forward with Advance, in time order, one at a time.
type ManualLoop struct {
	mu sync.Mutex

	tmu   sync.Mutex
	now   time.Time
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	handle   *Handle
	interval time.Duration
	next     time.Time
	seq      int
	fn       func()
}

var _ Loop = (*ManualLoop)(nil)

// NewManualLoop returns a loop whose clock starts at start.
func NewManualLoop(start time.Time) *ManualLoop {
	return &ManualLoop{now: start}
}

// Do implements Loop.
func (l *ManualLoop) Do(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn()
}

// Now implements Loop.
func (l *ManualLoop) Now() time.Time {
	l.tmu.Lock()
	defer l.tmu.Unlock()
	return l.now
}

// Every implements Loop. Non-positive intervals are treated as one nanosecond.
func (l *ManualLoop) Every(interval time.Duration, fn func()) *Handle {
	if interval <= 0 {
		interval = time.Nanosecond
	}
	h := newHandle()

	l.tmu.Lock()
	defer l.tmu.Unlock()
	l.seq++
	l.tasks = append(l.tasks, &manualTask{
		handle:   h,
		interval: interval,
		next:     l.now.Add(interval),
		seq:      l.seq,
		fn:       fn,
	})
	return h
}

// Advance moves the clock forward by d, running every task that falls due
// on the way. Tasks registered by a callback become eligible immediately.
// It must not be called from a loop callback.
func (l *ManualLoop) Advance(d time.Duration) {
	l.tmu.Lock()
	target := l.now.Add(d)
	l.tmu.Unlock()

	for {
		task := l.nextDue(target)
		if task == nil {
			break
		}
		l.mu.Lock()
		if task.handle.Active() {
			task.fn()
		}
		l.mu.Unlock()
	}

	l.tmu.Lock()
	l.now = target
	l.tmu.Unlock()
}

// nextDue pops the earliest active task due at or before target, moves the
// clock to its fire time and reschedules it.
func (l *ManualLoop) nextDue(target time.Time) *manualTask {
	l.tmu.Lock()
	defer l.tmu.Unlock()

	active := l.tasks[:0]
	for _, t := range l.tasks {
		if t.handle.Active() {
			active = append(active, t)
		}
	}
	l.tasks = active

	sort.SliceStable(l.tasks, func(i, j int) bool {
		if l.tasks[i].next.Equal(l.tasks[j].next) {
			return l.tasks[i].seq < l.tasks[j].seq
		}
		return l.tasks[i].next.Before(l.tasks[j].next)
	})

	if len(l.tasks) == 0 || l.tasks[0].next.After(target) {
		return nil
	}

	task := l.tasks[0]
	l.now = task.next
	task.next = task.next.Add(task.interval)
	return task
}

// Pending reports how many repeating tasks are still scheduled.
func (l *ManualLoop) Pending() int {
	l.tmu.Lock()
	defer l.tmu.Unlock()

	n := 0
	for _, t := range l.tasks {
		if t.handle.Active() {
			n++
		}
	}
	return n
}
