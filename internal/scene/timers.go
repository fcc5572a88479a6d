package scene

import (
	"sort"
	"time"
)

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock only moves when told to.
type ManualClock struct {
	t time.Time
}

func NewManualClock(start time.Time) *ManualClock { return &ManualClock{t: start} }

func (c *ManualClock) Now() time.Time          { return c.t }
func (c *ManualClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type timer struct {
	due time.Time
	fn  func()
}

// Timers holds one-shot tasks scheduled against a clock.
type Timers struct {
	clock   Clock
	pending []timer
}

func NewTimers(clock Clock) *Timers {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Timers{clock: clock}
}

func (t *Timers) Clock() Clock { return t.clock }

// SetClock moves the timers onto c. Pending tasks keep the delay they had
// left on the old clock.
func (t *Timers) SetClock(c Clock) {
	if c == nil {
		c = SystemClock{}
	}
	old, now := t.clock.Now(), c.Now()
	for i := range t.pending {
		t.pending[i].due = now.Add(t.pending[i].due.Sub(old))
	}
	t.clock = c
}

// After schedules fn to run once d has elapsed on the clock.
func (t *Timers) After(d time.Duration, fn func()) {
	t.pending = append(t.pending, timer{due: t.clock.Now().Add(d), fn: fn})
	sort.SliceStable(t.pending, func(i, j int) bool { return t.pending[i].due.Before(t.pending[j].due) })
}

// RunDue runs every task whose deadline has passed and returns how many ran.
func (t *Timers) RunDue() int {
	now := t.clock.Now()
	n := 0
	for n < len(t.pending) && !t.pending[n].due.After(now) {
		n++
	}
	if n == 0 {
		return 0
	}
	due := make([]timer, n)
	copy(due, t.pending[:n])
	t.pending = t.pending[n:]
	for _, d := range due {
		d.fn()
	}
	return n
}

func (t *Timers) Pending() int { return len(t.pending) }
