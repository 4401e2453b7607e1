package session

import (
	"sync"
	"time"
)

// Timer is the inactivity countdown. It runs its own periodic clock but
// never mutates shared state: ticks (whole seconds remaining) and the
// expiry signal are delivered on channels, to be consumed on the same
// serialized path as user actions.
//
// Restart is the sole cancellation primitive: it resets the countdown and
// implicitly cancels the pending expiry.
type Timer struct {
	rate    int
	ticks   chan int
	expired chan struct{}
	// restart carries the full duration in ticks; Start and Restart both
	// feed it once the clock goroutine is running.
	restart chan int
	stop    chan struct{}

	mu       sync.Mutex
	running  bool
	duration int
}

// NewTimer constructs a timer ticking at rate ticks per second. A rate
// below one tick per second is clamped to one.
func NewTimer(rate int) *Timer {
	if rate < 1 {
		rate = 1
	}
	return &Timer{
		rate:    rate,
		ticks:   make(chan int, 1),
		expired: make(chan struct{}, 1),
		restart: make(chan int),
		stop:    make(chan struct{}),
	}
}

// Ticks delivers whole-seconds-remaining values for display. Values are
// monotonically non-increasing between restarts; stale values are dropped
// when the consumer lags.
func (t *Timer) Ticks() <-chan int {
	return t.ticks
}

// Expired signals that the countdown reached zero. Fires exactly once per
// arming; a subsequent Start or Restart re-arms the timer.
func (t *Timer) Expired() <-chan struct{} {
	return t.expired
}

// Start arms the timer to count down from durationSeconds. Starting an
// already started timer re-arms it with the new duration.
func (t *Timer) Start(durationSeconds int) {
	t.mu.Lock()
	t.duration = durationSeconds
	if !t.running {
		t.running = true
		t.mu.Unlock()
		go t.run(durationSeconds * t.rate)
		return
	}
	t.mu.Unlock()
	t.restart <- durationSeconds * t.rate
}

// Restart resets the countdown to the full duration and keeps ticking.
// Idempotent and safe to call arbitrarily often; every qualifying user
// interaction triggers it. No-op before the first Start.
func (t *Timer) Restart() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	total := t.duration * t.rate
	t.mu.Unlock()
	t.restart <- total
}

// Stop tears the timer down entirely. The timer cannot be reused.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		t.running = false
		close(t.stop)
	}
}

func (t *Timer) run(total int) {
	interval := time.Second / time.Duration(t.rate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	step := 0
	armed := true
	for {
		select {
		case <-t.stop:
			return
		case newTotal := <-t.restart:
			total = newTotal
			step = 0
			// Undelivered signals from the previous arming are obsolete;
			// a stale expiry must not lock the fresh session.
			select {
			case <-t.expired:
			default:
			}
			select {
			case <-t.ticks:
			default:
			}
			if !armed {
				armed = true
				ticker.Reset(interval)
			}
		case <-ticker.C:
			if !armed {
				continue
			}
			step++
			t.send(t.ticks, secondsRemaining(total, step, t.rate))
			if step >= total {
				// Expired: stop the clock and signal exactly once.
				armed = false
				ticker.Stop()
				select {
				case t.expired <- struct{}{}:
				default:
				}
			}
		}
	}
}

// send delivers the latest remaining value without blocking the clock,
// replacing a stale undelivered value if the consumer is behind.
func (t *Timer) send(ch chan int, remaining int) {
	for {
		select {
		case ch <- remaining:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}

// secondsRemaining converts a tick position to whole seconds remaining,
// rounded up so the display only reaches 0 at expiry.
func secondsRemaining(total, step, rate int) int {
	left := total - step
	if left <= 0 {
		return 0
	}
	return (left + rate - 1) / rate
}
