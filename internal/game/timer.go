package game

import (
	"sync"
	"time"
)

// TurnTimer is a cancellable countdown owned by one match. Every Start
// advances a generation counter and arms a fresh time.AfterFunc carrying
// that generation. An expiry that lost a race with a later Start or Cancel
// is detected by the owner via Current and dropped, so at most one timeout
// is ever acted on per armed countdown.
type TurnTimer struct {
	mu    sync.Mutex
	d     time.Duration
	fire  func(gen uint64)
	timer *time.Timer
	gen   uint64
}

// NewTurnTimer builds a disarmed timer. A zero duration disables it
// entirely (Start becomes a no-op and fire is never called).
func NewTurnTimer(d time.Duration, fire func(gen uint64)) *TurnTimer {
	return &TurnTimer{d: d, fire: fire}
}

// Start begins a fresh countdown, superseding any pending one.
func (t *TurnTimer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.gen++
	if t.d <= 0 {
		return
	}
	gen := t.gen
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(t.d, func() { t.fire(gen) })
}

// Reset is Start under its turn-change name.
func (t *TurnTimer) Reset() { t.Start() }

// Cancel suppresses any pending expiry. Used on match teardown so no timer
// outlives its match.
func (t *TurnTimer) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.gen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// Current reports whether gen is still the live generation. The expiry
// handler must call this under the same lock that guards its Start/Cancel
// calls; a stale generation means a reset won the race.
func (t *TurnTimer) Current(gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return gen == t.gen
}
