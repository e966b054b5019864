package game

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// timerProbe hooks a TurnTimer the way a match does: expiries are only
// acted on when their generation is still current.
type timerProbe struct {
	mu        sync.Mutex
	tt        *TurnTimer
	delivered []uint64
}

func newTimerProbe(d time.Duration) *timerProbe {
	p := &timerProbe{}
	p.tt = NewTurnTimer(d, func(gen uint64) {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.tt.Current(gen) {
			p.delivered = append(p.delivered, gen)
		}
	})
	return p
}

func (p *timerProbe) fired() []uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]uint64(nil), p.delivered...)
}

func TestTurnTimer_FiresOnce(t *testing.T) {
	p := newTimerProbe(20 * time.Millisecond)
	p.tt.Start()

	time.Sleep(80 * time.Millisecond)

	require.Equal(t, []uint64{1}, p.fired())
}

func TestTurnTimer_ResetSuppressesStaleGeneration(t *testing.T) {
	p := newTimerProbe(30 * time.Millisecond)
	p.tt.Start()
	time.Sleep(10 * time.Millisecond)
	p.tt.Reset()

	time.Sleep(100 * time.Millisecond)

	// only the post-reset generation may ever be delivered
	require.Equal(t, []uint64{2}, p.fired())
	assert.False(t, p.tt.Current(1))
	assert.True(t, p.tt.Current(2))
}

func TestTurnTimer_CancelSuppressesPendingFire(t *testing.T) {
	p := newTimerProbe(20 * time.Millisecond)
	p.tt.Start()
	p.tt.Cancel()

	time.Sleep(60 * time.Millisecond)

	assert.Empty(t, p.fired())
	assert.False(t, p.tt.Current(1))
}

func TestTurnTimer_ZeroDurationDisabled(t *testing.T) {
	p := newTimerProbe(0)
	p.tt.Start()

	time.Sleep(30 * time.Millisecond)

	assert.Empty(t, p.fired())
}
