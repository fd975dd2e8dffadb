package tones

import (
	"context"
	"time"
)

// DefaultTickPeriod matches the 10 ms timer interrupt of the handheld. Step
// durations are only as accurate as one period.
const DefaultTickPeriod = 10 * time.Millisecond

// Scheduler ticks a Player at a fixed period.
type Scheduler struct {
	player *Player
	period time.Duration
}

func NewScheduler(p *Player, period time.Duration) *Scheduler {
	if period <= 0 {
		period = DefaultTickPeriod
	}
	return &Scheduler{player: p, period: period}
}

func (s *Scheduler) Period() time.Duration {
	return s.period
}

// Run ticks the player until ctx is done. It blocks; start it in its own
// goroutine.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.player.Tick()
		}
	}
}
