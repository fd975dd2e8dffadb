package audio

import (
	"errors"
	"time"

	"github.com/christopher-kleine/w4tones/pkg/tones"
)

var ErrTooLong = errors.New("sequence still playing at the render limit")

// Render plays a player that was started on clock through synth without real
// time passing. Every tick period the player is ticked and one period of
// samples is handed to sink. It stops when the player goes idle or after
// limit, in which case ErrTooLong is returned together with what was rendered.
func Render(p *tones.Player, clock *tones.ManualClock, synth *Square, period, limit time.Duration, sink func([]float32) error) (time.Duration, error) {
	perTick := int(int64(synth.SampleRate()) * int64(period) / int64(time.Second))
	if perTick <= 0 {
		perTick = 1
	}
	block := make([]float32, perTick)

	var elapsed time.Duration
	for p.IsPlaying() {
		if elapsed >= limit {
			return elapsed, ErrTooLong
		}

		synth.Render(block)
		if err := sink(block); err != nil {
			return elapsed, err
		}

		clock.Advance(period)
		elapsed += period
		p.Tick()
	}

	return elapsed, nil
}
