package runtime

import (
	"context"

	"github.com/christopher-kleine/w4tones/pkg/tones"
	"github.com/christopher-kleine/w4tones/pkg/tools"
	"github.com/tetratelabs/wazero/api"
)

// tone plays a single tone for `duration` milliseconds.
func (rt *Runtime) tone(_ context.Context, frequency, duration uint32) {
	rt.Tones.Play(uint16(frequency), uint16(duration))
}

// tone2 plays two tones back to back.
func (rt *Runtime) tone2(_ context.Context, freq1, dur1, freq2, dur2 uint32) {
	rt.Tones.Play2(uint16(freq1), uint16(dur1), uint16(freq2), uint16(dur2))
}

// tone3 plays three tones back to back.
func (rt *Runtime) tone3(_ context.Context, freq1, dur1, freq2, dur2, freq3, dur3 uint32) {
	rt.Tones.Play3(uint16(freq1), uint16(dur1), uint16(freq2), uint16(dur2), uint16(freq3), uint16(dur3))
}

// tones plays the sequence at `ptr` in cart memory. The words are read in
// place while the sequence plays, so the cart must leave them alone until it
// is done. Returns 0, or -1 if the sequence was rejected.
func (rt *Runtime) tones(_ context.Context, mod api.Module, ptr uint32) int32 {
	err := rt.Tones.PlaySequence(tones.NewROM(mod.Memory(), ptr))
	if err != nil {
		rt.log("tones(%#x): %v", ptr, err)
		return -1
	}
	return 0
}

// noTone silences the channel and drops the rest of the sequence.
func (rt *Runtime) noTone(_ context.Context) {
	rt.Tones.Stop()
}

// tonesPlaying returns 1 while a sequence is playing.
func (rt *Runtime) tonesPlaying(_ context.Context) int32 {
	return tools.Ternary[int32](rt.Tones.IsPlaying(), 1, 0)
}

// volumeMode is reserved; every mode is accepted.
func (rt *Runtime) volumeMode(_ context.Context, mode uint32) {
	rt.Tones.SetVolumeMode(uint8(mode))
}
