package runtime

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/christopher-kleine/w4tones/pkg/tones"
)

// toneCart imports env.tone, exports its memory and a start function that
// calls tone(440, 200).
var toneCart = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	// types: (i32, i32) -> (), () -> ()
	0x01, 0x09, 0x02, 0x60, 0x02, 0x7f, 0x7f, 0x00, 0x60, 0x00, 0x00,
	// import env.tone
	0x02, 0x0c, 0x01, 0x03, 'e', 'n', 'v', 0x04, 't', 'o', 'n', 'e', 0x00, 0x00,
	// one function of type 1
	0x03, 0x02, 0x01, 0x01,
	// one page of memory
	0x05, 0x03, 0x01, 0x00, 0x01,
	// export memory and start
	0x07, 0x12, 0x02,
	0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
	0x05, 's', 't', 'a', 'r', 't', 0x00, 0x01,
	// start: tone(440, 200)
	0x0a, 0x0c, 0x01, 0x0a, 0x00, 0x41, 0xb8, 0x03, 0x41, 0xc8, 0x01, 0x10, 0x00, 0x0b,
}

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) Tone(freq uint16) {
	r.mu.Lock()
	r.calls = append(r.calls, fmt.Sprintf("tone %d", freq))
	r.mu.Unlock()
}

func (r *recorder) NoTone() {
	r.mu.Lock()
	r.calls = append(r.calls, "off")
	r.mu.Unlock()
}

func (r *recorder) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return ""
	}
	return r.calls[len(r.calls)-1]
}

func newTestRuntime(t *testing.T) (*Runtime, *recorder, *tones.ManualClock) {
	t.Helper()

	out := &recorder{}
	clock := tones.NewManualClock()
	rt, err := NewRuntime(context.Background(), out, 10*time.Millisecond, tones.WithClock(clock))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(rt.Close)

	if err := rt.LoadCart(toneCart, "test"); err != nil {
		t.Fatal(err)
	}
	return rt, out, clock
}

func TestStartPlaysTone(t *testing.T) {
	rt, out, clock := newTestRuntime(t)

	if out.last() != "tone 440" {
		t.Fatalf("calls = %v", out.calls)
	}
	if rt.tonesPlaying(context.Background()) != 1 {
		t.Error("tonesPlaying = 0")
	}

	clock.Advance(200 * time.Millisecond)
	rt.Tones.Tick()
	if rt.tonesPlaying(context.Background()) != 0 {
		t.Error("still playing")
	}
}

func TestTonesReadsCartMemory(t *testing.T) {
	rt, out, clock := newTestRuntime(t)

	img := tones.ImageOf(tones.NoteC5, 50, tones.High(tones.NoteE5), 50, tones.End)
	if !rt.cart.Memory().Write(MemUser, img) {
		t.Fatal("write failed")
	}

	if got := rt.tones(context.Background(), rt.cart, MemUser); got != 0 {
		t.Fatalf("tones returned %d", got)
	}
	if out.last() != "tone 523" {
		t.Fatalf("calls = %v", out.calls)
	}

	clock.Advance(50 * time.Millisecond)
	rt.Tones.Tick()
	if out.last() != "tone 659" {
		t.Errorf("calls = %v", out.calls)
	}
}

func TestTonesRejectsRunaway(t *testing.T) {
	rt, out, _ := newTestRuntime(t)

	// two pairs and no marker at the very end of memory
	img := tones.ImageOf(440, 10, 440, 10)
	size := rt.cart.Memory().Size()
	ptr := size - uint32(len(img))
	rt.cart.Memory().Write(ptr, img)

	before := out.last()
	if got := rt.tones(context.Background(), rt.cart, ptr); got != -1 {
		t.Errorf("tones returned %d", got)
	}
	if out.last() != before {
		t.Errorf("rejected sequence reached the driver: %v", out.calls)
	}
}

func TestMuteFlag(t *testing.T) {
	rt, out, _ := newTestRuntime(t)

	rt.cart.Memory().WriteByte(MemSystemFlags, FlagMute)
	if err := rt.Update(); err != nil {
		t.Fatal(err)
	}
	if !rt.Muted() {
		t.Fatal("cart mute flag ignored")
	}

	rt.tone(context.Background(), 440, 100)
	if out.last() != "off" {
		t.Errorf("muted cart sounded: %v", out.calls)
	}

	rt.cart.Memory().WriteByte(MemSystemFlags, 0)
	rt.Update()
	rt.SetMuted(true)
	rt.tone2(context.Background(), 440, 100, 0, 100)
	if out.last() != "off" {
		t.Errorf("host mute ignored: %v", out.calls)
	}

	rt.SetMuted(false)
	rt.tone3(context.Background(), 440, 100, 0, 100, 0, 100)
	if out.last() != "tone 440" {
		t.Errorf("unmuted tone silent: %v", out.calls)
	}
}

func TestNoToneStops(t *testing.T) {
	rt, out, _ := newTestRuntime(t)

	rt.volumeMode(context.Background(), uint32(tones.VolumeAlwaysHigh))
	rt.noTone(context.Background())
	if rt.Tones.IsPlaying() || out.last() != "off" {
		t.Errorf("calls = %v", out.calls)
	}
}

func TestGetString(t *testing.T) {
	rt, _, _ := newTestRuntime(t)

	rt.cart.Memory().Write(MemUser, []byte("hello\x00world"))
	if got := getString(rt.cart.Memory(), MemUser); got != "hello" {
		t.Errorf("getString = %q", got)
	}
	rt.trace(context.Background(), rt.cart, MemUser)
}

func TestUpdateWithoutCart(t *testing.T) {
	rt, err := NewRuntime(context.Background(), nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer rt.Close()

	if err := rt.Update(); !errors.Is(err, ErrNoCart) {
		t.Errorf("err = %v", err)
	}
}

func TestRunStopsWithContext(t *testing.T) {
	rt, _, _ := newTestRuntime(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := rt.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run = %v", err)
	}
	if rt.Tones.IsPlaying() {
		t.Error("still playing after Run returned")
	}
}
