package screen

import (
	"fmt"
	"image/color"
	"math"

	"github.com/christopher-kleine/w4tones/pkg/audio"
	"github.com/christopher-kleine/w4tones/pkg/encoders"
	"github.com/christopher-kleine/w4tones/pkg/runtime"
	"github.com/christopher-kleine/w4tones/pkg/tones"
	"github.com/christopher-kleine/w4tones/pkg/tools"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	WIDTH  = 160
	HEIGHT = 160
)

var (
	background = color.RGBA{0x21, 0x18, 0x07, 0xff}
	barOn      = color.RGBA{0xcf, 0xf8, 0xe0, 0xff}
	barMuted   = color.RGBA{0x50, 0x68, 0x30, 0xff}
)

// Screen is the ebiten game of the native runner: it steps the cart, shows
// what the tone channel is doing and handles the host keys.
//
//	M    toggle mute
//	S    stop playback
//	F10  start/stop WAV recording
type Screen struct {
	rt       *runtime.Runtime
	synth    *audio.Square
	Recorder encoders.Encoder
	showFPS  bool
}

func New(rt *runtime.Runtime, synth *audio.Square, showFPS bool) *Screen {
	return &Screen{
		rt:       rt,
		synth:    synth,
		Recorder: encoders.NewWAV(synth.SampleRate()),
		showFPS:  showFPS,
	}
}

func (s *Screen) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		s.rt.SetMuted(!s.rt.HostMuted())
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		s.rt.Tones.Stop()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF10) {
		s.toggleRecording()
	}

	return s.rt.Update()
}

func (s *Screen) toggleRecording() {
	if s.Recorder.IsRunning() {
		s.synth.SetTap(nil)
		s.Recorder.Stop()
		return
	}

	s.Recorder.Start(s.rt.CartName())
	if s.Recorder.IsRunning() {
		s.synth.SetTap(s.Recorder.Encode)
	}
}

// Close finishes a running recording.
func (s *Screen) Close() {
	if s.Recorder.IsRunning() {
		s.synth.SetTap(nil)
		s.Recorder.Stop()
	}
}

func (s *Screen) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	pitch, audible := s.rt.Tones.Current()
	state := s.rt.Tones.State()

	ebitenutil.DebugPrintAt(screen, s.rt.CartName(), 4, 4)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("state %s", state), 4, 24)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("freq  %d Hz", pitch), 4, 40)
	ebitenutil.DebugPrintAt(screen, tools.Ternary(s.rt.Muted(), "muted", "sound on"), 4, 56)

	if state == tones.Playing {
		clr := tools.Ternary(audible, barOn, barMuted)
		vector.DrawFilledRect(screen, 4, 140, barWidth(pitch), 12, clr, false)
	}

	if s.showFPS {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.f", ebiten.ActualFPS()), WIDTH-24, 4)
	}

	if s.Recorder.IsRunning() {
		ebitenutil.DebugPrintAt(screen, "REC", WIDTH-24, HEIGHT-36)
	}
}

// barWidth maps 16 Hz .. 16 kHz onto the screen on a log scale.
func barWidth(pitch uint16) float32 {
	if pitch == 0 {
		return 0
	}
	w := math.Log2(float64(pitch)/16) / 10 * (WIDTH - 8)
	return float32(tools.Clamp(w, 1, WIDTH-8))
}

func (s *Screen) Layout(int, int) (int, int) { return WIDTH, HEIGHT }
