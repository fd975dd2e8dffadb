package audio

import (
	"encoding/binary"
	"math"
	"sync"
	"sync/atomic"

	"github.com/christopher-kleine/w4tones/pkg/tools"
)

// Square is a one-voice square wave generator. It is the tone driver the
// player commands and the io.Reader the audio device pulls samples from.
type Square struct {
	sampleRate int
	amplitude  float32

	freq atomic.Uint32 // 0 means silent

	mu    sync.Mutex
	phase float64
	buf   []float32
	tap   func([]float32)
}

// NewSquare creates a generator. amplitude is clamped to [0, 1].
func NewSquare(sampleRate int, amplitude float64) *Square {
	return &Square{
		sampleRate: sampleRate,
		amplitude:  float32(tools.Clamp(amplitude, 0, 1)),
	}
}

func (s *Square) SampleRate() int {
	return s.sampleRate
}

// Tone implements tones.Driver.
func (s *Square) Tone(freq uint16) {
	// nothing above Nyquist
	s.freq.Store(uint32(tools.Min(int(freq), s.sampleRate/2)))
}

// NoTone implements tones.Driver.
func (s *Square) NoTone() {
	s.freq.Store(0)
}

// Frequency returns what is sounding right now, 0 for silence.
func (s *Square) Frequency() uint16 {
	return uint16(s.freq.Load())
}

// SetTap installs a function that sees every rendered block, e.g. a recorder.
// nil removes it.
func (s *Square) SetTap(tap func([]float32)) {
	s.mu.Lock()
	s.tap = tap
	s.mu.Unlock()
}

// Render fills dst with the next samples.
func (s *Square) Render(dst []float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	freq := float64(s.freq.Load())
	if freq == 0 {
		for i := range dst {
			dst[i] = 0
		}
		s.phase = 0
	} else {
		step := freq / float64(s.sampleRate)
		for i := range dst {
			dst[i] = tools.Ternary(s.phase < 0.5, s.amplitude, -s.amplitude)
			s.phase += step
			if s.phase >= 1 {
				s.phase -= math.Floor(s.phase)
			}
		}
	}

	if s.tap != nil {
		s.tap(dst)
	}
}

// Read produces mono float32 little-endian PCM.
func (s *Square) Read(p []byte) (int, error) {
	n := len(p) / 4
	if cap(s.buf) < n {
		s.buf = make([]float32, n)
	}
	samples := s.buf[:n]
	s.Render(samples)

	for i, v := range samples {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(v))
	}
	return n * 4, nil
}
