package tones

import (
	"sync"
	"time"

	"github.com/christopher-kleine/w4tones/pkg/debug"
)

// Volume modes accepted by SetVolumeMode.
const (
	VolumeInTone       uint8 = 0
	VolumeAlwaysNormal uint8 = 1
	VolumeAlwaysHigh   uint8 = 2
)

// DurationUnit is the length of one duration step.
const DurationUnit = time.Millisecond

type State uint8

const (
	Idle State = iota
	Playing
)

func (s State) String() string {
	if s == Playing {
		return "playing"
	}
	return "idle"
}

// Player owns the single tone channel. It decodes the installed sequence and
// drives the Driver one step at a time; Tick moves it to the next step once
// the current one has run its course.
type Player struct {
	mu sync.Mutex

	enabled func() bool
	driver  Driver
	clock   Clock
	limit   int

	cur    cursor
	state  State
	silent bool
	pitch  uint16

	// pending advance
	armed   bool
	armedAt time.Time
	wait    time.Duration

	buf [MaxTones*2 + 1]uint16
}

type Option func(*Player)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(p *Player) { p.clock = c }
}

// WithScanLimit bounds the terminator scan of installed sequences.
func WithScanLimit(words int) Option {
	return func(p *Player) { p.limit = words }
}

// New creates a player. enabled is asked on every step whether sound output is
// allowed; nil means always.
func New(enabled func() bool, driver Driver, opts ...Option) *Player {
	p := &Player{
		enabled: enabled,
		driver:  driver,
		clock:   SystemClock,
		limit:   DefaultScanLimit,
	}
	if p.driver == nil {
		p.driver = nopDriver{}
	}
	for _, opt := range opts {
		opt(p)
	}

	p.buf[MaxTones*2] = End

	return p
}

// Play plays a single tone for dur milliseconds.
func (p *Player) Play(freq, dur uint16) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.buf[0] = freq
	p.buf[1] = dur
	p.buf[2] = End
	p.start(RAM(p.buf[:]))
}

// Play2 plays two tones back to back.
func (p *Player) Play2(freq1, dur1, freq2, dur2 uint16) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.buf[0] = freq1
	p.buf[1] = dur1
	p.buf[2] = freq2
	p.buf[3] = dur2
	p.buf[4] = End
	p.start(RAM(p.buf[:]))
}

// Play3 plays three tones back to back.
func (p *Player) Play3(freq1, dur1, freq2, dur2, freq3, dur3 uint16) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.buf[0] = freq1
	p.buf[1] = dur1
	p.buf[2] = freq2
	p.buf[3] = dur2
	p.buf[4] = freq3
	p.buf[5] = dur3
	// buf[6] is End since New
	p.start(RAM(p.buf[:]))
}

// PlaySequence plays a read-only sequence.
func (p *Player) PlaySequence(src ROM) error {
	return p.Tones(src)
}

// PlaySequenceMutable plays a caller-owned buffer. The caller must not change
// or drop seq until playback ends, is stopped or is replaced.
func (p *Player) PlaySequenceMutable(seq []uint16) error {
	return p.Tones(RAM(seq))
}

// Tones validates src and, if it is well formed, replaces whatever is playing
// with it. A rejected sequence leaves the current playback alone.
func (p *Player) Tones(src Source) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := Validate(src, p.limit); err != nil {
		debug.Log("tones", "rejected %s sequence: %v", src.kind(), err)
		return err
	}

	p.start(src)
	return nil
}

// Stop silences the output and drops any pending step. Safe to call at any
// time.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.halt()
}

// IsPlaying reports whether a sequence is sounding, rests included.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state == Playing
}

func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state
}

// Current returns the pitch of the current step and whether it is audible.
func (p *Player) Current() (pitch uint16, audible bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != Playing {
		return 0, false
	}
	return p.pitch, !p.silent
}

// SetVolumeMode is reserved. Every mode is accepted and none changes the
// output.
func (p *Player) SetVolumeMode(mode uint8) {
	debug.Log("tones", "volume mode %d ignored", mode)
}

// Tick advances playback when the armed step has run its course. It returns
// whether a step was advanced.
func (p *Player) Tick() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.armed {
		return false
	}
	if p.clock.Now().Sub(p.armedAt) < p.wait {
		return false
	}

	p.armed = false
	p.advance()
	return true
}

func (p *Player) start(src Source) {
	p.cur = cursor{src: src}
	p.armed = false
	p.advance()
}

func (p *Player) halt() {
	p.driver.NoTone()
	p.armed = false
	p.state = Idle
	p.pitch = 0
	p.silent = true
}

func (p *Player) advance() {
	freq := p.cur.next()

	if Classify(freq) == MarkRepeat {
		p.cur.rewind()
		freq = p.cur.next()
		if Classify(freq) == MarkRepeat {
			// loop-start marker in slot 0
			freq = p.cur.next()
		}
		debug.Log("tones", "repeat")
	}

	if Classify(freq) == MarkEnd {
		p.halt()
		debug.Log("tones", "end at index %d", p.cur.index)
		return
	}

	p.state = Playing

	pitch := Pitch(freq)
	p.silent = !audible(pitch, p.enabled)
	dur := p.cur.next()

	p.pitch = pitch
	if p.silent {
		p.driver.NoTone()
	} else {
		p.driver.Tone(pitch)
	}

	debug.Log("tones", "index=%d freq=%d delay=%d silent=%t", p.cur.index, pitch, dur, p.silent)

	p.armed = true
	p.armedAt = p.clock.Now()
	p.wait = time.Duration(dur) * DurationUnit
}
