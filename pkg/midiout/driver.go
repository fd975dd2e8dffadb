package midiout

import (
	"fmt"
	"math"
	"sync"

	"github.com/christopher-kleine/w4tones/pkg/debug"
	"github.com/christopher-kleine/w4tones/pkg/tools"
	gomidi "gitlab.com/gomidi/midi/v2"
)

// Driver mirrors the tone channel on a MIDI output. At most one key is held
// down at a time.
type Driver struct {
	send     func(gomidi.Message) error
	channel  uint8
	velocity uint8

	mu      sync.Mutex
	current int // held key, -1 for none
}

// Open finds an output port by name and connects to it. A MIDI driver has to
// be registered by the program, e.g. rtmididrv.
func Open(portName string, channel, velocity uint8) (*Driver, error) {
	out, err := gomidi.FindOutPort(portName)
	if err != nil {
		return nil, fmt.Errorf("midi port %q: %w", portName, err)
	}

	send, err := gomidi.SendTo(out)
	if err != nil {
		return nil, fmt.Errorf("midi port %q: %w", portName, err)
	}

	return New(send, channel, velocity), nil
}

// New wraps a send function. channel is 0-based.
func New(send func(gomidi.Message) error, channel, velocity uint8) *Driver {
	return &Driver{
		send:     send,
		channel:  tools.Min(channel, 15),
		velocity: tools.Clamp(velocity, 1, 127),
		current:  -1,
	}
}

// KeyForFrequency returns the nearest MIDI key, A4 = 69.
func KeyForFrequency(freq uint16) uint8 {
	if freq == 0 {
		return 0
	}
	key := math.Round(69 + 12*math.Log2(float64(freq)/440))
	return uint8(tools.Clamp(key, 0, 127))
}

// Tone implements tones.Driver.
func (d *Driver) Tone(freq uint16) {
	d.mu.Lock()
	defer d.mu.Unlock()

	key := int(KeyForFrequency(freq))
	if key == d.current {
		return
	}

	d.release()
	d.emit(gomidi.NoteOn(d.channel, uint8(key), d.velocity))
	d.current = key
}

// NoTone implements tones.Driver.
func (d *Driver) NoTone() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.release()
}

func (d *Driver) release() {
	if d.current < 0 {
		return
	}
	d.emit(gomidi.NoteOff(d.channel, uint8(d.current)))
	d.current = -1
}

func (d *Driver) emit(msg gomidi.Message) {
	if err := d.send(msg); err != nil {
		debug.Log("midi", "send %s: %v", msg, err)
	}
}
