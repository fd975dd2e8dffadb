package commands

import (
	"github.com/christopher-kleine/w4tones/pkg/audio"
	"github.com/christopher-kleine/w4tones/pkg/config"
	"github.com/christopher-kleine/w4tones/pkg/midiout"
	"github.com/christopher-kleine/w4tones/pkg/tones"
	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// outputs is everything a live player drives.
type outputs struct {
	synth  *audio.Square
	device *audio.Output
	midi   *midiout.Driver
}

func openOutputs(cfg *config.Config) (*outputs, error) {
	o := &outputs{
		synth: audio.NewSquare(cfg.Audio.SampleRate, cfg.Audio.Amplitude),
	}

	if !cfg.Audio.Disabled {
		device, err := audio.NewOutput(cfg.Audio.SampleRate)
		if err != nil {
			return nil, err
		}
		device.Start(o.synth)
		o.device = device
	}

	if cfg.MIDI.PortName != "" {
		m, err := midiout.Open(cfg.MIDI.PortName, cfg.MIDI.Channel, cfg.MIDI.Velocity)
		if err != nil {
			o.Close()
			return nil, err
		}
		o.midi = m
	}

	return o, nil
}

func (o *outputs) Driver() tones.Driver {
	if o.midi == nil {
		return o.synth
	}
	return tones.Multi(o.synth, o.midi)
}

func (o *outputs) Close() {
	if o.midi != nil {
		o.midi.NoTone()
		gomidi.CloseDriver()
	}
	if o.device != nil {
		o.device.Close()
	}
}
