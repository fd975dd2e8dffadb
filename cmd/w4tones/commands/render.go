package commands

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/christopher-kleine/w4tones/pkg/audio"
	"github.com/christopher-kleine/w4tones/pkg/encoders"
	"github.com/christopher-kleine/w4tones/pkg/tones"
	"github.com/urfave/cli/v2"
)

func Render() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "Renders a tone sequence into a WAV file",
		ArgsUsage: "<SEQUENCE>",
		Action:    render,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Write to `FILE`",
				Value:   "tones.wav",
			},
			&cli.DurationFlag{
				Name:  "max",
				Usage: "Stop looping sequences after this long",
				Value: time.Minute,
			},
		},
	}
}

func render(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	seq, err := readSequence(c)
	if err != nil {
		return err
	}

	synth := audio.NewSquare(cfg.Audio.SampleRate, cfg.Audio.Amplitude)
	clock := tones.NewManualClock()
	player := tones.New(func() bool { return !cfg.Muted }, synth,
		tones.WithClock(clock),
		tones.WithScanLimit(cfg.ScanLimit),
	)

	wav := encoders.NewWAV(cfg.Audio.SampleRate)
	if err := wav.Open(c.String("out")); err != nil {
		return err
	}

	if err := player.PlaySequenceMutable(seq); err != nil {
		wav.Close()
		return err
	}

	elapsed, err := audio.Render(player, clock, synth, cfg.TickPeriod(), c.Duration("max"), func(block []float32) error {
		wav.Encode(block)
		return nil
	})
	if errors.Is(err, audio.ErrTooLong) {
		log.Printf("sequence still playing after %v, cut off", elapsed)
		err = nil
	}
	if cerr := wav.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	fmt.Printf("wrote %s (%v)\n", c.String("out"), elapsed)
	return nil
}
