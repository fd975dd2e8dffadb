package commands

import (
	"github.com/christopher-kleine/w4tones/pkg/config"
	"github.com/christopher-kleine/w4tones/pkg/debug"
	"github.com/urfave/cli/v2"
)

func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "Read settings from `FILE` instead of ~/.config/w4tones/config.json",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Trace every step to ~/.config/w4tones/debug.log",
		},
		&cli.IntFlag{
			Name:  "tick",
			Usage: "Scheduler period in milliseconds",
		},
		&cli.BoolFlag{
			Name:  "mute",
			Usage: "Start with sound output disabled",
		},
		&cli.BoolFlag{
			Name:  "no-audio",
			Usage: "Do not open the sound card",
		},
		&cli.StringFlag{
			Name:  "midi",
			Usage: "Mirror the tone channel on MIDI output `PORT`",
		},
		&cli.IntFlag{
			Name:  "midi-channel",
			Usage: "MIDI channel (1-16)",
			Value: 1,
		},
	}
}

func Before(c *cli.Context) error {
	if c.Bool("debug") {
		return debug.Enable()
	}
	return nil
}

func After(c *cli.Context) error {
	debug.Disable()
	return nil
}

// loadConfig reads the config file and applies the global flags on top.
func loadConfig(c *cli.Context) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)

	if path := c.String("config"); path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if c.IsSet("tick") && c.Int("tick") > 0 {
		cfg.TickMillis = c.Int("tick")
	}
	if c.Bool("mute") {
		cfg.Muted = true
	}
	if c.Bool("no-audio") {
		cfg.Audio.Disabled = true
	}
	if c.IsSet("midi") {
		cfg.MIDI.PortName = c.String("midi")
	}
	if c.IsSet("midi-channel") {
		cfg.MIDI.Channel = uint8(c.Int("midi-channel") - 1)
	}

	return cfg, nil
}
