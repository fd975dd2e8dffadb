package commands

import (
	"fmt"

	"github.com/christopher-kleine/w4tones/pkg/tones"
	"github.com/urfave/cli/v2"
)

func Notes() *cli.Command {
	return &cli.Command{
		Name:   "notes",
		Usage:  "Prints the pitch table used for note names",
		Action: notes,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "octave",
				Usage: "Only print one octave",
				Value: -1,
			},
		},
	}
}

func notes(c *cli.Context) error {
	only := c.Int("octave")

	for octave := 0; octave <= 9; octave++ {
		if only >= 0 && octave != only {
			continue
		}
		for semitone := 0; semitone < 12; semitone++ {
			freq, _ := tones.NoteFrequency(octave, semitone)
			fmt.Printf("%-4s %5d\n", tones.NoteName(octave, semitone), freq)
		}
	}

	return nil
}
