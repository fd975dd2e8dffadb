package main

import (
	"log"
	"os"

	"github.com/christopher-kleine/w4tones/cmd/w4tones/commands"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:                 "w4tones",
		Usage:                "Plays tone sequences the way the handheld does",
		Version:              "0.1.0",
		EnableBashCompletion: true,
		Authors: []*cli.Author{
			{
				Name:  "Christopher Kleine",
				Email: "chris@suletuxe.de",
			},
		},
		Copyright: "(c) 2022 by Christopher Kleine",
		Flags:     commands.GlobalFlags(),
		Before:    commands.Before,
		After:     commands.After,
		Commands: []*cli.Command{
			commands.Init(),
			commands.Play(),
			commands.Render(),
			commands.Run(),
			commands.Notes(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
