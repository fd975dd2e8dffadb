package commands

import (
	"fmt"
	"os"

	"github.com/christopher-kleine/w4tones/pkg/config"
	"github.com/urfave/cli/v2"
)

func Init() *cli.Command {
	return &cli.Command{
		Name:   "init",
		Usage:  "Writes a default config to ~/.config/w4tones/config.json",
		Action: initCmd,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing config",
			},
		},
	}
}

func initCmd(c *cli.Context) error {
	path := c.String("config")
	if path == "" {
		var err error
		path, err = config.ConfigPath()
		if err != nil {
			return err
		}
	}

	if _, err := os.Stat(path); err == nil && !c.Bool("force") {
		return fmt.Errorf("%s already exists", path)
	}

	if err := config.DefaultConfig().SaveFile(path); err != nil {
		return err
	}

	fmt.Println("wrote", path)
	return nil
}
