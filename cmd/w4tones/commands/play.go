package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/christopher-kleine/w4tones/pkg/tones"
	"github.com/urfave/cli/v2"
)

func Play() *cli.Command {
	return &cli.Command{
		Name:      "play",
		Usage:     "Plays a tone sequence, e.g. `play A4 200 REST 100 E5! 300`",
		ArgsUsage: "<SEQUENCE>",
		Action:    play,
	}
}

func readSequence(c *cli.Context) ([]uint16, error) {
	if !c.Args().Present() {
		return nil, errors.New("no sequence provided")
	}

	seq, err := tones.ParseSequence(strings.Join(c.Args().Slice(), " "))
	if err != nil {
		return nil, err
	}

	return tones.Terminate(seq), nil
}

func play(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	seq, err := readSequence(c)
	if err != nil {
		return err
	}

	out, err := openOutputs(cfg)
	if err != nil {
		return err
	}
	defer out.Close()

	player := tones.New(func() bool { return !cfg.Muted }, out.Driver(), tones.WithScanLimit(cfg.ScanLimit))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go tones.NewScheduler(player, cfg.TickPeriod()).Run(ctx)

	if err := player.PlaySequenceMutable(seq); err != nil {
		return err
	}

	ticker := time.NewTicker(cfg.TickPeriod())
	defer ticker.Stop()

	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Stop()
			return nil
		case <-ticker.C:
		}
	}

	return nil
}
