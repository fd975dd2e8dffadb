package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/christopher-kleine/w4tones/pkg/runtime"
	"github.com/christopher-kleine/w4tones/pkg/screen"
	"github.com/christopher-kleine/w4tones/pkg/tones"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/urfave/cli/v2"
)

func Run() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Starts a WASM cart that plays tones",
		ArgsUsage: "<CART>",
		Subcommands: []*cli.Command{
			{
				Name:      "native",
				Usage:     "Starts a cart in a window (M mute, S stop, F10 record)",
				Action:    runNative,
				ArgsUsage: "<CART>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "fps",
						Usage: "Show the current FPS",
						Value: false,
					},
				},
			},
			{
				Name:      "headless",
				Usage:     "Starts a cart without a window until interrupted",
				Action:    runHeadless,
				ArgsUsage: "<CART>",
			},
		},
	}
}

func loadRuntime(ctx context.Context, c *cli.Context) (*runtime.Runtime, *outputs, error) {
	cart := c.Args().First()
	if cart == "" {
		return nil, nil, errors.New("no file provided")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}

	code, err := os.ReadFile(cart)
	if err != nil {
		return nil, nil, err
	}

	out, err := openOutputs(cfg)
	if err != nil {
		return nil, nil, err
	}

	rt, err := runtime.NewRuntime(ctx, out.Driver(), cfg.TickPeriod(), tones.WithScanLimit(cfg.ScanLimit))
	if err != nil {
		out.Close()
		return nil, nil, err
	}
	rt.SetMuted(cfg.Muted)

	name := strings.TrimSuffix(filepath.Base(cart), filepath.Ext(cart))
	err = rt.LoadCart(code, name)
	if err != nil {
		rt.Close()
		out.Close()
		return nil, nil, err
	}

	return rt, out, nil
}

func runNative(c *cli.Context) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rt, out, err := loadRuntime(ctx, c)
	if err != nil {
		return err
	}
	defer out.Close()
	defer rt.Close()

	go rt.Scheduler().Run(ctx)

	s := screen.New(rt, out.synth, c.Bool("fps"))
	defer s.Close()

	ebiten.SetWindowSize(screen.WIDTH*5, screen.HEIGHT*5)
	ebiten.SetWindowTitle("w4tones - " + rt.CartName())
	err = ebiten.RunGame(s)

	return err
}

func runHeadless(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rt, out, err := loadRuntime(ctx, c)
	if err != nil {
		return err
	}
	defer out.Close()
	defer rt.Close()

	err = rt.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
