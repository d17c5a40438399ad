package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

func main() {
	// A .env next to the binary may carry CK_BASE_URL.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn("could not load .env", "err", err)
	}

	root := &cli.Command{
		Name:  "ck",
		Usage: "Watch recorded prompt/answer exchanges as they arrive",
		Description: `
      _                _    _    _
  ___| |_  __ _ _  _| |__(_)__| |__ _ _ _
 / _| ' \/ _' | || | / /| / _' / _' | '_|
 \__|_||_\__,_|\_,_|_\_\|_\__,_\__,_|_|

 The watchman of exchanges. Polls the exchange service and keeps the latest list on screen.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log",
				Usage: "Log level: debug, info, warn, error",
				Value: "error",
			},
			baseURLFlag(),
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level, err := log.ParseLevel(cmd.String("log"))
			if err != nil {
				return ctx, err
			}
			log.SetLevel(level)
			return ctx, nil
		},
		Commands: []*cli.Command{
			watchCmd(),
			serveCmd(),
			fetchCmd(),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.Run(ctx, os.Args); err != nil {
		stop()
		log.Fatal(err)
	}
}
