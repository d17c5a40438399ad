package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sonnes/chaukidar/core"
	"github.com/sonnes/chaukidar/reader/remote"
	"github.com/urfave/cli/v3"
)

func fetchCmd() *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "Fetch the exchange list once and print it",
		Flags: append(sourceFlags(),
			&cli.StringFlag{
				Name:  "o",
				Usage: "Output format: terminal, json, html",
				Value: "terminal",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a := newApp()

			rnd, err := a.renderer(cmd.String("o"))
			if err != nil {
				return err
			}
			ts, err := transformers(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
			defer cancel()

			s, err := newReader(cmd).ReadExchanges(ctx)
			if err != nil {
				log.Debug("fetch failed", "kind", remote.Kind(err))
				return fmt.Errorf("fetch exchanges: %w", err)
			}
			if err := core.Chain(s, ts...); err != nil {
				return fmt.Errorf("transform: %w", err)
			}

			st := core.Status{Loaded: true, UpdatedAt: time.Now(), Fetches: 1}
			if err := rnd.Render(os.Stdout, s, st); err != nil {
				return fmt.Errorf("render: %w", err)
			}
			return nil
		},
	}
}
