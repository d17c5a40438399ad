package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/term"
	"github.com/sonnes/chaukidar/render/terminal"
	"github.com/sonnes/chaukidar/view"
	"github.com/urfave/cli/v3"
)

func watchCmd() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Show the exchange list in the terminal, refreshing on every poll",
		Flags: append(pollFlags(),
			&cli.IntFlag{
				Name:  "width",
				Usage: "Render width (default: terminal width)",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := pollerConfig(cmd)
			if err != nil {
				return err
			}

			rnd := terminal.New()
			rnd.Width = int(cmd.Int("width"))

			l := view.New(cfg, newReader(cmd),
				view.WithRenderer(rnd, os.Stdout),
				view.WithClearScreen(term.IsTerminal(os.Stdout.Fd())),
				view.WithLogger(log.Default()),
			)
			return l.Run(ctx)
		},
	}
}
