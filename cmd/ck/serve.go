package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sonnes/chaukidar/poller"
	"github.com/sonnes/chaukidar/server"
	"github.com/sonnes/chaukidar/view"
	"github.com/urfave/cli/v3"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the live exchange list as a local web page",
		Flags: append(pollFlags(),
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to listen on",
				Value: 8080,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := pollerConfig(cmd)
			if err != nil {
				return err
			}

			l := view.New(cfg, newReader(cmd), view.WithLogger(log.Default()))
			if err := l.Mount(ctx); err != nil {
				return err
			}
			defer unmount(ctx, l, poller.DefaultTimeout, log.Default())

			srv := &server.Server{
				Store:   l.Store(),
				Status:  l.Status,
				Refresh: refreshPeriod(cfg.Interval),
				Logger:  log.Default(),
			}
			return srv.Run(ctx, fmt.Sprintf(":%d", cmd.Int("port")))
		},
	}
}

// unmount stops l, waiting at most timeout for in-flight fetches. The wait
// does not inherit ctx's cancellation, since teardown usually starts after
// ctx is done.
func unmount(ctx context.Context, l *view.Live, timeout time.Duration, logger *log.Logger) {
	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()
	if err := l.Unmount(stopCtx); err != nil {
		logger.Warn("live view did not stop cleanly", "err", err)
	}
}

// refreshPeriod is how often the browser reloads the page. Browsers only
// honour whole seconds.
func refreshPeriod(interval time.Duration) time.Duration {
	return max(interval, time.Second)
}
