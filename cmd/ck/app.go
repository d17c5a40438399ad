package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/sonnes/chaukidar/compact"
	"github.com/sonnes/chaukidar/core"
	"github.com/sonnes/chaukidar/poller"
	"github.com/sonnes/chaukidar/reader"
	"github.com/sonnes/chaukidar/reader/file"
	"github.com/sonnes/chaukidar/reader/remote"
	"github.com/sonnes/chaukidar/redact"
	"github.com/sonnes/chaukidar/render"
	htmlrender "github.com/sonnes/chaukidar/render/html"
	jsonrender "github.com/sonnes/chaukidar/render/json"
	"github.com/sonnes/chaukidar/render/terminal"
	"github.com/urfave/cli/v3"
)

// DefaultBaseURL is the exchange service polled when neither --base-url
// nor CK_BASE_URL is set.
const DefaultBaseURL = "http://prompt-answers.my-demo.com"

// app holds the renderer registry used by CLI commands.
type app struct {
	renderers map[string]func() render.Renderer
}

func newApp() *app {
	return &app{
		renderers: map[string]func() render.Renderer{
			"terminal": func() render.Renderer { return terminal.New() },
			"html":     func() render.Renderer { return htmlrender.New() },
			"json":     func() render.Renderer { return &jsonrender.Renderer{Indent: true} },
		},
	}
}

func (a *app) renderer(name string) (render.Renderer, error) {
	fn, ok := a.renderers[name]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q", name)
	}
	return fn(), nil
}

func baseURLFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "base-url",
		Usage:   "Root URL of the exchange service",
		Value:   DefaultBaseURL,
		Sources: cli.EnvVars("CK_BASE_URL"),
	}
}

// sourceFlags select where exchanges come from and how they are cleaned up.
func sourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Per-fetch timeout",
			Value: poller.DefaultTimeout,
		},
		&cli.StringFlag{
			Name:  "file",
			Usage: "Replay exchanges from a local JSON file instead of the service",
		},
		&cli.StringSliceFlag{
			Name:  "redact",
			Usage: "Mask matches of these rule sets before display (off by default). Example: --redact=secrets,pii",
		},
		&cli.IntFlag{
			Name:  "compact",
			Usage: "Fold answers longer than N lines (0 disables)",
		},
		&cli.BoolFlag{
			Name:  "compact-blank",
			Usage: "With --compact, drop blank lines before counting",
		},
	}
}

// pollFlags are shared by the live commands.
func pollFlags() []cli.Flag {
	return append([]cli.Flag{
		&cli.DurationFlag{
			Name:  "interval",
			Usage: "Poll period",
			Value: poller.DefaultInterval,
		},
		&cli.StringFlag{
			Name:  "overlap",
			Usage: "What to do with a tick while a fetch is outstanding: allow, latest, skip",
			Value: poller.OverlapAllow.String(),
		},
		&cli.BoolFlag{
			Name:  "immediate",
			Usage: "Fetch once right away instead of waiting one interval",
		},
	}, sourceFlags()...)
}

// newReader returns a file replay reader when --file is set, otherwise a
// client for the remote service.
func newReader(cmd *cli.Command) reader.Reader {
	if path := cmd.String("file"); path != "" {
		return &file.Reader{Path: path}
	}
	return remote.NewClient(cmd.String("base-url"),
		remote.WithTimeout(cmd.Duration("timeout")),
		remote.WithLogger(log.Default()),
	)
}

// newRedactor builds a Redactor from --redact. Exchanges are shown as
// fetched unless at least one rule set is named, so it returns nil by
// default.
func newRedactor(cmd *cli.Command) (*redact.Redactor, error) {
	rules := cmd.StringSlice("redact")
	if len(rules) == 0 {
		return nil, nil
	}

	cfg := redact.Config{}
	for _, r := range rules {
		switch strings.TrimSpace(r) {
		case "secrets":
			cfg.Secrets = true
		case "pii":
			cfg.PII = true
		default:
			return nil, fmt.Errorf("unknown redaction rule %q", r)
		}
	}

	return redact.New(cfg), nil
}

// transformers returns the per-fetch rewrite chain: redaction first, then
// compaction.
func transformers(cmd *cli.Command) ([]core.Transformer, error) {
	var ts []core.Transformer

	redactor, err := newRedactor(cmd)
	if err != nil {
		return nil, err
	}
	if redactor != nil {
		ts = append(ts, redactor)
	}

	n := int(cmd.Int("compact"))
	if n < 0 {
		return nil, fmt.Errorf("--compact must not be negative, got %d", n)
	}
	if n > 0 {
		ts = append(ts, compact.New(compact.Config{
			MaxLines:      n,
			CollapseBlank: cmd.Bool("compact-blank"),
		}))
	} else if cmd.Bool("compact-blank") {
		return nil, fmt.Errorf("--compact-blank requires --compact")
	}
	return ts, nil
}

// pollerConfig builds the poller configuration from pollFlags.
func pollerConfig(cmd *cli.Command) (poller.Config, error) {
	cfg := poller.DefaultConfig()

	cfg.Interval = cmd.Duration("interval")
	if cfg.Interval <= 0 {
		return cfg, fmt.Errorf("--interval must be positive, got %s", cfg.Interval)
	}
	cfg.Timeout = cmd.Duration("timeout")
	if cfg.Timeout <= 0 {
		return cfg, fmt.Errorf("--timeout must be positive, got %s", cfg.Timeout)
	}

	overlap, err := poller.ParseOverlap(cmd.String("overlap"))
	if err != nil {
		return cfg, err
	}
	cfg.Overlap = overlap
	cfg.Immediate = cmd.Bool("immediate")

	cfg.Transformers, err = transformers(cmd)
	if err != nil {
		return cfg, err
	}
	return cfg, nil
}
