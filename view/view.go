// Package view hosts a live-updating presentation of the exchange list.
//
// A Live view owns one Store and one Poller for exactly one active
// lifetime: Mount starts polling and draws the initial placeholder, every
// successful fetch redraws, and Unmount stops polling and discards the
// snapshot. Nothing is fetched before Mount or drawn after Unmount.
package view

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
	"github.com/sonnes/chaukidar/core"
	"github.com/sonnes/chaukidar/poller"
	"github.com/sonnes/chaukidar/reader"
	"github.com/sonnes/chaukidar/render"
	"github.com/sonnes/chaukidar/store"
)

// Option configures a Live view.
type Option func(*Live)

// WithRenderer draws the view with r onto w on mount and after every
// applied snapshot. Without a renderer the view only maintains its Store.
func WithRenderer(r render.Renderer, w io.Writer) Option {
	return func(l *Live) {
		l.renderer = r
		l.out = w
	}
}

// WithClearScreen prefixes each draw with an erase-screen sequence so the
// terminal shows only the latest frame.
func WithClearScreen(clear bool) Option {
	return func(l *Live) { l.clear = clear }
}

// WithLogger sets the logger used by the view and its poller.
func WithLogger(logger *log.Logger) Option {
	return func(l *Live) { l.logger = logger }
}

// Live is a mounted-or-not live view over the remote exchange list.
type Live struct {
	store  *store.Store
	poller *poller.Poller

	renderer render.Renderer
	out      io.Writer
	clear    bool
	logger   *log.Logger

	drawMu     sync.Mutex
	unmount    sync.Once
	unmountErr error
}

// New builds a Live view that will poll r with cfg once mounted.
func New(cfg poller.Config, r reader.Reader, opts ...Option) *Live {
	l := &Live{store: store.New()}
	for _, o := range opts {
		o(l)
	}
	if l.logger == nil {
		l.logger = log.Default()
	}
	l.poller = poller.New(cfg, r, l.store, l.logger)
	l.store.Subscribe(l.redraw)
	return l
}

// Store returns the view's snapshot store.
func (l *Live) Store() *store.Store { return l.store }

// Status merges the store's load state with the poller's counters.
func (l *Live) Status() core.Status {
	st := l.poller.Status()
	st.Loaded = l.store.Loaded()
	if t := l.store.UpdatedAt(); !t.IsZero() {
		st.UpdatedAt = t
	}
	return st
}

// Mount draws the initial (empty) view and starts polling. The first fetch
// happens one interval later unless the poller is configured Immediate.
// A Live view can be mounted once.
func (l *Live) Mount(ctx context.Context) error {
	if l.store.Closed() {
		return poller.ErrStopped
	}
	if err := l.draw(l.store.Snapshot(), l.Status()); err != nil {
		return fmt.Errorf("initial draw: %w", err)
	}
	if err := l.poller.Start(ctx); err != nil {
		return fmt.Errorf("start poller: %w", err)
	}
	return nil
}

// Unmount stops polling and closes the store. Only the first call does
// any work; later calls return the first call's result. It is safe to
// call without a prior Mount.
func (l *Live) Unmount(ctx context.Context) error {
	l.unmount.Do(func() {
		l.unmountErr = l.poller.Stop(ctx)
		l.store.Close()
		if l.unmountErr != nil {
			l.logger.Warn("view unmounted with fetches still draining", "err", l.unmountErr)
		}
	})
	return l.unmountErr
}

// Run mounts the view, blocks until ctx is done, then unmounts it with a
// fresh context bounded by the poller's fetch timeout.
func (l *Live) Run(ctx context.Context) error {
	if err := l.Mount(ctx); err != nil {
		return err
	}
	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), poller.DefaultTimeout)
	defer cancel()
	return l.Unmount(stopCtx)
}

// redraw is the store subscriber. It runs right after a successful fetch
// was applied, before the poller has folded it into its own counters.
func (l *Live) redraw(s core.Snapshot) {
	st := l.Status()
	st.LastError = ""
	if err := l.draw(s, st); err != nil {
		l.logger.Error("failed to render exchanges", "err", err)
	}
}

func (l *Live) draw(s core.Snapshot, st core.Status) error {
	if l.renderer == nil {
		return nil
	}
	l.drawMu.Lock()
	defer l.drawMu.Unlock()

	if l.clear {
		if _, err := io.WriteString(l.out, ansi.EraseEntireScreen+ansi.CursorHomePosition); err != nil {
			return err
		}
	}
	return l.renderer.Render(l.out, s, st)
}
