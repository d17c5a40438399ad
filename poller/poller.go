package poller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sonnes/chaukidar/core"
	"github.com/sonnes/chaukidar/reader"
	"github.com/sonnes/chaukidar/reader/remote"
)

// Default values for optional configuration fields.
const (
	DefaultInterval = 3 * time.Second
	DefaultTimeout  = 10 * time.Second
)

var (
	// ErrAlreadyStarted is returned by Start on a running poller.
	ErrAlreadyStarted = errors.New("poller already started")
	// ErrStopped is returned by Start on a poller that has been stopped.
	// A Poller serves exactly one view lifetime.
	ErrStopped = errors.New("poller stopped")
)

// Sink receives successfully fetched snapshots.
type Sink interface {
	Replace(s core.Snapshot) bool
}

// SinkFunc is a function adapter for Sink.
type SinkFunc func(core.Snapshot) bool

func (f SinkFunc) Replace(s core.Snapshot) bool {
	return f(s)
}

// Config holds poller configuration.
type Config struct {
	Interval     time.Duration // Poll period (default: 3s)
	Timeout      time.Duration // Per-fetch timeout (default: 10s)
	Overlap      Overlap       // Policy for ticks that overlap an outstanding fetch
	Immediate    bool          // Also poll once as soon as Start is called
	Transformers []core.Transformer
}

// DefaultConfig returns the reference behaviour: a 3s period, overlapping
// fetches allowed, first fetch one period after Start.
func DefaultConfig() Config {
	return Config{
		Interval: DefaultInterval,
		Timeout:  DefaultTimeout,
		Overlap:  OverlapAllow,
	}
}

type state int

const (
	stateIdle state = iota
	stateRunning
	stateStopped
)

// Poller periodically fetches the exchange list and delivers it to a Sink.
type Poller struct {
	cfg    Config
	reader reader.Reader
	sink   Sink
	logger *log.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// gate is held across sink.Replace. Stop takes it to clear live, so once
	// Stop has passed the gate no delivery can reach the sink.
	gate    sync.Mutex
	live    bool
	applied uint64 // generation of the most recently applied fetch

	// mu guards lifecycle state and counters. It is never held while calling
	// the sink, so subscribers may read Status.
	mu          sync.Mutex
	state       state
	issued      uint64 // generation of the most recently issued fetch
	outstanding int
	status      core.Status
}

// New creates a Poller. A nil logger uses log.Default().
func New(cfg Config, r reader.Reader, sink Sink, logger *log.Logger) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Poller{
		cfg:    cfg,
		reader: r,
		sink:   sink,
		logger: logger,
		status: core.Status{Interval: cfg.Interval},
	}
}

// Start begins the polling loop. The loop lives until Stop is called or
// ctx is cancelled.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	if err := p.beginLocked(ctx); err != nil {
		p.mu.Unlock()
		return err
	}
	// Registered under mu so a concurrent Stop waits for the loop.
	p.wg.Add(1)
	p.mu.Unlock()

	go p.run()

	p.logger.Info("poller started",
		"interval", p.cfg.Interval,
		"overlap", p.cfg.Overlap,
		"immediate", p.cfg.Immediate,
	)
	return nil
}

// begin moves the poller into the running state without starting the loop.
func (p *Poller) begin(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.beginLocked(ctx)
}

// beginLocked requires p.mu.
func (p *Poller) beginLocked(ctx context.Context) error {
	switch p.state {
	case stateRunning:
		return ErrAlreadyStarted
	case stateStopped:
		return ErrStopped
	}
	p.ctx, p.cancel = context.WithCancel(ctx)
	p.state = stateRunning

	p.gate.Lock()
	p.live = true
	p.gate.Unlock()
	return nil
}

// Stop shuts the poller down. The delivery gate is closed before Stop waits
// for anything: from then on no fetch is issued and no completion reaches
// the sink, even if ctx expires before the goroutines drain. Stop on an
// already stopped poller is a no-op; Stop on a poller that was never
// started only prevents a later Start. Stop must not be called from the
// sink.
func (p *Poller) Stop(ctx context.Context) error {
	p.mu.Lock()
	wasRunning := p.state == stateRunning
	p.state = stateStopped
	p.mu.Unlock()
	if !wasRunning {
		return nil
	}

	p.gate.Lock()
	p.live = false
	p.gate.Unlock()

	p.cancel()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("poller stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for in-flight fetches: %w", ctx.Err())
	}
}

// Status returns a copy of the poll counters.
func (p *Poller) Status() core.Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// run is the ticker loop.
func (p *Poller) run() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	if p.cfg.Immediate {
		p.tick()
	}

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.tick()
		}
	}
}

// tick issues one fetch, subject to the overlap policy. It returns as soon
// as the fetch goroutine is launched.
func (p *Poller) tick() {
	p.mu.Lock()
	if p.state != stateRunning {
		p.mu.Unlock()
		return
	}
	if p.cfg.Overlap == OverlapSkip && p.outstanding > 0 {
		p.mu.Unlock()
		p.logger.Debug("fetch outstanding, skipping tick")
		return
	}
	p.issued++
	gen := p.issued
	p.outstanding++
	p.status.Fetches++
	p.wg.Add(1)
	p.mu.Unlock()

	go p.fetch(gen)
}

// fetch performs one fetch and hands the outcome to deliver or fail.
func (p *Poller) fetch(gen uint64) {
	defer p.wg.Done()

	ctx, cancel := context.WithTimeout(p.ctx, p.cfg.Timeout)
	defer cancel()

	snap, err := p.reader.ReadExchanges(ctx)
	if err == nil {
		err = core.Chain(snap, p.cfg.Transformers...)
	}
	if err != nil {
		p.fail(gen, err)
		return
	}
	p.deliver(gen, snap)
}

// deliver applies a successful fetch unless the poller has stopped or the
// overlap policy marks it as superseded.
func (p *Poller) deliver(gen uint64, snap core.Snapshot) {
	p.mu.Lock()
	p.outstanding--
	p.mu.Unlock()

	p.gate.Lock()
	reason := ""
	switch {
	case !p.live:
		reason = "stopped"
	case p.cfg.Overlap == OverlapLatest && gen < p.applied:
		reason = "superseded"
	case !p.sink.Replace(snap):
		reason = "sink closed"
	default:
		p.applied = gen
	}
	p.gate.Unlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	if reason != "" {
		p.status.Discarded++
		p.logger.Debug("fetch discarded", "gen", gen, "reason", reason)
		return
	}
	p.status.Loaded = true
	p.status.UpdatedAt = time.Now()
	p.status.LastError = ""
}

// fail records a failed fetch. Failures once the poller is stopping
// (Stop called, or the Start context cancelled) are expected and are not
// reported as errors.
func (p *Poller) fail(gen uint64, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.outstanding--

	if p.state != stateRunning || p.ctx.Err() != nil {
		p.status.Discarded++
		p.logger.Debug("fetch failed during shutdown", "gen", gen, "err", err)
		return
	}

	p.status.Failures++
	p.status.LastError = err.Error()
	p.logger.Error("failed to fetch exchanges",
		"gen", gen,
		"kind", remote.Kind(err),
		"err", err,
	)
}
