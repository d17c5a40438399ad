package main

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sonnes/chaukidar/core"
	"github.com/sonnes/chaukidar/poller"
	"github.com/sonnes/chaukidar/reader"
	"github.com/sonnes/chaukidar/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestUnmountWarnsWhenFetchesDrainSlowly(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	r := reader.Func(func(context.Context) (core.Snapshot, error) {
		once.Do(func() { close(started) })
		<-release // a server that answers after teardown
		return core.Snapshot{}, nil
	})
	defer close(release)

	logs := &lockedBuffer{}
	logger := log.New(logs)
	cfg := poller.DefaultConfig()
	cfg.Immediate = true
	l := view.New(cfg, r, view.WithLogger(logger))

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, l.Mount(ctx))
	<-started
	cancel()

	unmount(ctx, l, 20*time.Millisecond, logger)

	assert.Contains(t, logs.String(), "live view did not stop cleanly")
	assert.True(t, l.Store().Closed())
}

func TestUnmountQuietOnCleanStop(t *testing.T) {
	r := reader.Func(func(context.Context) (core.Snapshot, error) { return core.Snapshot{}, nil })
	logs := &lockedBuffer{}
	logger := log.New(logs)
	l := view.New(poller.DefaultConfig(), r, view.WithLogger(logger))

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, l.Mount(ctx))
	cancel()

	unmount(ctx, l, time.Second, logger)

	assert.NotContains(t, logs.String(), "did not stop cleanly")
	assert.True(t, l.Store().Closed())
}
