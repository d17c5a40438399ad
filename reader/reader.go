// Package reader defines the interface for retrieving the current list of
// exchanges from a source.
package reader

import (
	"context"

	"github.com/sonnes/chaukidar/core"
)

// Reader retrieves the full, ordered exchange list from a source. Each call
// is one fetch; implementations must not cache between calls.
type Reader interface {
	ReadExchanges(ctx context.Context) (core.Snapshot, error)
}

// Func adapts a plain function to Reader.
type Func func(ctx context.Context) (core.Snapshot, error)

// ReadExchanges calls f(ctx).
func (f Func) ReadExchanges(ctx context.Context) (core.Snapshot, error) {
	return f(ctx)
}
