// Package file reads exchanges from a local JSON file in the same shape the
// exchange-listing endpoint returns. It is used to replay captured
// responses without a running service.
package file

import (
	"context"
	"fmt"
	"os"

	"github.com/sonnes/chaukidar/core"
	"github.com/sonnes/chaukidar/reader/remote"
)

// Reader re-reads Path on every call, so edits to the file show up on the
// next poll.
type Reader struct {
	Path string
}

// ReadExchanges reads and validates the file.
func (r *Reader) ReadExchanges(ctx context.Context) (core.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(r.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.Path, err)
	}
	snap, err := remote.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.Path, err)
	}
	return snap, nil
}
