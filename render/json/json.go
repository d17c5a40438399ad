// Package json renders snapshots as a JSON array in the same shape the
// exchange service serves.
package json

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/sonnes/chaukidar/core"
)

var api = jsoniter.ConfigCompatibleWithStandardLibrary

// Renderer renders a snapshot to JSON.
type Renderer struct {
	// Indent controls pretty-printing. When true, output is indented.
	Indent bool
}

// Render writes s as a JSON array followed by a newline. Poll status is not
// part of the wire shape and is ignored. An empty snapshot encodes as [].
func (r *Renderer) Render(w io.Writer, s core.Snapshot, _ core.Status) error {
	if s == nil {
		s = core.Snapshot{}
	}

	var (
		data []byte
		err  error
	)
	if r.Indent {
		data, err = api.MarshalIndent(s, "", "  ")
	} else {
		data, err = api.Marshal(s)
	}
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
