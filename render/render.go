// Package render defines the interface for presenting a snapshot of
// exchanges in various output formats.
package render

import (
	"io"

	"github.com/sonnes/chaukidar/core"
)

// Placeholder is shown instead of an empty list, both before the first
// successful fetch and after a fetch that returned no exchanges.
const Placeholder = "No exchanges yet..."

// Title heads every rendered view.
const Title = "Prompt-Answer Monitor"

// Renderer writes a snapshot to w. Exchanges appear in snapshot order.
// st carries poll status for renderers that show it; the zero value is
// valid.
type Renderer interface {
	Render(w io.Writer, s core.Snapshot, st core.Status) error
}
