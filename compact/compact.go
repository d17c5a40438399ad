// Package compact provides a Transformer that folds long answers so more
// exchanges fit on screen.
package compact

import (
	"fmt"
	"strings"

	"github.com/sonnes/chaukidar/core"
)

// DefaultMaxLines is used when Config.MaxLines is not positive.
const DefaultMaxLines = 6

// Config controls the compact transformer behavior.
type Config struct {
	MaxLines      int  // answer lines kept before folding
	CollapseBlank bool // drop blank lines before counting
}

// Compactor shortens answers to their first lines plus a fold marker.
type Compactor struct {
	maxLines      int
	collapseBlank bool
}

// New creates a Compactor from the given config.
func New(cfg Config) *Compactor {
	n := cfg.MaxLines
	if n <= 0 {
		n = DefaultMaxLines
	}
	return &Compactor{maxLines: n, collapseBlank: cfg.CollapseBlank}
}

// Transform implements core.Transformer.
func (c *Compactor) Transform(s core.Snapshot) error {
	for i := range s {
		s[i].Answer = c.fold(s[i].Answer)
	}
	return nil
}

// fold returns answer untouched unless it has more than maxLines lines.
func (c *Compactor) fold(answer string) string {
	lines := strings.Split(strings.TrimRight(answer, "\n"), "\n")
	if c.collapseBlank {
		kept := lines[:0]
		for _, l := range lines {
			if strings.TrimSpace(l) != "" {
				kept = append(kept, l)
			}
		}
		lines = kept
	}
	if len(lines) <= c.maxLines {
		return answer
	}
	hidden := len(lines) - c.maxLines
	return strings.Join(lines[:c.maxLines], "\n") + "\n" + foldMarker(hidden)
}

// foldMarker returns "[+1 more line]" or "[+N more lines]".
func foldMarker(n int) string {
	if n == 1 {
		return "[+1 more line]"
	}
	return fmt.Sprintf("[+%d more lines]", n)
}
