// Package terminal renders snapshots as ANSI-colored exchange cards.
package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/term"
	"github.com/dustin/go-humanize"
	"github.com/sonnes/chaukidar/core"
	"github.com/sonnes/chaukidar/render"
)

const (
	defaultWidth = 100
	minWidth     = 40
	indent       = "    "
)

// Renderer pretty-prints a snapshot as exchange cards.
type Renderer struct {
	// Width overrides terminal width detection. Zero means auto-detect.
	Width int
}

// New creates a terminal Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render writes the header, then one card per exchange in snapshot order,
// or the placeholder when s is empty.
func (r *Renderer) Render(w io.Writer, s core.Snapshot, st core.Status) error {
	width := r.termWidth()

	writeHeader(w, s, st)

	if len(s) == 0 {
		writeSeparator(w, width)
		fmt.Fprintln(w)
		fmt.Fprintln(w, " "+stylePlaceholder.Render(render.Placeholder))
		fmt.Fprintln(w)
		return nil
	}

	for _, ex := range s {
		writeExchange(w, ex, width)
	}
	fmt.Fprintln(w)
	return nil
}

func (r *Renderer) termWidth() int {
	if r.Width > 0 {
		return r.Width
	}
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}

// writeHeader renders the title, poll status and, when the last poll
// failed, an error line. The snapshot itself stays on screen below it.
func writeHeader(w io.Writer, s core.Snapshot, st core.Status) {
	fmt.Fprintln(w, styleTitle.Render(render.Title))

	var parts []string
	if st.Loaded {
		parts = append(parts, countLabel(len(s)))
	}
	if !st.UpdatedAt.IsZero() {
		parts = append(parts, "updated "+core.RelativeTime(st.UpdatedAt))
	}
	if st.Interval > 0 {
		parts = append(parts, "every "+formatInterval(st.Interval))
	}
	if st.Failures > 0 {
		parts = append(parts, humanize.Comma(int64(st.Failures))+" failed")
	}
	if len(parts) > 0 {
		fmt.Fprintln(w, styleMeta.Render(strings.Join(parts, "  ·  ")))
	}

	if st.LastError != "" {
		fmt.Fprintln(w, styleError.Render("! last poll failed: "+st.LastError))
	}
}

func countLabel(n int) string {
	if n == 1 {
		return "1 exchange"
	}
	return humanize.Comma(int64(n)) + " exchanges"
}

// writeSeparator renders a horizontal rule.
func writeSeparator(w io.Writer, width int) {
	n := min(width, 72)
	fmt.Fprintln(w)
	fmt.Fprintln(w, styleSeparator.Render(strings.Repeat("─", n)))
}

// writeExchange renders one card: timestamp line, then prompt and answer
// blocks wrapped to the content width.
func writeExchange(w io.Writer, ex core.Exchange, width int) {
	contentWidth := max(width-len(indent), minWidth)

	writeSeparator(w, width)
	fmt.Fprintln(w)

	stamp := styleTimestamp.Render(ex.Timestamp)
	if t, ok := ex.Time(); ok {
		stamp += "    " + styleMeta.Render(core.RelativeTime(t))
	}
	fmt.Fprintln(w, " "+stamp)

	fmt.Fprintln(w, "  "+stylePromptLabel.Render("PROMPT"))
	writeBlock(w, core.CleanPromptText(ex.Prompt), contentWidth)

	fmt.Fprintln(w, "  "+styleAnswerLabel.Render("ANSWER"))
	writeBlock(w, strings.TrimSpace(ex.Answer), contentWidth)
}

func writeBlock(w io.Writer, text string, width int) {
	if text == "" {
		fmt.Fprintln(w, indent+stylePlaceholder.Render("(empty)"))
		return
	}
	for _, line := range strings.Split(ansi.Wordwrap(text, width, ""), "\n") {
		fmt.Fprintln(w, indent+line)
	}
}

// formatInterval prints whole-second periods without a fractional part.
func formatInterval(d time.Duration) string {
	if d >= time.Second && d%time.Second == 0 {
		return fmt.Sprintf("%ds", int(d/time.Second))
	}
	return d.String()
}
