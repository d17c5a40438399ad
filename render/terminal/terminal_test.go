package terminal

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/sonnes/chaukidar/core"
	"github.com/sonnes/chaukidar/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderString(t *testing.T, r *Renderer, s core.Snapshot, st core.Status) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, s, st))
	return ansi.Strip(buf.String())
}

func TestRenderSingleExchange(t *testing.T) {
	s := core.Snapshot{{Prompt: "p1", Answer: "a1", Timestamp: "t1"}}
	out := renderString(t, &Renderer{Width: 80}, s, core.Status{Loaded: true})

	assert.Contains(t, out, render.Title)
	assert.Contains(t, out, "1 exchange")
	assert.Contains(t, out, "t1")
	assert.Contains(t, out, "PROMPT")
	assert.Contains(t, out, "p1")
	assert.Contains(t, out, "ANSWER")
	assert.Contains(t, out, "a1")
	assert.Equal(t, 1, strings.Count(out, "PROMPT"))
	assert.NotContains(t, out, render.Placeholder)
}

func TestRenderKeepsSnapshotOrder(t *testing.T) {
	s := core.Snapshot{
		{Prompt: "third question", Answer: "third answer", Timestamp: "2026-01-03"},
		{Prompt: "first question", Answer: "first answer", Timestamp: "2026-01-01"},
		{Prompt: "second question", Answer: "second answer", Timestamp: "2026-01-02"},
	}
	out := renderString(t, &Renderer{Width: 80}, s, core.Status{Loaded: true})

	i3 := strings.Index(out, "third question")
	i1 := strings.Index(out, "first question")
	i2 := strings.Index(out, "second question")
	require.True(t, i3 >= 0 && i1 >= 0 && i2 >= 0)
	assert.Less(t, i3, i1)
	assert.Less(t, i1, i2)
	assert.Contains(t, out, "3 exchanges")
}

func TestRenderPlaceholder(t *testing.T) {
	tests := []struct {
		name string
		st   core.Status
	}{
		{"never loaded", core.Status{}},
		{"loaded empty", core.Status{Loaded: true, UpdatedAt: time.Now()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := renderString(t, &Renderer{Width: 80}, core.Snapshot{}, tt.st)
			assert.Contains(t, out, render.Placeholder)
			assert.NotContains(t, out, "PROMPT")
		})
	}
}

func TestRenderPlaceholderNilSnapshot(t *testing.T) {
	out := renderString(t, &Renderer{Width: 80}, nil, core.Status{})
	assert.Contains(t, out, render.Placeholder)
}

func TestRenderStatus(t *testing.T) {
	st := core.Status{
		Loaded:    true,
		UpdatedAt: time.Now(),
		Interval:  3 * time.Second,
		Failures:  1234,
		LastError: "unexpected status 500 Internal Server Error",
	}
	out := renderString(t, &Renderer{Width: 100}, core.Snapshot{{Prompt: "p", Answer: "a", Timestamp: "t"}}, st)

	assert.Contains(t, out, "updated just now")
	assert.Contains(t, out, "every 3s")
	assert.Contains(t, out, "1,234 failed")
	assert.Contains(t, out, "! last poll failed: unexpected status 500")
	assert.Contains(t, out, "PROMPT", "stale data stays on screen under the error line")
}

func TestRenderWrapsLongAnswers(t *testing.T) {
	answer := strings.TrimSpace(strings.Repeat("word ", 60))
	s := core.Snapshot{{Prompt: "p", Answer: answer, Timestamp: "t"}}
	out := renderString(t, &Renderer{Width: 60}, s, core.Status{})

	assert.Equal(t, 60, strings.Count(out, "word"), "nothing is truncated")
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "word") {
			assert.LessOrEqual(t, len(line), 60, "line %q", line)
		}
	}
}

func TestRenderCleansPrompt(t *testing.T) {
	s := core.Snapshot{{
		Prompt:    "<system-reminder>hidden</system-reminder>\nVisible question",
		Answer:    "a",
		Timestamp: "t",
	}}
	out := renderString(t, &Renderer{Width: 80}, s, core.Status{})
	assert.Contains(t, out, "Visible question")
	assert.NotContains(t, out, "hidden")
}

func TestRenderEmptyFields(t *testing.T) {
	s := core.Snapshot{{Prompt: "", Answer: "  ", Timestamp: ""}}
	out := renderString(t, &Renderer{Width: 80}, s, core.Status{})
	assert.Equal(t, 2, strings.Count(out, "(empty)"))
}

func TestRenderRelativeTimestamp(t *testing.T) {
	ts := time.Now().Add(-5 * time.Minute).UTC().Format(time.RFC3339)
	s := core.Snapshot{{Prompt: "p", Answer: "a", Timestamp: ts}}
	out := renderString(t, &Renderer{Width: 80}, s, core.Status{})
	assert.Contains(t, out, ts)
	assert.Contains(t, out, "5 minutes ago")
}

func TestFormatInterval(t *testing.T) {
	assert.Equal(t, "3s", formatInterval(3*time.Second))
	assert.Equal(t, "1.5s", formatInterval(1500*time.Millisecond))
	assert.Equal(t, "250ms", formatInterval(250*time.Millisecond))
	assert.Equal(t, "60s", formatInterval(time.Minute))
}
