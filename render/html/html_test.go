package html

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sonnes/chaukidar/core"
	"github.com/sonnes/chaukidar/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderPage(t *testing.T, r *Renderer, s core.Snapshot, st core.Status) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, s, st))
	return buf.String()
}

func TestRenderFullPage(t *testing.T) {
	s := core.Snapshot{
		{Prompt: "How do I reverse a slice?", Answer: "Use `slices.Reverse`.\n\n```go\nslices.Reverse(s)\n```", Timestamp: "2026-01-22T09:08:06Z"},
		{Prompt: "second", Answer: "plain answer", Timestamp: "t2"},
	}
	out := renderPage(t, New(), s, core.Status{Loaded: true, UpdatedAt: time.Now()})

	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "<title>"+render.Title+"</title>")
	assert.Contains(t, out, "tailwindcss")
	assert.Contains(t, out, `id="exchanges"`)
	assert.Contains(t, out, "overflow-y-auto")
	assert.Contains(t, out, "2 exchanges")
	assert.Contains(t, out, "updated just now")
	assert.Contains(t, out, "How do I reverse a slice?")
	assert.Contains(t, out, "<code>slices.Reverse</code>")
	assert.Contains(t, out, "<pre", "fenced code is highlighted")
	assert.Contains(t, out, "2026-01-22T09:08:06Z")
	assert.Equal(t, 2, strings.Count(out, `class="exchange `))
	assert.NotContains(t, out, render.Placeholder)
	assert.NotContains(t, out, "http-equiv")
}

func TestRenderKeepsOrder(t *testing.T) {
	s := core.Snapshot{
		{Prompt: "zeta", Answer: "a", Timestamp: "3"},
		{Prompt: "alpha", Answer: "a", Timestamp: "1"},
	}
	out := renderPage(t, New(), s, core.Status{Loaded: true})
	assert.Less(t, strings.Index(out, "zeta"), strings.Index(out, "alpha"))
	assert.Less(t, strings.Index(out, `id="ex-0"`), strings.Index(out, `id="ex-1"`))
}

func TestRenderPlaceholder(t *testing.T) {
	for _, st := range []core.Status{{}, {Loaded: true}} {
		out := renderPage(t, New(), core.Snapshot{}, st)
		assert.Contains(t, out, `id="placeholder"`)
		assert.Contains(t, out, render.Placeholder)
		assert.NotContains(t, out, `class="exchange `)
	}
}

func TestRenderEscapesPrompt(t *testing.T) {
	s := core.Snapshot{{Prompt: `<script>alert("x")</script>`, Answer: "<b>raw</b>", Timestamp: "t"}}
	out := renderPage(t, New(), s, core.Status{})

	assert.NotContains(t, out, `<script>alert`)
	assert.Contains(t, out, "&lt;script&gt;")
	assert.NotContains(t, out, "<b>raw</b>", "raw html in answers is dropped")
}

func TestRenderErrorBanner(t *testing.T) {
	st := core.Status{Loaded: true, Failures: 2, LastError: "unexpected status 503 Service Unavailable"}
	out := renderPage(t, New(), core.Snapshot{{Prompt: "p", Answer: "a", Timestamp: "t"}}, st)

	assert.Contains(t, out, `id="poll-error"`)
	assert.Contains(t, out, "Last poll failed: unexpected status 503 Service Unavailable")
	assert.Contains(t, out, "2 failed")
	assert.Contains(t, out, `id="ex-0"`, "last good snapshot stays visible")
}

func TestRenderRefresh(t *testing.T) {
	tests := []struct {
		name    string
		refresh time.Duration
		want    string
	}{
		{"poll interval", 3 * time.Second, `<meta http-equiv="refresh" content="3">`},
		{"sub-second rounds up", 200 * time.Millisecond, `<meta http-equiv="refresh" content="1">`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()
			r.Refresh = tt.refresh
			out := renderPage(t, r, nil, core.Status{})
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestRenderEmptyAnswer(t *testing.T) {
	out := renderPage(t, New(), core.Snapshot{{Prompt: "", Answer: "", Timestamp: "t"}}, core.Status{})
	assert.Equal(t, 2, strings.Count(out, "(empty)"))
}
