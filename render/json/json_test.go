package json

import (
	"bytes"
	"testing"

	"github.com/sonnes/chaukidar/core"
	"github.com/sonnes/chaukidar/reader/remote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCompact(t *testing.T) {
	s := core.Snapshot{{Prompt: "p1", Answer: "a1", Timestamp: "t1"}}
	var buf bytes.Buffer
	require.NoError(t, (&Renderer{}).Render(&buf, s, core.Status{}))
	assert.Equal(t, `[{"prompt":"p1","answer":"a1","timestamp":"t1"}]`+"\n", buf.String())
}

func TestRenderEmpty(t *testing.T) {
	for _, s := range []core.Snapshot{nil, {}} {
		var buf bytes.Buffer
		require.NoError(t, (&Renderer{}).Render(&buf, s, core.Status{Loaded: true}))
		assert.Equal(t, "[]\n", buf.String())
	}
}

func TestRenderIndentDecodesBack(t *testing.T) {
	s := core.Snapshot{
		{Prompt: "second", Answer: "b", Timestamp: "2"},
		{Prompt: "first", Answer: "a", Timestamp: "1"},
	}
	var buf bytes.Buffer
	require.NoError(t, (&Renderer{Indent: true}).Render(&buf, s, core.Status{}))
	assert.Contains(t, buf.String(), "\n  {")

	got, err := remote.Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, s, got)
}
