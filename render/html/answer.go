package html

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
)

// renderAnswer converts answer markdown to HTML. Blank answers render as
// an italic "(empty)" marker.
func renderAnswer(md goldmark.Markdown, text string) (template.HTML, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return template.HTML(`<p class="text-sm italic text-slate-400">(empty)</p>`), nil
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("goldmark convert: %w", err)
	}
	return template.HTML(`<div class="prose dark:prose-invert max-w-none text-sm">` + buf.String() + `</div>`), nil
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"plural": func(n int, one, many string) string {
			if n == 1 {
				return one
			}
			return many
		},
	}
}
