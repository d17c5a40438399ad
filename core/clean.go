package core

import (
	"regexp"
	"strings"
)

// injectedBlockRE matches whole blocks that upstream tooling wraps around a
// prompt, e.g. <system-reminder>...</system-reminder>.
var injectedBlockRE = regexp.MustCompile(`(?s)<(system-reminder|ide_selection|ide_opened_file|context)\b[^>]*>.*?</(?:system-reminder|ide_selection|ide_opened_file|context)>`)

// blankRunRE collapses three or more newlines left behind after stripping.
var blankRunRE = regexp.MustCompile(`\n{3,}`)

// CleanPromptText strips injected context blocks from a prompt for display.
// The stored exchange is left as received.
func CleanPromptText(s string) string {
	if !strings.Contains(s, "<") {
		return strings.TrimSpace(s)
	}
	s = injectedBlockRE.ReplaceAllString(s, "")
	s = blankRunRE.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
