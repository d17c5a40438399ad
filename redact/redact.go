// Package redact masks secrets and PII in exchange text before it is
// displayed.
package redact

import (
	"regexp"
	"sort"

	"github.com/sonnes/chaukidar/core"
)

// Config controls which rules the Redactor applies.
type Config struct {
	Secrets    bool
	PII        bool
	ExtraRules []Rule
	Allowlist  []string // regex patterns to skip
}

// Redactor rewrites prompt and answer text of every exchange in a snapshot.
// Timestamps are left alone.
type Redactor struct {
	rules     []Rule
	allowlist []*regexp.Regexp
}

// New creates a Redactor from the given config. Invalid allowlist patterns
// are ignored.
func New(cfg Config) *Redactor {
	var rules []Rule
	if cfg.Secrets {
		rules = append(rules, SecretRules()...)
	}
	if cfg.PII {
		rules = append(rules, PIIRules()...)
	}
	rules = append(rules, cfg.ExtraRules...)

	allowlist := make([]*regexp.Regexp, 0, len(cfg.Allowlist))
	for _, pattern := range cfg.Allowlist {
		if re, err := regexp.Compile(pattern); err == nil {
			allowlist = append(allowlist, re)
		}
	}

	return &Redactor{rules: rules, allowlist: allowlist}
}

// Transform implements core.Transformer.
func (r *Redactor) Transform(s core.Snapshot) error {
	if len(r.rules) == 0 {
		return nil
	}
	for i := range s {
		s[i].Prompt = r.String(s[i].Prompt)
		s[i].Answer = r.String(s[i].Answer)
	}
	return nil
}

type span struct {
	start, end int
	text       string
}

// String applies every rule to s. Where matches overlap the earliest start
// wins, then the longest match.
func (r *Redactor) String(s string) string {
	if s == "" {
		return s
	}

	var spans []span
	for _, rule := range r.rules {
		for _, m := range rule.Detect(s) {
			if r.allowed(m.Value) {
				continue
			}
			spans = append(spans, span{m.Start, m.End, rule.Replacement(m)})
		}
	}
	if len(spans) == 0 {
		return s
	}

	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end > spans[j].end
	})

	out := make([]byte, 0, len(s))
	pos := 0
	for _, sp := range spans {
		if sp.start < pos {
			continue
		}
		out = append(out, s[pos:sp.start]...)
		out = append(out, sp.text...)
		pos = sp.end
	}
	out = append(out, s[pos:]...)
	return string(out)
}

func (r *Redactor) allowed(value string) bool {
	for _, re := range r.allowlist {
		if re.MatchString(value) {
			return true
		}
	}
	return false
}
