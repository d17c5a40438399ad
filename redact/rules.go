package redact

import (
	"fmt"
	"regexp"
)

// Rule detects sensitive data in a string and provides a replacement.
type Rule interface {
	Name() string
	Kind() string
	Detect(s string) []Match
	Replacement(m Match) string
}

// Match represents a detected occurrence within a string.
type Match struct {
	Start int
	End   int
	Value string
}

// Rule kinds.
const (
	KindSecret = "secret"
	KindPII    = "pii"
)

type regexRule struct {
	name    string
	kind    string
	pattern *regexp.Regexp
}

// NewRegexRule returns a Rule that replaces every match of pattern with
// [REDACTED:name].
func NewRegexRule(name, kind, pattern string) (Rule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", name, err)
	}
	return &regexRule{name: name, kind: kind, pattern: re}, nil
}

func (r *regexRule) Name() string { return r.name }
func (r *regexRule) Kind() string { return r.kind }

func (r *regexRule) Detect(s string) []Match {
	locs := r.pattern.FindAllStringIndex(s, -1)
	matches := make([]Match, len(locs))
	for i, loc := range locs {
		matches[i] = Match{Start: loc[0], End: loc[1], Value: s[loc[0]:loc[1]]}
	}
	return matches
}

func (r *regexRule) Replacement(_ Match) string {
	return "[REDACTED:" + r.name + "]"
}

// builtin rules, compiled once.
var (
	secretRules = []Rule{
		mustRule("aws_key", KindSecret, `AKIA[0-9A-Z]{16}`),
		mustRule("api_key", KindSecret, `(?:sk-(?:ant-|proj-)?[a-zA-Z0-9_\-]{32,}|ghp_[a-zA-Z0-9]{36,}|gho_[a-zA-Z0-9]{36,}|glpat-[a-zA-Z0-9\-]{20,})`),
		mustRule("bearer_token", KindSecret, `(?i)bearer\s+[a-z0-9\-_.=]{20,}`),
		mustRule("private_key", KindSecret, `-----BEGIN [A-Z ]+PRIVATE KEY-----`),
		mustRule("connection_string", KindSecret, `(?:postgres|postgresql|mongodb|mysql|redis|amqp)://[^\s"'`+"`"+`]+`),
		mustRule("jwt", KindSecret, `eyJ[A-Za-z0-9\-_]+\.eyJ[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_.+/=]+`),
	}
	piiRules = []Rule{
		mustRule("email", KindPII, `[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`),
		mustRule("ipv4", KindPII, `\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`),
		mustRule("phone", KindPII, `(?:\+\d{1,3}[\s\-]?)?\(?\d{3}\)?[\s\-]?\d{3}[\s\-]?\d{4}`),
	}
)

func mustRule(name, kind, pattern string) Rule {
	r, err := NewRegexRule(name, kind, pattern)
	if err != nil {
		panic(err)
	}
	return r
}

// SecretRules returns the built-in secret detection rules.
func SecretRules() []Rule {
	return append([]Rule(nil), secretRules...)
}

// PIIRules returns the built-in PII detection rules.
func PIIRules() []Rule {
	return append([]Rule(nil), piiRules...)
}
