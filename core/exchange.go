// Package core defines the exchange model shared by readers, the store, the
// poller and all renderers.
package core

import (
	"strconv"
	"strings"
	"time"
)

// Exchange is one recorded prompt/answer pair. Values are immutable once
// received; nothing in this module mutates an Exchange after it has been
// handed to the store.
type Exchange struct {
	Prompt    string `json:"prompt"`
	Answer    string `json:"answer"`
	Timestamp string `json:"timestamp"` // display-formatted creation time, as sent upstream
}

// timestampLayouts are tried in order by Exchange.Time.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC1123,
}

// Time parses Timestamp for relative display. The second return value is
// false when the text is not in a recognised layout; callers then show the
// raw text only.
func (e Exchange) Time() (time.Time, bool) {
	s := strings.TrimSpace(e.Timestamp)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil && secs > 0 {
		return time.Unix(secs, 0), true
	}
	return time.Time{}, false
}

// Snapshot is the ordered sequence of exchanges currently on display.
// Order is the order received from the most recent successful fetch; no
// client-side sorting is applied.
type Snapshot []Exchange

// Len returns the number of exchanges.
func (s Snapshot) Len() int { return len(s) }

// Clone returns a copy that shares no backing array with s. A nil snapshot
// clones to an empty, non-nil one.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	copy(out, s)
	return out
}

// Status summarises the poll loop for operator-facing display.
type Status struct {
	Loaded    bool          // at least one fetch has been delivered
	UpdatedAt time.Time     // time of the last delivered fetch
	Interval  time.Duration // configured poll period
	Fetches   int           // fetches issued
	Failures  int           // fetches that failed
	Discarded int           // completions dropped (teardown or superseded)
	LastError string        // most recent failure, cleared on success
}
