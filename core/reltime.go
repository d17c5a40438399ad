package core

import (
	"time"

	"github.com/dustin/go-humanize"
)

// RelativeTime formats t relative to now, e.g. "3 seconds ago". Times less
// than a second away read "just now".
func RelativeTime(t time.Time) string {
	return relativeTo(t, time.Now())
}

func relativeTo(t, now time.Time) string {
	d := now.Sub(t)
	if d < time.Second && d > -time.Second {
		return "just now"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
