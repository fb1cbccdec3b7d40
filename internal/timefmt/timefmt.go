// Package timefmt renders compact relative timestamps for feed items.
package timefmt

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

const week = 7 * 24 * time.Hour

var magnitudes = []humanize.RelTimeMagnitude{
	{D: time.Minute, Format: "just now", DivBy: time.Second},
	{D: time.Hour, Format: "%dm %s", DivBy: time.Minute},
	{D: 24 * time.Hour, Format: "%dh %s", DivBy: time.Hour},
	{D: week, Format: "%dd %s", DivBy: 24 * time.Hour},
}

// Ago labels t relative to now: "just now", "5m ago", "3h ago", "2d ago",
// and "M/D" once it is a week old.
func Ago(t, now time.Time) string {
	if t.IsZero() {
		return "recently"
	}
	if !t.Before(now) {
		return "just now"
	}
	if now.Sub(t) >= week {
		return fmt.Sprintf("%d/%d", int(t.Month()), t.Day())
	}
	return humanize.CustomRelTime(t, now, "ago", "from now", magnitudes)
}
