// Package humanize formats timestamps and durations for the dashboard the
// way people read them: "a few seconds ago", "3 minutes", "an hour from now".
package humanize

import (
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	day   = 24 * time.Hour
	month = 30 * day
	year  = 365 * day
)

// magnitudes are upper-exclusive buckets. Singular buckets use an article
// instead of a number ("a minute", not "1 minute").
var magnitudes = []humanize.RelTimeMagnitude{
	{D: 45 * time.Second, Format: "a few seconds %s", DivBy: time.Second},
	{D: 90 * time.Second, Format: "a minute %s", DivBy: time.Second},
	{D: 45 * time.Minute, Format: "%d minutes %s", DivBy: time.Minute},
	{D: 90 * time.Minute, Format: "an hour %s", DivBy: time.Second},
	{D: 22 * time.Hour, Format: "%d hours %s", DivBy: time.Hour},
	{D: 36 * time.Hour, Format: "a day %s", DivBy: time.Second},
	{D: 26 * day, Format: "%d days %s", DivBy: day},
	{D: 45 * day, Format: "a month %s", DivBy: time.Second},
	{D: 320 * day, Format: "%d months %s", DivBy: month},
	{D: 548 * day, Format: "a year %s", DivBy: time.Second},
	{D: time.Duration(math.MaxInt64), Format: "%d years %s", DivBy: year},
}

// Duration renders d without a direction, e.g. "a few seconds", "2 minutes",
// "3 days". Negative durations are rendered by magnitude.
func Duration(d time.Duration) string {
	d = round(abs(d))
	base := time.Unix(0, 0)
	return strings.TrimSpace(humanize.CustomRelTime(base, base.Add(d), "", "", magnitudes))
}

// FromNow renders t relative to now, e.g. "5 minutes ago" or
// "an hour from now".
func FromNow(t, now time.Time) string {
	d := round(abs(now.Sub(t)))
	if t.After(now) {
		return humanize.CustomRelTime(now, now.Add(-d), "ago", "from now", magnitudes)
	}
	return humanize.CustomRelTime(now.Add(-d), now, "ago", "from now", magnitudes)
}

// Seconds renders a duration given in seconds, as reported by the stats
// endpoint for uptime. Negative or non-finite values render as "".
func Seconds(sec float64) string {
	if math.IsNaN(sec) || sec < 0 || sec > math.MaxInt64/float64(time.Second) {
		return ""
	}
	return Duration(time.Duration(sec * float64(time.Second)))
}

// Count renders a counter with thousands separators.
func Count(n int64) string {
	return humanize.Comma(n)
}

// round snaps d to the unit of the bucket it falls in so that 90 seconds
// reads "2 minutes" rather than "1 minutes". Buckets rendered with an
// article need no rounding.
func round(d time.Duration) time.Duration {
	switch {
	case d < 90*time.Second:
		return d
	case d < 45*time.Minute:
		return d.Round(time.Minute)
	case d < 90*time.Minute:
		return d
	case d < 22*time.Hour:
		return d.Round(time.Hour)
	case d < 36*time.Hour:
		return d
	default:
		return d.Round(day)
	}
}

func abs(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
