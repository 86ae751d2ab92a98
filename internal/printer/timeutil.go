package printer

import (
	"fmt"
	"time"
)

const week = 7 * 24 * time.Hour

// timeAgoSteps are the relative time buckets used in listing output,
// smallest first. Anything past the last bucket is rendered in weeks,
// marketplace tasks routinely stay listed that long.
var timeAgoSteps = []struct {
	limit time.Duration
	unit  string
	div   time.Duration
}{
	{limit: time.Minute, unit: "second", div: time.Second},
	{limit: time.Hour, unit: "minute", div: time.Minute},
	{limit: 24 * time.Hour, unit: "hour", div: time.Hour},
	{limit: week, unit: "day", div: 24 * time.Hour},
}

// TimeAgo renders how long ago a task timestamp happened, e.g.
// "3 hours ago (UTC)".
func TimeAgo(t time.Time) string {
	diff := time.Now().UTC().Sub(t.UTC())
	if diff < 0 {
		return "in the future (UTC)"
	}

	for _, s := range timeAgoSteps {
		if diff < s.limit {
			return relative(int(diff/s.div), s.unit)
		}
	}

	return relative(int(diff/week), "week")
}

func relative(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago (UTC)", unit)
	}
	return fmt.Sprintf("%d %ss ago (UTC)", n, unit)
}

// FormatTimestamp renders an absolute timestamp for detail output,
// always in UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05 UTC")
}
