// Package backup verifies backup jobs: it reads a jobs CSV exported by the
// backup system, classifies every job against the configured staleness and
// result thresholds, and hands the results to the report renderer.
package backup

import (
	"strings"
	"time"
)

// Job is one backup job row. Immutable once read; raw string fields are kept
// alongside parsed values so malformed input stays visible in the report.
type Job struct {
	Name            string
	LastRun         *time.Time
	LastRunRaw      string
	LastResult      string
	LastSuccess     *time.Time
	LastSuccessRaw  string
	DurationMinutes *float64
	Notes           string
}

// timeLayouts are the accepted ISO-ish timestamp shapes, tried in order.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses an ISO-ish timestamp. Naive timestamps are treated as
// local time, matching how the collector records them. Empty or unparsable
// input returns nil; callers decide whether that is an error.
func ParseTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &t
		}
	}
	return nil
}

// DaysSince returns the fractional days between t and now, or nil when t is
// unknown.
func DaysSince(t *time.Time, now time.Time) *float64 {
	if t == nil {
		return nil
	}
	d := now.Sub(*t).Hours() / 24.0
	return &d
}
