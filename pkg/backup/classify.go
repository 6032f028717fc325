// pkg/backup/classify.go

package backup

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/stoshu2/opsreport/pkg/classify"
	"github.com/stoshu2/opsreport/pkg/thresholds"
)

// Rules builds the ordered ruleset for backup jobs. Priority order is part of
// the contract: source-reported status is checked before staleness, so a job
// that both failed and went stale reports failed.
func Rules(t thresholds.Backup, now time.Time) classify.Ruleset[Job] {
	failSet := lowerSet(t.AllowedFailValues)
	warnSet := lowerSet(t.AllowedWarningValues)

	return classify.Ruleset[Job]{
		{
			Name:     "failed-result",
			Severity: classify.SeverityFailed,
			When: func(j Job) (bool, string) {
				if failSet[strings.ToLower(j.LastResult)] {
					return true, fmt.Sprintf("Last result is %s", j.LastResult)
				}
				return false, ""
			},
		},
		{
			Name:     "warning-result-escalated",
			Severity: classify.SeverityFailed,
			When: func(j Job) (bool, string) {
				if t.FailOnWarningResult && warnSet[strings.ToLower(j.LastResult)] {
					return true, fmt.Sprintf("Last result is %s (warnings escalate to failed)", j.LastResult)
				}
				return false, ""
			},
		},
		{
			Name:     "warning-result",
			Severity: classify.SeverityWarning,
			When: func(j Job) (bool, string) {
				if warnSet[strings.ToLower(j.LastResult)] {
					return true, fmt.Sprintf("Last result is %s", j.LastResult)
				}
				return false, ""
			},
		},
		{
			// A job we cannot date is a job we cannot trust.
			Name:     "missing-last-success",
			Severity: classify.SeverityFailed,
			When: func(j Job) (bool, string) {
				if j.LastSuccess != nil {
					return false, ""
				}
				if strings.TrimSpace(j.LastSuccessRaw) == "" {
					return true, "No last_success timestamp"
				}
				return true, fmt.Sprintf("Unparsable last_success timestamp %q", j.LastSuccessRaw)
			},
		},
		{
			Name:     "stale",
			Severity: classify.SeverityStale,
			When: func(j Job) (bool, string) {
				d := DaysSince(j.LastSuccess, now)
				if d != nil && *d >= t.StaleDays {
					return true, fmt.Sprintf("Stale: last success %.1f days ago (limit %g days)", *d, t.StaleDays)
				}
				return false, ""
			},
		},
		{
			Name:     "approaching-stale",
			Severity: classify.SeverityWarning,
			When: func(j Job) (bool, string) {
				if t.WarningDays <= 0 {
					return false, ""
				}
				d := DaysSince(j.LastSuccess, now)
				if d != nil && *d >= t.WarningDays {
					return true, fmt.Sprintf("Approaching stale: last success %.1f days ago", *d)
				}
				return false, ""
			},
		},
	}
}

// ClassifyAll evaluates every job, returning exactly one result per job in
// input order. Raw attributes ride along for audit.
func ClassifyAll(jobs []Job, t thresholds.Backup, now time.Time) []classify.Result {
	rules := Rules(t, now)
	results := make([]classify.Result, 0, len(jobs))

	for _, job := range jobs {
		result := rules.Evaluate(job.Name, job, "Last result OK")
		result.Attributes = jobAttributes(job, now)
		results = append(results, result)
	}
	return results
}

// SortByDaysDesc orders results with the longest-unprotected jobs first. Jobs
// whose last success could not be dated sort ahead of everything. The sort is
// stable so a later severity sort keeps this order within each severity.
func SortByDaysDesc(results []classify.Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return daysOf(results[i]) > daysOf(results[j])
	})
}

func daysOf(r classify.Result) float64 {
	raw, ok := r.Attributes["days_since_success"]
	if !ok {
		return math.Inf(1)
	}
	d, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.Inf(1)
	}
	return d
}

func jobAttributes(j Job, now time.Time) map[string]string {
	attrs := map[string]string{
		"last_result":  j.LastResult,
		"last_run":     formatTime(j.LastRun, j.LastRunRaw),
		"last_success": formatTime(j.LastSuccess, j.LastSuccessRaw),
	}
	if d := DaysSince(j.LastSuccess, now); d != nil {
		attrs["days_since_success"] = fmt.Sprintf("%.2f", *d)
	}
	if j.DurationMinutes != nil {
		attrs["duration_minutes"] = fmt.Sprintf("%.1f", *j.DurationMinutes)
	}
	if j.Notes != "" {
		attrs["notes"] = j.Notes
	}
	return attrs
}

// formatTime prefers the parsed timestamp but falls back to the raw text so
// malformed values remain auditable.
func formatTime(t *time.Time, raw string) string {
	if t != nil {
		return t.Format("2006-01-02T15:04:05")
	}
	return raw
}

func lowerSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = true
	}
	return set
}
