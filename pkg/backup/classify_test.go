// pkg/backup/classify_test.go

package backup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stoshu2/opsreport/pkg/classify"
	"github.com/stoshu2/opsreport/pkg/thresholds"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestClassifyAll_SeverityDecisions(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	limits := thresholds.DefaultBackup() // stale after 3 days, warn after 2

	tests := []struct {
		name     string
		job      Job
		severity classify.Severity
		reason   string
	}{
		{
			name: "recent success is ok",
			job: Job{
				Name:        "SQL-Full",
				LastResult:  "Success",
				LastSuccess: timePtr(now.Add(-1 * time.Hour)),
			},
			severity: classify.SeverityOK,
			reason:   "Last result OK",
		},
		{
			name: "four day old success is stale",
			job: Job{
				Name:        "Files-Nightly",
				LastResult:  "Success",
				LastSuccess: timePtr(now.Add(-4 * 24 * time.Hour)),
			},
			severity: classify.SeverityStale,
			reason:   "Stale: last success 4.0 days ago (limit 3 days)",
		},
		{
			name: "failed result wins over staleness",
			job: Job{
				Name:        "VM-Weekly",
				LastResult:  "Failed",
				LastSuccess: timePtr(now.Add(-10 * 24 * time.Hour)),
			},
			severity: classify.SeverityFailed,
			reason:   "Last result is Failed",
		},
		{
			name: "error result maps to failed",
			job: Job{
				Name:        "Exchange",
				LastResult:  "error",
				LastSuccess: timePtr(now.Add(-1 * time.Hour)),
			},
			severity: classify.SeverityFailed,
		},
		{
			name: "warning result wins over staleness",
			job: Job{
				Name:        "Archive",
				LastResult:  "Warning",
				LastSuccess: timePtr(now.Add(-5 * 24 * time.Hour)),
			},
			severity: classify.SeverityWarning,
			reason:   "Last result is Warning",
		},
		{
			name: "empty last_success is failed",
			job: Job{
				Name:       "Orphan",
				LastResult: "Success",
			},
			severity: classify.SeverityFailed,
			reason:   "No last_success timestamp",
		},
		{
			name: "unparsable last_success is failed",
			job: Job{
				Name:           "Mangled",
				LastResult:     "Success",
				LastSuccessRaw: "yesterday-ish",
			},
			severity: classify.SeverityFailed,
			reason:   `Unparsable last_success timestamp "yesterday-ish"`,
		},
		{
			name: "approaching stale warns",
			job: Job{
				Name:        "Slowing",
				LastResult:  "Success",
				LastSuccess: timePtr(now.Add(-2*24*time.Hour - time.Hour)),
			},
			severity: classify.SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := ClassifyAll([]Job{tt.job}, limits, now)
			require.Len(t, results, 1)
			assert.Equal(t, tt.job.Name, results[0].Name)
			assert.Equal(t, tt.severity, results[0].Severity)
			if tt.reason != "" {
				assert.Equal(t, tt.reason, results[0].Reason)
			}
		})
	}
}

func TestClassifyAll_WarningEscalation(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	limits := thresholds.DefaultBackup()
	limits.FailOnWarningResult = true

	job := Job{
		Name:        "Archive",
		LastResult:  "Warning",
		LastSuccess: timePtr(now.Add(-1 * time.Hour)),
	}

	results := ClassifyAll([]Job{job}, limits, now)
	require.Len(t, results, 1)
	assert.Equal(t, classify.SeverityFailed, results[0].Severity)
	assert.Contains(t, results[0].Reason, "escalate")
}

func TestClassifyAll_OneResultPerJob(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	limits := thresholds.DefaultBackup()

	jobs := []Job{
		{Name: "a", LastResult: "Success", LastSuccess: timePtr(now.Add(-time.Hour))},
		{Name: "b", LastResult: "Failed"},
		{Name: "c", LastResult: "Success"}, // missing timestamp
		{Name: "d", LastResult: "Success", LastSuccess: timePtr(now.Add(-96 * time.Hour))},
	}

	results := ClassifyAll(jobs, limits, now)
	require.Len(t, results, len(jobs))
	for i, r := range results {
		assert.Equal(t, jobs[i].Name, r.Name, "input order preserved")
	}
}

func TestClassifyAll_Idempotent(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	limits := thresholds.DefaultBackup()

	jobs := []Job{
		{Name: "a", LastResult: "Failed", LastSuccess: timePtr(now.Add(-time.Hour))},
		{Name: "b", LastResult: "Success", LastSuccess: timePtr(now.Add(-96 * time.Hour))},
	}

	first := ClassifyAll(jobs, limits, now)
	second := ClassifyAll(jobs, limits, now)
	assert.Equal(t, first, second)
}

func TestClassifyAll_Attributes(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	dur := 42.5
	job := Job{
		Name:            "SQL-Full",
		LastResult:      "Success",
		LastSuccess:     timePtr(now.Add(-12 * time.Hour)),
		DurationMinutes: &dur,
		Notes:           "offsite copy",
	}

	results := ClassifyAll([]Job{job}, thresholds.DefaultBackup(), now)
	require.Len(t, results, 1)

	attrs := results[0].Attributes
	assert.Equal(t, "Success", attrs["last_result"])
	assert.Equal(t, "0.50", attrs["days_since_success"])
	assert.Equal(t, "42.5", attrs["duration_minutes"])
	assert.Equal(t, "offsite copy", attrs["notes"])
}

func TestSortByDaysDesc(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	limits := thresholds.DefaultBackup()

	jobs := []Job{
		{Name: "fresh", LastResult: "Success", LastSuccess: timePtr(now.Add(-time.Hour))},
		{Name: "oldest", LastResult: "Success", LastSuccess: timePtr(now.Add(-10 * 24 * time.Hour))},
		{Name: "undated", LastResult: "Success"},
		{Name: "middling", LastResult: "Success", LastSuccess: timePtr(now.Add(-4 * 24 * time.Hour))},
	}

	results := ClassifyAll(jobs, limits, now)
	SortByDaysDesc(results)

	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"undated", "oldest", "middling", "fresh"}, names)
}
