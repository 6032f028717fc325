// pkg/logreport/perf_test.go

package logreport

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stoshu2/opsreport/pkg/classify"
	"github.com/stoshu2/opsreport/pkg/ops_err"
	"github.com/stoshu2/opsreport/pkg/thresholds"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`\\HOST01\Processor(_Total)\% Processor Time`, `\processor(_total)\% processor time`},
		{`\Memory\Available MBytes`, `\memory\available mbytes`},
		{`  \\srv-db\Memory\Available MBytes  `, `\memory\available mbytes`},
		{`plain counter`, `plain counter`},
		{``, ``},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePath(tt.input))
		})
	}
}

func TestFriendlyName(t *testing.T) {
	assert.Equal(t, "Memory Available MB", FriendlyName(`\memory\available mbytes`))
	assert.Equal(t, `\custom\thing`, FriendlyName(`\custom\thing`), "unknown paths fall back to the path")
}

func TestLoadPerfSummary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "perf_summary.csv")
	csv := "Counter,Avg,Max,Samples\n" +
		`\\HOST01\Processor(_Total)\% Processor Time,12.5,40.2,120` + "\n" +
		`\\HOST01\Memory\Available MBytes,2048,4096,120` + "\n" +
		`\\HOST01\PhysicalDisk(_Total)\Avg. Disk Queue Length,not-a-number,1.0,120` + "\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0644))

	rows, err := LoadPerfSummary(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, `\processor(_total)\% processor time`, rows[0].Norm)
	assert.Equal(t, "CPU % Processor Time (Total)", rows[0].Display)
	assert.Equal(t, 12.5, rows[0].Avg)
	assert.Equal(t, 120, rows[0].Samples)
	assert.Empty(t, rows[0].ParseErr)

	assert.Empty(t, rows[1].ParseErr)

	assert.NotEmpty(t, rows[2].ParseErr, "bad numeric cell poisons only its row")
	assert.Contains(t, rows[2].ParseErr, "not-a-number")
}

func TestLoadPerfSummary_MissingFile(t *testing.T) {
	_, err := LoadPerfSummary(context.Background(), filepath.Join(t.TempDir(), "perf_summary.csv"))
	require.Error(t, err)
	assert.Equal(t, 1, ops_err.ExitCode(err), "missing perf summary is an input error")
}

func TestClassifyAll_CounterThresholds(t *testing.T) {
	limits := thresholds.DefaultPerf()
	// Defaults: CPU warn 70 / alert 85; available memory low-is-bad warn 1024 / alert 512.

	tests := []struct {
		name     string
		row      CounterRow
		severity classify.Severity
		reason   string
	}{
		{
			name:     "within range",
			row:      CounterRow{Norm: `\processor(_total)\% processor time`, Avg: 10, Max: 30},
			severity: classify.SeverityOK,
			reason:   "Within normal range",
		},
		{
			name:     "avg over warn",
			row:      CounterRow{Norm: `\processor(_total)\% processor time`, Avg: 75, Max: 80},
			severity: classify.SeverityWarning,
		},
		{
			name:     "max alone trips alert",
			row:      CounterRow{Norm: `\processor(_total)\% processor time`, Avg: 10, Max: 99},
			severity: classify.SeverityFailed,
		},
		{
			name:     "low-is-bad warn",
			row:      CounterRow{Norm: `\memory\available mbytes`, Avg: 900, Max: 1000},
			severity: classify.SeverityWarning,
		},
		{
			name:     "low-is-bad alert",
			row:      CounterRow{Norm: `\memory\available mbytes`, Avg: 400, Max: 600},
			severity: classify.SeverityFailed,
		},
		{
			name:     "unknown counter is ok",
			row:      CounterRow{Norm: `\custom\thing`, Avg: 9999, Max: 9999},
			severity: classify.SeverityOK,
			reason:   "No threshold set",
		},
		{
			name:     "malformed row is failed",
			row:      CounterRow{Norm: `\processor(_total)\% processor time`, ParseErr: `unparsable Avg "x"`},
			severity: classify.SeverityFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := ClassifyAll([]CounterRow{tt.row}, limits)
			require.Len(t, results, 1)
			assert.Equal(t, tt.severity, results[0].Severity, results[0].Reason)
			assert.Equal(t, "perf", results[0].Category)
			if tt.reason != "" {
				assert.Equal(t, tt.reason, results[0].Reason)
			}
		})
	}
}
