// Package logreport turns a collector's performance-counter summary and
// event-log exports into a classified report: each counter row is one
// classified entity, event logs feed the summary and newest-events sections.
package logreport

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/stoshu2/opsreport/pkg/classify"
	"github.com/stoshu2/opsreport/pkg/ops_err"
	"github.com/stoshu2/opsreport/pkg/ops_io"
	"github.com/stoshu2/opsreport/pkg/thresholds"
)

// CounterRow is one summarized performance counter.
type CounterRow struct {
	Raw      string
	Norm     string
	Display  string
	Avg      float64
	Max      float64
	Samples  int
	ParseErr string // populated when a numeric column was unreadable
}

// hostPrefix matches \\HOST\object\counter so counter paths compare equal
// across machines.
var hostPrefix = regexp.MustCompile(`^\\\\[^\\]+\\(.*)$`)

// NormalizePath strips the host component from a counter path and lowercases
// it for stable matching.
func NormalizePath(raw string) string {
	s := strings.TrimSpace(raw)
	if m := hostPrefix.FindStringSubmatch(s); m != nil {
		s = `\` + m[1]
	}
	return strings.ToLower(s)
}

var friendlyNames = map[string]string{
	`\processor(_total)\% processor time`:          "CPU % Processor Time (Total)",
	`\memory\% committed bytes in use`:             "Memory % Committed Bytes In Use",
	`\memory\available mbytes`:                     "Memory Available MB",
	`\physicaldisk(_total)\avg. disk queue length`: "Disk Avg. Disk Queue Length (Total)",
}

// FriendlyName maps a normalized counter path to a display name, falling back
// to the path itself.
func FriendlyName(norm string) string {
	if name, ok := friendlyNames[norm]; ok {
		return name
	}
	return norm
}

// LoadPerfSummary reads the perf_summary.csv produced by the collector.
// The file itself is required; a bad numeric cell only poisons its own row.
func LoadPerfSummary(ctx context.Context, path string) ([]CounterRow, error) {
	logger := otelzap.Ctx(ctx)
	logger.Debug("📖 Reading perf summary", zap.String("path", path))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ops_err.NewInputError(
			fmt.Sprintf("cannot read perf summary %s", path),
			err,
			"point --datadir at a directory containing perf_summary.csv",
		)
	}

	reader := csv.NewReader(bytes.NewReader(ops_io.StripBOM(data)))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, ops_err.NewInputError(
			fmt.Sprintf("cannot parse perf summary %s", path), err)
	}
	index := columnIndex(header)

	var rows []CounterRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ops_err.NewInputError(
				fmt.Sprintf("cannot parse perf summary %s", path), err)
		}
		rows = append(rows, counterFromRecord(record, index))
	}

	logger.Info("Perf summary loaded", zap.String("path", path), zap.Int("counters", len(rows)))
	return rows, nil
}

func columnIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return index
}

func counterFromRecord(record []string, index map[string]int) CounterRow {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	row := CounterRow{Raw: field("counter")}
	row.Norm = NormalizePath(row.Raw)
	row.Display = FriendlyName(row.Norm)

	var err error
	if row.Avg, err = parseFloat(field("avg")); err != nil {
		row.ParseErr = fmt.Sprintf("unparsable Avg %q", field("avg"))
	}
	if row.Max, err = parseFloat(field("max")); err != nil && row.ParseErr == "" {
		row.ParseErr = fmt.Sprintf("unparsable Max %q", field("max"))
	}
	if samples, err := parseFloat(field("samples")); err == nil {
		row.Samples = int(samples)
	}

	return row
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// Rules builds the ordered counter ruleset. Malformed rows classify failed so
// they are never silently dropped; unknown counters fall through to ok.
func Rules(t thresholds.Perf) classify.Ruleset[CounterRow] {
	limitFor := func(r CounterRow) (thresholds.Counter, bool) {
		limit, ok := t.Counters[r.Norm]
		return limit, ok
	}

	return classify.Ruleset[CounterRow]{
		{
			Name:     "malformed-row",
			Severity: classify.SeverityFailed,
			When: func(r CounterRow) (bool, string) {
				if r.ParseErr != "" {
					return true, "Malformed counter row: " + r.ParseErr
				}
				return false, ""
			},
		},
		{
			Name:     "low-is-bad-alert",
			Severity: classify.SeverityFailed,
			When: func(r CounterRow) (bool, string) {
				limit, ok := limitFor(r)
				if ok && limit.LowIsBad && (r.Avg <= limit.Alert || r.Max <= limit.Alert) {
					return true, fmt.Sprintf("Critically low (avg=%.1f, max=%.1f)", r.Avg, r.Max)
				}
				return false, ""
			},
		},
		{
			Name:     "low-is-bad-warn",
			Severity: classify.SeverityWarning,
			When: func(r CounterRow) (bool, string) {
				limit, ok := limitFor(r)
				if ok && limit.LowIsBad && (r.Avg <= limit.Warn || r.Max <= limit.Warn) {
					return true, fmt.Sprintf("Running low (avg=%.1f, max=%.1f)", r.Avg, r.Max)
				}
				return false, ""
			},
		},
		{
			Name:     "high-is-bad-alert",
			Severity: classify.SeverityFailed,
			When: func(r CounterRow) (bool, string) {
				limit, ok := limitFor(r)
				if ok && !limit.LowIsBad && (r.Avg >= limit.Alert || r.Max >= limit.Alert) {
					return true, fmt.Sprintf("High usage (avg=%.1f, max=%.1f)", r.Avg, r.Max)
				}
				return false, ""
			},
		},
		{
			Name:     "high-is-bad-warn",
			Severity: classify.SeverityWarning,
			When: func(r CounterRow) (bool, string) {
				limit, ok := limitFor(r)
				if ok && !limit.LowIsBad && (r.Avg >= limit.Warn || r.Max >= limit.Warn) {
					return true, fmt.Sprintf("Elevated usage (avg=%.1f, max=%.1f)", r.Avg, r.Max)
				}
				return false, ""
			},
		},
	}
}

// ClassifyAll evaluates every counter row, one result per row in input order.
func ClassifyAll(rows []CounterRow, t thresholds.Perf) []classify.Result {
	rules := Rules(t)
	results := make([]classify.Result, 0, len(rows))

	for _, row := range rows {
		okReason := "Within normal range"
		if _, known := t.Counters[row.Norm]; !known {
			okReason = "No threshold set"
		}
		result := rules.Evaluate(row.Display, row, okReason)
		result.Category = "perf"
		result.Attributes = map[string]string{
			"counter": row.Raw,
			"avg":     fmt.Sprintf("%.3f", row.Avg),
			"max":     fmt.Sprintf("%.3f", row.Max),
			"samples": strconv.Itoa(row.Samples),
		}
		results = append(results, result)
	}
	return results
}
