// pkg/backup/reader.go

package backup

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/stoshu2/opsreport/pkg/ops_err"
	"github.com/stoshu2/opsreport/pkg/ops_io"
)

// LoadJobs reads the jobs CSV. The first row is the header; columns are
// matched by name so column order does not matter. A missing file is an
// input error; a malformed row is not — it still yields a Job so the row
// count reconciles downstream.
func LoadJobs(ctx context.Context, path string) ([]Job, error) {
	logger := otelzap.Ctx(ctx)
	logger.Debug("📖 Reading jobs CSV", zap.String("path", path))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ops_err.NewInputError(
			fmt.Sprintf("cannot read jobs CSV %s", path),
			err,
			"pass the exported jobs file with --input",
		)
	}

	jobs, err := ParseJobs(ops_io.StripBOM(data))
	if err != nil {
		return nil, ops_err.NewInputError(
			fmt.Sprintf("cannot parse jobs CSV %s", path), err)
	}

	logger.Info("Jobs loaded", zap.String("path", path), zap.Int("count", len(jobs)))
	return jobs, nil
}

// ParseJobs decodes CSV bytes into jobs. Only a broken header or an
// unreadable record stream is an error; field-level problems are carried
// inside the Job for the classifier to flag.
func ParseJobs(data []byte) ([]Job, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // ragged rows are classified, not dropped
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ops_err.ErrNoResults
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var jobs []Job
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row %d: %w", row, err)
		}
		jobs = append(jobs, jobFromRecord(record, index, row))
		row++
	}

	if len(jobs) == 0 {
		return nil, ops_err.ErrNoResults
	}
	return jobs, nil
}

func jobFromRecord(record []string, index map[string]int, row int) Job {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	job := Job{
		Name:           field("job_name"),
		LastRunRaw:     field("last_run"),
		LastResult:     field("last_result"),
		LastSuccessRaw: field("last_success"),
		Notes:          field("notes"),
	}
	if job.Name == "" {
		job.Name = fmt.Sprintf("row %d", row)
	}

	job.LastRun = ParseTime(job.LastRunRaw)
	job.LastSuccess = ParseTime(job.LastSuccessRaw)

	if raw := field("duration_minutes"); raw != "" {
		if dur, err := strconv.ParseFloat(raw, 64); err == nil {
			job.DurationMinutes = &dur
		}
	}

	return job
}
