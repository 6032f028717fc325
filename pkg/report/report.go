// Package report renders classification results to the two run artifacts:
// report.json for machines and report.html for humans. Both are produced from
// the same in-memory Report value, so severity counts can never disagree
// between the formats.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/stoshu2/opsreport/pkg/classify"
	"github.com/stoshu2/opsreport/pkg/ops_err"
	"github.com/stoshu2/opsreport/pkg/ops_io"
	"github.com/stoshu2/opsreport/pkg/output"
)

// Output file names, fixed so downstream tooling can find them.
const (
	JSONFile = "report.json"
	HTMLFile = "report.html"
)

// Meta is the run metadata carried at the top of every report.
type Meta struct {
	Tool        string    `json:"tool"`
	Title       string    `json:"title"`
	GeneratedAt time.Time `json:"generated_at"`
	Host        string    `json:"host"`
	RunID       string    `json:"run_id"`
	TicketLabel string    `json:"ticket_label,omitempty"`
}

// Section is an extra display table (disks, stopped services, newest events)
// appended below the classification sections.
type Section struct {
	Title   string     `json:"title"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Report is the ordered grouping of classification results plus run metadata.
// Written once to both formats; never mutated after Build.
type Report struct {
	Meta       Meta              `json:"meta"`
	Thresholds interface{}       `json:"thresholds"`
	Counts     classify.Counts   `json:"counts"`
	Results    []classify.Result `json:"results"`
	Sections   []Section         `json:"sections,omitempty"`
}

// Build assembles a report from classified results. Results are ordered
// worst-first (stable, so any caller-applied secondary order survives) and
// counts are derived from the same slice the renderers consume.
func Build(meta Meta, thresholds interface{}, results []classify.Result) *Report {
	if meta.GeneratedAt.IsZero() {
		meta.GeneratedAt = time.Now()
	}
	if meta.Host == "" {
		if h, err := os.Hostname(); err == nil {
			meta.Host = h
		}
	}
	if meta.RunID == "" {
		meta.RunID = uuid.New().String()
	}

	ordered := make([]classify.Result, len(results))
	copy(ordered, results)
	classify.SortWorstFirst(ordered)

	return &Report{
		Meta:       meta,
		Thresholds: thresholds,
		Counts:     classify.Count(ordered),
		Results:    ordered,
	}
}

// AddSection appends a display table to the report.
func (r *Report) AddSection(title string, headers []string, rows [][]string) {
	r.Sections = append(r.Sections, Section{Title: title, Headers: headers, Rows: rows})
}

// BySeverity returns the results carrying one severity, preserving order.
func (r *Report) BySeverity(s classify.Severity) []classify.Result {
	var out []classify.Result
	for _, res := range r.Results {
		if res.Severity == s {
			out = append(out, res)
		}
	}
	return out
}

// WriteFiles writes report.json and report.html into dir, creating it first.
// An unwritable directory aborts the run as an I/O error.
func (r *Report) WriteFiles(rc *ops_io.RuntimeContext, dir string) error {
	logger := otelzap.Ctx(rc.Ctx)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return ops_err.NewIOError(
			fmt.Sprintf("cannot create output directory %s", dir), err)
	}

	jsonPath := filepath.Join(dir, JSONFile)
	if err := output.JSONToFile(jsonPath, r); err != nil {
		return ops_err.NewIOError(
			fmt.Sprintf("cannot write %s", jsonPath), err)
	}
	logger.Info("✅ Report written", zap.String("path", jsonPath))

	htmlPath := filepath.Join(dir, HTMLFile)
	html, err := r.RenderHTML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(htmlPath, html, 0644); err != nil {
		return ops_err.NewIOError(
			fmt.Sprintf("cannot write %s", htmlPath), err)
	}
	logger.Info("✅ Report written", zap.String("path", htmlPath))

	return nil
}

// PrintSummary renders the post-run severity tally to the terminal.
func (r *Report) PrintSummary() error {
	table := output.NewTable().WithHeaders("SEVERITY", "COUNT")
	for _, s := range classify.WorstFirst() {
		table.AddRow(string(s), fmt.Sprintf("%d", r.Counts[s]))
	}
	table.AddRow("total", fmt.Sprintf("%d", r.Counts.Total()))
	return table.Render()
}
