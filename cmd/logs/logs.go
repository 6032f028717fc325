package logs

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/stoshu2/opsreport/pkg/bundle"
	"github.com/stoshu2/opsreport/pkg/logreport"
	"github.com/stoshu2/opsreport/pkg/ops_cli"
	"github.com/stoshu2/opsreport/pkg/ops_io"
	"github.com/stoshu2/opsreport/pkg/report"
	"github.com/stoshu2/opsreport/pkg/thresholds"
)

// Event CSVs the collector may have exported alongside perf_summary.csv.
var eventFiles = map[string]string{
	"System":      "events_system.csv",
	"Application": "events_application.csv",
}

const (
	perfSummaryFile = "perf_summary.csv"
	newestLimit     = 25
	messageWidth    = 200
)

var (
	logsDatadir    string
	logsThresholds string
	logsOutdir     string
	logsTicket     string
	logsMinutes    int
	logsZip        bool
)

// LogsCmd reports on collected performance counters and event logs.
var LogsCmd = &cobra.Command{
	Use:     "logs",
	Aliases: []string{"perf", "logreport"},
	Short:   "Report on collected performance counters and event logs",
	Long: `Build a performance and event-log report from collector output.

Reads perf_summary.csv (required) plus events_system.csv and
events_application.csv (optional) from --datadir, classifies each counter
against its thresholds and summarizes recent Critical/Error/Warning events.

Examples:
  opsreport logs --datadir ./collected/host01
  opsreport logs --datadir ./collected/host01 --minutes 120 --zip`,

	RunE: ops_cli.Wrap(func(rc *ops_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		logger := otelzap.Ctx(rc.Ctx)

		v := ops_cli.NewViper()
		if err := ops_cli.BindFlagsToViper(cmd, v); err != nil {
			return err
		}

		datadir, err := ops_cli.GetRequiredString(cmd, "datadir")
		if err != nil {
			return err
		}

		t, err := thresholds.LoadPerf(rc.Ctx, v.GetString("thresholds"))
		if err != nil {
			return err
		}

		rows, err := logreport.LoadPerfSummary(rc.Ctx, filepath.Join(datadir, perfSummaryFile))
		if err != nil {
			return err
		}
		results := logreport.ClassifyAll(rows, t)

		rep := report.Build(report.Meta{
			Tool:        "logs",
			Title:       "Log & Performance Report",
			GeneratedAt: rc.Timestamp,
			TicketLabel: v.GetString("ticket"),
		}, perfPayload{Perf: t, WindowMinutes: v.GetInt("minutes")}, results)

		for _, log := range sortedKeys(eventFiles) {
			events, err := logreport.LoadEvents(rc.Ctx, filepath.Join(datadir, eventFiles[log]))
			if err != nil {
				return err
			}
			addEventSections(rep, log, events)
		}

		dir := bundle.OutputDir(v.GetString("outdir"), "logs", v.GetString("ticket"), rc.Timestamp)
		if err := rep.WriteFiles(rc, dir); err != nil {
			return err
		}

		if v.GetBool("zip") {
			if _, err := bundle.Zip(rc, dir); err != nil {
				return err
			}
		}

		logger.Info("Log report finished",
			zap.String("outdir", dir),
			zap.Int("counters", len(rows)))
		return rep.PrintSummary()
	}),
}

// perfPayload records the sampling window next to the counter thresholds in
// report.json.
type perfPayload struct {
	thresholds.Perf
	WindowMinutes int `json:"window_minutes"`
}

func addEventSections(rep *report.Report, log string, events []logreport.Event) {
	counts := logreport.CountByLevel(events)
	countRows := make([][]string, 0, len(counts))
	for _, level := range sortedLevels(counts) {
		countRows = append(countRows, []string{level, fmt.Sprintf("%d", counts[level])})
	}
	rep.AddSection(log+" events by level", []string{"Level", "Count"}, countRows)

	newest := logreport.Newest(events, newestLimit)
	newestRows := make([][]string, 0, len(newest))
	for _, e := range newest {
		newestRows = append(newestRows, []string{
			e.TimeCreated, e.Level, e.Provider, e.EventID,
			logreport.TruncateMessage(e.Message, messageWidth),
		})
	}
	rep.AddSection("Newest "+log+" events",
		[]string{"Time", "Level", "Provider", "Event ID", "Message"}, newestRows)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedLevels(counts map[string]int) []string {
	levels := make([]string, 0, len(counts))
	for level := range counts {
		levels = append(levels, level)
	}
	sort.Strings(levels)
	return levels
}

func init() {
	LogsCmd.Flags().StringVar(&logsDatadir, "datadir", "", "Directory holding perf_summary.csv and event CSVs (required)")
	LogsCmd.Flags().StringVar(&logsThresholds, "thresholds", "", "Path to thresholds JSON/YAML (defaults used when omitted)")
	LogsCmd.Flags().StringVar(&logsOutdir, "outdir", ".", "Parent directory for the timestamped report directory")
	LogsCmd.Flags().StringVar(&logsTicket, "ticket", "", "Ticket label recorded in the report and directory name")
	LogsCmd.Flags().IntVar(&logsMinutes, "minutes", 60, "Sampling window recorded in the report metadata")
	LogsCmd.Flags().BoolVar(&logsZip, "zip", false, "Archive the report directory after writing")
}
