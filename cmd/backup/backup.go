package backup

import (
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/stoshu2/opsreport/pkg/backup"
	"github.com/stoshu2/opsreport/pkg/bundle"
	"github.com/stoshu2/opsreport/pkg/ops_cli"
	"github.com/stoshu2/opsreport/pkg/ops_io"
	"github.com/stoshu2/opsreport/pkg/report"
	"github.com/stoshu2/opsreport/pkg/thresholds"
)

var (
	backupInput      string
	backupThresholds string
	backupOutdir     string
	backupTicket     string
	backupZip        bool
)

// BackupCmd verifies backup jobs from an exported CSV.
var BackupCmd = &cobra.Command{
	Use:     "backup",
	Aliases: []string{"backups", "verify-backups"},
	Short:   "Verify backup jobs from an exported jobs CSV",
	Long: `Verify backup jobs against the configured thresholds and write a report.

Reads a jobs CSV (job_name,last_run,last_result,last_success,duration_minutes,notes),
classifies every job (failed / warning / stale / ok) and writes report.html and
report.json into a timestamped directory.

Examples:
  opsreport backup --input jobs.csv
  opsreport backup --input jobs.csv --thresholds thresholds.json --outdir /srv/reports
  opsreport backup --input jobs.csv --ticket INC-4821 --zip`,

	RunE: ops_cli.Wrap(func(rc *ops_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		logger := otelzap.Ctx(rc.Ctx)

		v := ops_cli.NewViper()
		if err := ops_cli.BindFlagsToViper(cmd, v); err != nil {
			return err
		}

		input, err := ops_cli.GetRequiredString(cmd, "input")
		if err != nil {
			return err
		}

		t, err := thresholds.LoadBackup(rc.Ctx, v.GetString("thresholds"))
		if err != nil {
			return err
		}

		jobs, err := backup.LoadJobs(rc.Ctx, input)
		if err != nil {
			return err
		}

		now := rc.Timestamp
		results := backup.ClassifyAll(jobs, t, now)
		backup.SortByDaysDesc(results)

		rep := report.Build(report.Meta{
			Tool:        "backup",
			Title:       "Backup Verification Report",
			GeneratedAt: now,
			TicketLabel: v.GetString("ticket"),
		}, t, results)

		dir := bundle.OutputDir(v.GetString("outdir"), "backup", v.GetString("ticket"), now)
		if err := rep.WriteFiles(rc, dir); err != nil {
			return err
		}

		if v.GetBool("zip") {
			if _, err := bundle.Zip(rc, dir); err != nil {
				return err
			}
		}

		logger.Info("Backup verification finished",
			zap.String("outdir", dir),
			zap.Int("jobs", len(jobs)))
		return rep.PrintSummary()
	}),
}

func init() {
	BackupCmd.Flags().StringVar(&backupInput, "input", "", "Path to the exported jobs CSV (required)")
	BackupCmd.Flags().StringVar(&backupThresholds, "thresholds", "", "Path to thresholds JSON/YAML (defaults used when omitted)")
	BackupCmd.Flags().StringVar(&backupOutdir, "outdir", ".", "Parent directory for the timestamped report directory")
	BackupCmd.Flags().StringVar(&backupTicket, "ticket", "", "Ticket label recorded in the report and directory name")
	BackupCmd.Flags().BoolVar(&backupZip, "zip", false, "Archive the report directory after writing")
}
